package alpaca

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config captures executor settings sourced from the environment.
type Config struct {
	// ServerURL is the MCP endpoint the executor drives. ENV: MCP_URL
	ServerURL string `env:"MCP_URL"`
	// Timeout bounds each MCP call. ENV: MCP_TIMEOUT
	Timeout time.Duration `env:"MCP_TIMEOUT,default=25s"`
	// LogLevel selects log verbosity (debug, info, warn, error). ENV: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// ConfigFromEnv builds a Config from the process environment, applying the tag defaults
// for anything unset.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode environment: %w", err)
	}
	return cfg, nil
}
