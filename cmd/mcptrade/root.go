package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tommeville/go-mcpclient"
	"github.com/tommeville/go-mcpclient/alpaca"
)

var (
	cfg alpaca.Config

	flagURL      string
	flagTimeout  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:          "mcptrade",
	Short:        "Trade stocks through an Alpaca MCP server",
	Long:         "mcptrade talks to an Alpaca MCP server over streamable HTTP:\ninspect the account, list tools, and place stock orders.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := alpaca.ConfigFromEnv()
		if err != nil {
			return err
		}
		cfg = loaded

		if flagURL != "" {
			cfg.ServerURL = flagURL
		}
		if cmd.Flags().Changed("timeout") {
			d, err := time.ParseDuration(flagTimeout)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", flagTimeout, err)
			}
			cfg.Timeout = d
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}

		level, err := parseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	},
}

// Execute runs the root command and exits nonzero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "MCP server endpoint (overrides MCP_URL)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "per-request timeout, e.g. 30s (overrides MCP_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
}

func serverURL() (string, error) {
	if cfg.ServerURL == "" {
		return "", fmt.Errorf("no MCP endpoint: set --url or MCP_URL")
	}
	return cfg.ServerURL, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

func clientOptions() []mcpclient.ClientOption {
	return []mcpclient.ClientOption{
		mcpclient.WithTimeout(cfg.Timeout),
		mcpclient.WithClientInfo(mcpclient.Info{
			Name:    "mcptrade",
			Version: version,
		}),
	}
}
