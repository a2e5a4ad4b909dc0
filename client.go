package mcpclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// ClientOption is a function that configures a client.
type ClientOption func(*Client)

// Client is a Model Context Protocol (MCP) client for the streamable HTTP transport. It
// POSTs JSON-RPC 2.0 envelopes to a single endpoint and understands both reply framings
// the transport allows: a plain JSON body, or an SSE stream from which the final event
// is the authoritative reply.
//
// The client owns one HTTP connection pool for its lifetime and tracks the session token
// the server issues on initialize, echoing it on every subsequent request. Calls are
// safe for concurrent use, though replies are never matched to requests by JSON-RPC id;
// each call simply returns the body of its own HTTP exchange.
//
// A Client must be created using NewClient and should be released with Close when no
// longer needed.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	ownHTTP      bool
	info         Info
	timeout      time.Duration
	extraHeaders map[string]string
	logger       *slog.Logger

	nextID atomic.Int64

	mu        sync.RWMutex
	sessionID string
}

var defaultClientTimeout = 25 * time.Second

// WithHTTPClient sets the HTTP client used for requests. The caller keeps ownership;
// Close will not release it.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-call deadline for the client. Each operation runs under this
// deadline in addition to whatever deadline the caller's context carries.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithClientInfo sets the client identification sent in the initialize parameters.
func WithClientInfo(info Info) ClientOption {
	return func(c *Client) {
		c.info = info
	}
}

// WithExtraHeaders sets additional headers applied to every request, after the fixed
// protocol headers. An entry with the same name as a fixed header overrides it.
func WithExtraHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		c.extraHeaders = headers
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the MCP endpoint at baseURL. The returned client holds
// no session yet; Initialize establishes one. Unless WithHTTPClient is given, the client
// constructs and owns its own HTTP client, which Close releases.
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		info: Info{
			Name:    "go-mcpclient",
			Version: "1.0",
		},
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(c)
	}

	if c.timeout == 0 {
		c.timeout = defaultClientTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
		c.ownHTTP = true
	}

	return c
}

// Initialize establishes the session by sending an initialize call with this client's
// protocol version and identification. Servers normally answer with a session token
// header, which the client captures for all later calls; a missing token is not an
// error at this layer. The decoded reply envelope is returned as raw JSON.
func (c *Client) Initialize(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, MethodInitialize, initializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ClientCapabilities{},
		ClientInfo:      c.info,
	})
}

// ListTools sends a tools/list call with empty parameters and returns the decoded reply
// envelope as raw JSON.
func (c *Client) ListTools(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, MethodToolsList, struct{}{})
}

// CallTool invokes the named tool with the given arguments and returns the decoded
// reply envelope as raw JSON. A JSON-RPC error member inside the reply is not treated
// as a call failure here; callers inspect the envelope.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]any) (json.RawMessage, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}
	return c.call(ctx, MethodToolsCall, CallToolParams{
		Name:      name,
		Arguments: arguments,
	})
}

// SessionID returns the session token captured from the server, or an empty string
// before one has been issued.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Close releases the client's resources. The tracked session token is dropped, and an
// owned HTTP client has its idle connections closed; an injected one is left alone.
func (c *Client) Close() {
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()

	if c.ownHTTP {
		c.httpClient.CloseIdleConnections()
	}
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return c.post(ctx, JSONRPCRequest{
		JSONRPC: JSONRPCVersion,
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
}

func (c *Client) setSessionID(sid string) {
	c.mu.Lock()
	c.sessionID = sid
	c.mu.Unlock()
}
