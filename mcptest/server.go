// Package mcptest provides an in-process MCP endpoint speaking the streamable HTTP
// transport, for tests that need a scriptable server without a network dependency.
// Replies are SSE-framed by default, matching what deployed MCP servers send; plain JSON
// bodies can be selected to cover the other transport framing.
package mcptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"

	"github.com/tommeville/go-mcpclient"
)

// JSON-RPC error codes the fixture answers with.
const (
	methodNotFoundCode = -32601
	invalidParamsCode  = -32602
	internalErrorCode  = -32603
)

// ToolHandler produces the result of one tool invocation. A returned error becomes a
// JSON-RPC internal error in the reply envelope; tool-level failures belong in the
// result's IsError flag instead.
type ToolHandler func(arguments map[string]any) (mcpclient.CallToolResult, error)

// ServerOption is a function that configures a server.
type ServerOption func(*Server)

// Server simulates an MCP server behind a single POST endpoint. It answers initialize
// with a freshly issued session token, serves the registered tools over tools/list, and
// dispatches tools/call to their handlers. Obtain the endpoint with Handler and mount it
// on an httptest server.
type Server struct {
	info  mcpclient.Info
	tools []mcpclient.Tool

	handlers       map[string]ToolHandler
	plain          bool
	requireSession bool

	mu            sync.Mutex
	sessions      map[string]struct{}
	lastSessionID string
}

// envelope is the reply frame. The request id is echoed verbatim, whatever JSON type the
// caller used.
type envelope struct {
	JSONRPC string                  `json:"jsonrpc"`
	ID      json.RawMessage         `json:"id,omitempty"`
	Result  json.RawMessage         `json:"result,omitempty"`
	Error   *mcpclient.JSONRPCError `json:"error,omitempty"`
}

// NewServer creates a server with the given options applied.
func NewServer(options ...ServerOption) *Server {
	s := &Server{
		info: mcpclient.Info{
			Name:    "mcptest",
			Version: "0.1.0",
		},
		tools:    []mcpclient.Tool{},
		handlers: make(map[string]ToolHandler),
		sessions: make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithServerInfo sets the server identification returned from initialize.
func WithServerInfo(info mcpclient.Info) ServerOption {
	return func(s *Server) {
		s.info = info
	}
}

// WithTool registers a tool and the handler invoked for it.
func WithTool(tool mcpclient.Tool, handler ToolHandler) ServerOption {
	return func(s *Server) {
		s.tools = append(s.tools, tool)
		s.handlers[tool.Name] = handler
	}
}

// WithPlainResponses makes the server answer with bare JSON bodies instead of SSE
// frames.
func WithPlainResponses() ServerOption {
	return func(s *Server) {
		s.plain = true
	}
}

// WithSessionRequired makes the server reject any non-initialize call that does not
// carry a previously issued session token.
func WithSessionRequired() ServerOption {
	return func(s *Server) {
		s.requireSession = true
	}
}

// Handler returns the http.Handler implementing the endpoint.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      json.RawMessage `json:"id"`
			Method  string          `json:"method"`
			Params  json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "failed to decode message", http.StatusBadRequest)
			return
		}

		if s.requireSession && req.Method != mcpclient.MethodInitialize {
			if !s.knownSession(r.Header.Get(mcpclient.HeaderSessionID)) {
				http.Error(w, "missing or unknown session", http.StatusBadRequest)
				return
			}
		}

		switch req.Method {
		case mcpclient.MethodInitialize:
			sid := uuid.New().String()
			s.addSession(sid)
			w.Header().Set(mcpclient.HeaderSessionID, sid)
			s.writeResult(w, req.ID, mcpclient.InitializeResult{
				ProtocolVersion: mcpclient.ProtocolVersion,
				Capabilities: mcpclient.ServerCapabilities{
					Tools: &mcpclient.ToolsCapability{},
				},
				ServerInfo: s.info,
			})
		case mcpclient.MethodToolsList:
			s.writeResult(w, req.ID, mcpclient.ListToolsResult{Tools: s.tools})
		case mcpclient.MethodToolsCall:
			s.callTool(w, req.ID, req.Params)
		default:
			s.writeError(w, req.ID, methodNotFoundCode, fmt.Sprintf("method not found: %s", req.Method))
		}
	})
}

// LastSessionID returns the most recently issued session token, or an empty string
// before the first initialize.
func (s *Server) LastSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSessionID
}

func (s *Server) callTool(w http.ResponseWriter, id json.RawMessage, params json.RawMessage) {
	var p mcpclient.CallToolParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.writeError(w, id, invalidParamsCode, "invalid tool call params")
		return
	}

	handler, ok := s.handlers[p.Name]
	if !ok {
		s.writeError(w, id, invalidParamsCode, fmt.Sprintf("unknown tool: %s", p.Name))
		return
	}

	result, err := handler(p.Arguments)
	if err != nil {
		s.writeError(w, id, internalErrorCode, err.Error())
		return
	}
	s.writeResult(w, id, result)
}

func (s *Server) writeResult(w http.ResponseWriter, id json.RawMessage, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "failed to marshal result", http.StatusInternalServerError)
		return
	}
	s.writeMessage(w, envelope{JSONRPC: mcpclient.JSONRPCVersion, ID: id, Result: raw})
}

func (s *Server) writeError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	s.writeMessage(w, envelope{
		JSONRPC: mcpclient.JSONRPCVersion,
		ID:      id,
		Error:   &mcpclient.JSONRPCError{Code: code, Message: message},
	})
}

func (s *Server) writeMessage(w http.ResponseWriter, msg envelope) {
	raw, err := json.Marshal(msg)
	if err != nil {
		http.Error(w, "failed to marshal message", http.StatusInternalServerError)
		return
	}

	if s.plain {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	ev := &sse.Message{
		Type: sse.Type("message"),
	}
	ev.AppendData(string(raw))
	_, _ = ev.WriteTo(w)
}

func (s *Server) addSession(sid string) {
	s.mu.Lock()
	s.sessions[sid] = struct{}{}
	s.lastSessionID = sid
	s.mu.Unlock()
}

func (s *Server) knownSession(sid string) bool {
	if sid == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sid]
	return ok
}
