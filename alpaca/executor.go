// Package alpaca drives an Alpaca trading MCP server: typed wrappers around its account
// and order tools, and the executor flow that exercises them in sequence.
package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tommeville/go-mcpclient"
)

// Tool names the Alpaca MCP server exposes.
const (
	toolAccountInfo     = "get_account_info"
	toolPositions       = "get_positions"
	toolPlaceStockOrder = "place_stock_order"
)

// ExecutorOption is a function that configures an executor.
type ExecutorOption func(*Executor)

// Executor drives an Alpaca MCP server through a client: account inspection, position
// listing, and order placement. The wrappers unwrap reply envelopes, so a JSON-RPC error
// member or a tool result flagged as failed comes back as a Go error instead of raw
// JSON. Instances should be created using NewExecutor; the caller owns the client and
// its lifecycle.
type Executor struct {
	client *mcpclient.Client
	logger *slog.Logger
	out    io.Writer
}

// WithExecutorLogger sets the logger for the executor.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithExecutorOutput sets the writer the executor prints replies to. Defaults to
// standard output.
func WithExecutorOutput(out io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.out = out
	}
}

// NewExecutor creates an executor on top of the given client.
func NewExecutor(client *mcpclient.Client, options ...ExecutorOption) *Executor {
	e := &Executor{
		client: client,
		logger: slog.Default(),
		out:    os.Stdout,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// AccountInfo fetches the account snapshot and returns its text content.
func (e *Executor) AccountInfo(ctx context.Context) (string, error) {
	raw, err := e.client.CallTool(ctx, toolAccountInfo, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch account info: %w", err)
	}
	return toolText(raw)
}

// Positions fetches the open positions and returns their text content.
func (e *Executor) Positions(ctx context.Context) (string, error) {
	raw, err := e.client.CallTool(ctx, toolPositions, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch positions: %w", err)
	}
	return toolText(raw)
}

// PlaceOrder submits a stock order and returns the server's text reply.
func (e *Executor) PlaceOrder(ctx context.Context, order Order) (string, error) {
	if err := order.validate(); err != nil {
		return "", err
	}

	e.logger.Info("placing order",
		"symbol", order.Symbol, "side", order.Side, "quantity", order.Quantity)

	raw, err := e.client.CallTool(ctx, toolPlaceStockOrder, order.arguments())
	if err != nil {
		return "", fmt.Errorf("failed to place order: %w", err)
	}
	return toolText(raw)
}

// Run executes the full flow against the server: initialize the session, list the
// advertised tools, fetch account info and positions, then place the given order. Raw
// replies from the first two steps and the text content of the rest are written to the
// executor's output.
func (e *Executor) Run(ctx context.Context, order Order) error {
	if err := order.validate(); err != nil {
		return err
	}

	e.logger.Info("starting executor run")

	init, err := e.client.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	e.logger.Info("session initialized", "sessionID", e.client.SessionID())
	e.printJSON("INIT RESPONSE", init)

	tools, err := e.client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}
	e.printJSON("TOOLS/LIST RESULT", tools)

	e.logger.Info("fetching account info")
	account, err := e.AccountInfo(ctx)
	if err != nil {
		return err
	}
	e.printText("ACCOUNT INFO", account)

	e.logger.Info("fetching positions")
	positions, err := e.Positions(ctx)
	if err != nil {
		return err
	}
	e.printText("POSITIONS", positions)

	result, err := e.PlaceOrder(ctx, order)
	if err != nil {
		return err
	}
	e.printText("TRADE RESULT", result)

	e.logger.Info("executor run complete")
	return nil
}

// ExecuteTrade places one order through its own short-lived session: a fresh client is
// created for serverURL, initialized, used for the single order, and closed on every
// path out.
func ExecuteTrade(ctx context.Context, serverURL string, order Order, options ...mcpclient.ClientOption) (string, error) {
	client := mcpclient.NewClient(serverURL, options...)
	defer client.Close()

	if _, err := client.Initialize(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize session: %w", err)
	}
	return NewExecutor(client).PlaceOrder(ctx, order)
}

// toolText unwraps a tools/call reply envelope into the text content of its result.
func toolText(raw json.RawMessage) (string, error) {
	var msg mcpclient.JSONRPCMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", fmt.Errorf("failed to decode reply envelope: %w", err)
	}
	if msg.Error != nil {
		return "", msg.Error
	}
	if len(msg.Result) == 0 {
		return "", fmt.Errorf("reply carries neither result nor error")
	}

	var result mcpclient.CallToolResult
	if err := json.Unmarshal(msg.Result, &result); err != nil {
		return "", fmt.Errorf("failed to decode tool result: %w", err)
	}

	text := contentText(result.Content)
	if result.IsError {
		return "", fmt.Errorf("tool failed: %s", text)
	}
	return text, nil
}

// contentText joins the text blocks of a tool result.
func contentText(content []mcpclient.Content) string {
	var parts []string
	for _, c := range content {
		if c.Type == mcpclient.ContentTypeText && c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func (e *Executor) printJSON(label string, raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintf(e.out, "\n[%s]\n%s\n", label, raw)
		return
	}
	fmt.Fprintf(e.out, "\n[%s]\n%s\n", label, buf.String())
}

func (e *Executor) printText(label, text string) {
	fmt.Fprintf(e.out, "\n[%s]\n%s\n", label, text)
}
