package mcpclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ssePrefix marks a data line in an SSE-framed response body.
const ssePrefix = "data:"

// post performs one request/reply exchange: marshal the envelope, POST it with the fixed
// header set plus the session token once one is known, capture a newly issued or rotated
// token from the reply, and de-frame the body into a single raw JSON message. Network
// and deadline failures surface as *TransportError; error statuses and undecodable
// bodies as *ProtocolError.
func (c *Client) post(ctx context.Context, req JSONRPCRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json, text/event-stream")
	httpReq.Header.Set(HeaderProtocolVersion, ProtocolVersion)
	if sid := c.SessionID(); sid != "" {
		httpReq.Header.Set(HeaderSessionID, sid)
	}
	for k, v := range c.extraHeaders {
		httpReq.Header.Set(k, v)
	}

	c.logger.Debug("sending request", "method", req.Method, "id", req.ID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	c.logger.Debug("received reply",
		"method", req.Method, "id", req.ID, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ProtocolError{
			Status: resp.StatusCode,
			Body:   truncate(string(body), statusErrorExcerptLimit),
		}
	}

	// Error replies never carry a usable token, so capture only happens here.
	if sid := resp.Header.Get(HeaderSessionID); sid != "" {
		c.setSessionID(sid)
		c.logger.Debug("captured session id", "sessionID", sid)
	}

	return decodeBody(body)
}

// decodeBody extracts the single logical reply from a response body. An SSE-framed body
// yields the last data line that holds valid JSON; data lines that fail to parse are
// dropped, not escalated. A body with no parseable data lines is tried whole as one JSON
// document; only when that fails too is the reply rejected.
func decodeBody(body []byte) (json.RawMessage, error) {
	var last json.RawMessage

	sc := bufio.NewScanner(bytes.NewReader(body))
	// No data line can be longer than the body it came from.
	sc.Buffer(nil, len(body)+1)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, ssePrefix))
		if !json.Valid([]byte(data)) {
			continue
		}
		last = json.RawMessage(data)
	}

	if last != nil {
		return last, nil
	}
	if json.Valid(body) {
		return json.RawMessage(body), nil
	}
	return nil, &ProtocolError{
		Body: truncate(string(body), decodeErrorExcerptLimit),
	}
}
