package mcpclient

import "fmt"

// Excerpt limits for the two ProtocolError flavors. Error bodies keep a little more
// context than undecodable ones.
const (
	statusErrorExcerptLimit = 300
	decodeErrorExcerptLimit = 200
)

// TransportError reports that the HTTP exchange could not be completed: the connection
// failed, the name did not resolve, the per-call deadline expired, or the reply body was
// cut short mid-read. The underlying cause is available through Unwrap, so checks like
// errors.Is(err, context.DeadlineExceeded) see through it.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a reply the client refuses to decode: an HTTP error status, or a
// body that is neither an SSE stream with a parseable event nor valid JSON. Body holds a
// truncated excerpt of the raw reply for diagnostics; Status is zero when the HTTP
// exchange itself succeeded.
type ProtocolError struct {
	Status int
	Body   string
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("unexpected status code %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("unexpected response: %s", e.Body)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
