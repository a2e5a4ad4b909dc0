package mcpclient_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tommeville/go-mcpclient"
)

func TestProtocolError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *mcpclient.ProtocolError
		want string
	}{
		{
			name: "http status",
			err:  &mcpclient.ProtocolError{Status: 503, Body: "service unavailable"},
			want: "unexpected status code 503: service unavailable",
		},
		{
			name: "undecodable body",
			err:  &mcpclient.ProtocolError{Body: "<html>not json</html>"},
			want: "unexpected response: <html>not json</html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ProtocolError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &mcpclient.TransportError{Err: fmt.Errorf("do request: %w", cause)}

	if !errors.Is(err, cause) {
		t.Errorf("expected %v to wrap %v", err, cause)
	}
	if !strings.Contains(err.Error(), "transport:") {
		t.Errorf("TransportError.Error() = %v, want transport prefix", err.Error())
	}
}
