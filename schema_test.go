package mcpclient_test

import (
	"encoding/json"
	"testing"

	"github.com/tommeville/go-mcpclient"
)

func TestMustString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    mcpclient.MustString
		wantErr bool
	}{
		{
			name:    "string input",
			input:   `"test123"`,
			want:    mcpclient.MustString("test123"),
			wantErr: false,
		},
		{
			name:    "integer input",
			input:   `42`,
			want:    mcpclient.MustString("42"),
			wantErr: false,
		},
		{
			name:    "float input",
			input:   `42.0`,
			want:    mcpclient.MustString("42"),
			wantErr: false,
		},
		{
			name:    "invalid type",
			input:   `{"key": "value"}`,
			want:    mcpclient.MustString(""),
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `invalid`,
			want:    mcpclient.MustString(""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got mcpclient.MustString
			err := json.Unmarshal([]byte(tt.input), &got)

			if (err != nil) != tt.wantErr {
				t.Errorf("MustString.UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && got != tt.want {
				t.Errorf("MustString.UnmarshalJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustString_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   mcpclient.MustString
		want    string
		wantErr bool
	}{
		{
			name:    "string value",
			input:   mcpclient.MustString("test123"),
			want:    `"test123"`,
			wantErr: false,
		},
		{
			name:    "numeric string",
			input:   mcpclient.MustString("42"),
			want:    `"42"`,
			wantErr: false,
		},
		{
			name:    "empty string",
			input:   mcpclient.MustString(""),
			want:    `""`,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("MustString.MarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("MustString.MarshalJSON() = %v, want %v", string(got), tt.want)
			}
		})
	}
}

func TestJSONRPCMessage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantID      mcpclient.MustString
		wantResult  string
		wantErrCode int
	}{
		{
			name:       "result with string id",
			input:      `{"jsonrpc":"2.0","id":"abc","result":{"ok":true}}`,
			wantID:     mcpclient.MustString("abc"),
			wantResult: `{"ok":true}`,
		},
		{
			name:       "result with numeric id",
			input:      `{"jsonrpc":"2.0","id":7,"result":{"ok":true}}`,
			wantID:     mcpclient.MustString("7"),
			wantResult: `{"ok":true}`,
		},
		{
			name:        "error member",
			input:       `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`,
			wantID:      mcpclient.MustString("1"),
			wantErrCode: -32601,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got mcpclient.JSONRPCMessage
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("JSONRPCMessage.UnmarshalJSON() error = %v", err)
			}

			if got.JSONRPC != mcpclient.JSONRPCVersion {
				t.Errorf("got jsonrpc %q, want %q", got.JSONRPC, mcpclient.JSONRPCVersion)
			}
			if got.ID != tt.wantID {
				t.Errorf("got id %q, want %q", got.ID, tt.wantID)
			}
			if string(got.Result) != tt.wantResult {
				t.Errorf("got result %s, want %s", got.Result, tt.wantResult)
			}

			if tt.wantErrCode == 0 {
				if got.Error != nil {
					t.Errorf("got error %v, want none", got.Error)
				}
				return
			}
			if got.Error == nil {
				t.Fatal("expected an error member")
			}
			if got.Error.Code != tt.wantErrCode {
				t.Errorf("got error code %d, want %d", got.Error.Code, tt.wantErrCode)
			}
		})
	}
}

func TestJSONRPCError_Error(t *testing.T) {
	err := mcpclient.JSONRPCError{
		Code:    -32602,
		Message: "invalid params",
		Data:    map[string]any{"field": "symbol"},
	}

	want := "request error, code: -32602, message: invalid params, data map[field:symbol]"
	if got := err.Error(); got != want {
		t.Errorf("JSONRPCError.Error() = %v, want %v", got, want)
	}
}

func TestClientCapabilities_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(mcpclient.ClientCapabilities{})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if string(got) != "{}" {
		t.Errorf("got %s, want {}", got)
	}
}
