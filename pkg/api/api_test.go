package api

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateConvertRequest(t *testing.T) {
	cfg := DefaultValidationConfig()

	tests := []struct {
		name      string
		req       ConvertRequest
		wantParam string // empty means valid
	}{
		{
			name: "valid request accepted",
			req:  ConvertRequest{Text: "hello", From: "qwerty", To: "dvorak"},
		},
		{
			name: "empty text accepted",
			req:  ConvertRequest{From: "qwerty", To: "dvorak"},
		},
		{
			name:      "missing from rejected",
			req:       ConvertRequest{Text: "hello", To: "dvorak"},
			wantParam: "from",
		},
		{
			name:      "missing to rejected",
			req:       ConvertRequest{Text: "hello", From: "qwerty"},
			wantParam: "to",
		},
		{
			name:      "oversized text rejected",
			req:       ConvertRequest{Text: strings.Repeat("a", cfg.MaxTextSize+1), From: "qwerty", To: "dvorak"},
			wantParam: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConvertRequest(&tt.req, cfg)
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("unexpected validation error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if err.Param != tt.wantParam {
				t.Errorf("error param = %q, want %q", err.Param, tt.wantParam)
			}
			if err.Type != ErrorTypeInvalidRequest {
				t.Errorf("error type = %q, want %q", err.Type, ErrorTypeInvalidRequest)
			}
		})
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	resp := NewErrorResponse(NewUnknownLayoutError("from", "azerty"))

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshaling error response: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}

	if decoded["status"] != "error" {
		t.Errorf("status = %v, want \"error\"", decoded["status"])
	}
	inner, ok := decoded["error"].(map[string]any)
	if !ok {
		t.Fatal("error field is not an object")
	}
	if inner["type"] != string(ErrorTypeInvalidRequest) {
		t.Errorf("error.type = %v, want %q", inner["type"], ErrorTypeInvalidRequest)
	}
	if inner["code"] != CodeUnknownLayout {
		t.Errorf("error.code = %v, want %q", inner["code"], CodeUnknownLayout)
	}
	if inner["param"] != "from" {
		t.Errorf("error.param = %v, want \"from\"", inner["param"])
	}
}

func TestAPIErrorError(t *testing.T) {
	withParam := NewInvalidRequestError("from", "from layout is required")
	if got := withParam.Error(); got != "invalid_request: from layout is required (param: from)" {
		t.Errorf("Error() = %q", got)
	}

	withoutParam := NewServerError("boom")
	if got := withoutParam.Error(); got != "server_error: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestConversionIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewConversionID()
		if !ValidateConversionID(id) {
			t.Fatalf("generated ID %q fails validation", id)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}

	invalid := []string{"", "conv_", "conv_short", "resp_abcdefghijklmnopqrstuvwx", "conv_abcdefghijklmnopqrstuvw!"}
	for _, id := range invalid {
		if ValidateConversionID(id) {
			t.Errorf("ValidateConversionID(%q) = true, want false", id)
		}
	}
}
