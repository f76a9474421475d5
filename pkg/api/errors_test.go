package api

import (
	"encoding/json"
	"testing"
)

func TestAPIErrorMessage(t *testing.T) {
	err := NewInvalidRequestError("model", "model is required")
	want := "invalid_request: model is required (param: model)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	srv := NewServerError("boom")
	if srv.Error() != "server_error: boom" {
		t.Errorf("Error() = %q", srv.Error())
	}
}

func TestErrorResponseWireShape(t *testing.T) {
	data, err := json.Marshal(ErrorResponse{Error: NewServerError("graph exploded")})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var m map[string]map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if m["error"]["type"] != "server_error" {
		t.Errorf("type = %v, want server_error", m["error"]["type"])
	}
	if m["error"]["message"] != "graph exploded" {
		t.Errorf("message = %v", m["error"]["message"])
	}
}

func TestValidateRequest(t *testing.T) {
	temp := 3.5
	tests := []struct {
		name      string
		req       CreateResponseRequest
		wantParam string
	}{
		{"missing model", CreateResponseRequest{Input: &Input{Text: "x", IsString: true}}, "model"},
		{"no input or messages", CreateResponseRequest{Model: "m"}, "input"},
		{"temperature out of range", CreateResponseRequest{Model: "m", Input: &Input{Text: "x", IsString: true}, Temperature: &temp}, "temperature"},
		{"ok", CreateResponseRequest{Model: "m", Input: &Input{Text: "x", IsString: true}}, ""},
		{"ok via messages", CreateResponseRequest{Model: "m", Messages: []Message{{Role: "user", Content: MessageContent{Text: "x", IsString: true}}}}, ""},
		{"roleless entry tolerated", CreateResponseRequest{Model: "m", Messages: []Message{
			{Content: MessageContent{Text: "stray", IsString: true}},
			{Role: "user", Content: MessageContent{Text: "x", IsString: true}},
		}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if tt.wantParam == "" {
				if err != nil {
					t.Errorf("ValidateRequest = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
		})
	}
}
