package api

import (
	"encoding/json"
	"testing"
)

func TestInputUnmarshalString(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`"what is 2+2?"`), &in); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !in.IsString {
		t.Error("IsString = false, want true")
	}
	if in.Text != "what is 2+2?" {
		t.Errorf("Text = %q, want %q", in.Text, "what is 2+2?")
	}
	if in.Parts != nil {
		t.Errorf("Parts = %v, want nil", in.Parts)
	}
}

func TestInputUnmarshalEmptyString(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`""`), &in); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !in.IsString {
		t.Error("IsString = false, want true for explicit empty string")
	}
	if in.Text != "" {
		t.Errorf("Text = %q, want empty", in.Text)
	}
}

func TestInputUnmarshalParts(t *testing.T) {
	var in Input
	data := `[{"type":"input_text","text":"hello"},{"type":"input_text","text":"world"}]`
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if in.IsString {
		t.Error("IsString = true, want false")
	}
	if len(in.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2", len(in.Parts))
	}
	if in.Parts[0].Text != "hello" || in.Parts[1].Text != "world" {
		t.Errorf("Parts = %+v", in.Parts)
	}
}

func TestInputUnmarshalInvalid(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`42`), &in); err == nil {
		t.Error("expected error for numeric input")
	}
}

func TestInputMarshalRoundTrip(t *testing.T) {
	for _, raw := range []string{
		`"plain"`,
		`[{"type":"input_text","text":"a"}]`,
	} {
		var in Input
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		out, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != raw {
			t.Errorf("round trip = %s, want %s", out, raw)
		}
	}
}

func TestMessageContentUnion(t *testing.T) {
	var msg Message
	data := `{"role":"user","content":[{"type":"text","text":"multi"},{"type":"text","text":"modal"}]}`
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if msg.Role != "user" {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if msg.Content.IsString {
		t.Error("IsString = true, want false")
	}
	if len(msg.Content.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2", len(msg.Content.Parts))
	}

	var plain Message
	if err := json.Unmarshal([]byte(`{"role":"user","content":"hi"}`), &plain); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !plain.Content.IsString || plain.Content.Text != "hi" {
		t.Errorf("Content = %+v, want string %q", plain.Content, "hi")
	}
}

func TestRequestDecodeFull(t *testing.T) {
	data := `{
		"model": "graph-agent",
		"input": "2+2?",
		"stream": true,
		"temperature": 0.5,
		"previous_response_id": "resp_0123456789abcdef0123456789abcdef",
		"thread_id": "t1",
		"user_id": "u1",
		"metadata": {"k": "v"},
		"store": true
	}`
	var req CreateResponseRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if req.Model != "graph-agent" {
		t.Errorf("Model = %q", req.Model)
	}
	if req.Input == nil || req.Input.Text != "2+2?" {
		t.Errorf("Input = %+v", req.Input)
	}
	if !req.Stream || !req.Store {
		t.Errorf("Stream = %v, Store = %v, want both true", req.Stream, req.Store)
	}
	if req.Temperature == nil || *req.Temperature != 0.5 {
		t.Errorf("Temperature = %v", req.Temperature)
	}
	if req.Metadata["k"] != "v" {
		t.Errorf("Metadata = %v", req.Metadata)
	}
}

func TestNewAssistantMessage(t *testing.T) {
	item := NewAssistantMessage("item_x", "4")
	if item.Type != "message" || item.Role != "assistant" {
		t.Errorf("item = %+v", item)
	}
	if len(item.Content) != 1 || item.Content[0].Type != "output_text" || item.Content[0].Text != "4" {
		t.Errorf("Content = %+v", item.Content)
	}
}

func TestStreamEventIndexSerialization(t *testing.T) {
	ev := StreamEvent{
		Type:         EventOutputTextDelta,
		Delta:        "Hi",
		OutputIndex:  Index(0),
		ContentIndex: Index(0),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	// Zero indices must appear on the wire.
	if _, ok := m["output_index"]; !ok {
		t.Error("output_index missing from serialized event")
	}
	if _, ok := m["content_index"]; !ok {
		t.Error("content_index missing from serialized event")
	}
}
