package openaichat

import (
	"testing"

	"github.com/graphgate/graphgate/pkg/gateway"
	"github.com/graphgate/graphgate/pkg/graph"
)

func TestBuildParamsConvertsRoles(t *testing.T) {
	r := New(Config{BaseURL: "http://localhost:8000/v1", Model: "test-model"})

	input := &graph.Input{
		Messages: []graph.Turn{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "user", Content: "more"},
		},
	}

	params, err := r.buildParams(input)
	if err != nil {
		t.Fatalf("buildParams() error = %v", err)
	}
	if len(params.Messages) != 4 {
		t.Errorf("message count = %d, want 4", len(params.Messages))
	}
	if string(params.Model) != "test-model" {
		t.Errorf("model = %q, want test-model", params.Model)
	}
}

func TestBuildParamsRejectsUnknownRole(t *testing.T) {
	r := New(Config{Model: "m"})

	_, err := r.buildParams(&graph.Input{
		Messages: []graph.Turn{{Role: "robot", Content: "beep"}},
	})
	if err == nil {
		t.Error("buildParams() accepted unknown role, want error")
	}
}

func TestBuildParamsPassThrough(t *testing.T) {
	r := New(Config{Model: "m"})
	temp := 0.3

	params, err := r.buildParams(&graph.Input{
		Messages:    []graph.Turn{{Role: "user", Content: "hi"}},
		Temperature: &temp,
		UserID:      "u-1",
	})
	if err != nil {
		t.Fatalf("buildParams() error = %v", err)
	}
	if !params.Temperature.Valid() || params.Temperature.Value != 0.3 {
		t.Errorf("temperature = %+v, want 0.3", params.Temperature)
	}
	if !params.User.Valid() || params.User.Value != "u-1" {
		t.Errorf("user = %+v, want u-1", params.User)
	}
}

func TestAssistantSnapshotShape(t *testing.T) {
	usage := map[string]any{
		"prompt_tokens":     float64(5),
		"completion_tokens": float64(2),
		"total_tokens":      float64(7),
	}
	snap := assistantSnapshot("partial text", usage)

	if got := gateway.ContentFromSnapshot(snap); got != "partial text" {
		t.Errorf("extractor sees %q, want snapshot text", got)
	}

	var acct gateway.Accountant
	acct.AddFromSnapshot(snap)
	if !acct.Reported() {
		t.Error("usage metadata not visible to the accountant")
	}
}

func TestAssistantSnapshotWithoutUsage(t *testing.T) {
	snap := assistantSnapshot("text", nil)
	var acct gateway.Accountant
	acct.AddFromSnapshot(snap)
	if acct.Reported() {
		t.Error("Reported() = true, want false without usage metadata")
	}
}
