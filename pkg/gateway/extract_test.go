package gateway

import (
	"strings"
	"testing"

	"github.com/graphgate/graphgate/pkg/graph"
)

func TestContentFromSnapshotTopLevelMessages(t *testing.T) {
	snap := graph.Snapshot{
		"messages": []any{
			map[string]any{"role": "user", "content": "question"},
			map[string]any{"role": "assistant", "content": "answer"},
		},
	}
	if got := ContentFromSnapshot(snap); got != "answer" {
		t.Errorf("ContentFromSnapshot() = %q, want last message content", got)
	}
}

func TestContentFromSnapshotTurnSlice(t *testing.T) {
	snap := graph.Snapshot{
		"messages": []graph.Turn{
			{Role: "user", Content: "q"},
			{Role: "assistant", Content: "a"},
		},
	}
	if got := ContentFromSnapshot(snap); got != "a" {
		t.Errorf("ContentFromSnapshot() = %q, want last turn content", got)
	}
}

func TestContentFromSnapshotNestedComponent(t *testing.T) {
	snap := graph.Snapshot{
		"agent": map[string]any{
			"messages": []any{
				map[string]any{"role": "assistant", "content": "nested"},
			},
		},
	}
	if got := ContentFromSnapshot(snap); got != "nested" {
		t.Errorf("ContentFromSnapshot() = %q, want nested component content", got)
	}
}

func TestContentFromSnapshotDirectKeys(t *testing.T) {
	if got := ContentFromSnapshot(graph.Snapshot{"content": "direct"}); got != "direct" {
		t.Errorf("ContentFromSnapshot(content) = %q", got)
	}
	if got := ContentFromSnapshot(graph.Snapshot{"output": "out"}); got != "out" {
		t.Errorf("ContentFromSnapshot(output) = %q", got)
	}
}

func TestContentFromSnapshotUnrecognized(t *testing.T) {
	snap := graph.Snapshot{"counter": 42}
	if got := ContentFromSnapshot(snap); got != "" {
		t.Errorf("ContentFromSnapshot() = %q, want empty for unrecognized shape", got)
	}
	if got := ContentFromSnapshot(nil); got != "" {
		t.Errorf("ContentFromSnapshot(nil) = %q, want empty", got)
	}
}

func TestContentFromSnapshotEmptyMessages(t *testing.T) {
	snap := graph.Snapshot{"messages": []any{}}
	if got := ContentFromSnapshot(snap); got != "" {
		t.Errorf("ContentFromSnapshot() = %q, want empty for empty message list", got)
	}
}

func TestContentFromResultMessagesWin(t *testing.T) {
	result := graph.Snapshot{
		"messages": []any{
			map[string]any{"role": "assistant", "content": "final"},
		},
		"output": "should not be used",
	}
	if got := ContentFromResult(result); got != "final" {
		t.Errorf("ContentFromResult() = %q, want message content to win", got)
	}
}

func TestContentFromResultStringifiesOutput(t *testing.T) {
	result := graph.Snapshot{"output": map[string]any{"answer": 4}}
	got := ContentFromResult(result)
	if got != `{"answer":4}` {
		t.Errorf("ContentFromResult() = %q, want JSON-rendered output value", got)
	}
}

func TestContentFromResultFallsBackToWholePayload(t *testing.T) {
	result := graph.Snapshot{"state": "done"}
	got := ContentFromResult(result)
	if !strings.Contains(got, `"state":"done"`) {
		t.Errorf("ContentFromResult() = %q, want stringified payload", got)
	}
}
