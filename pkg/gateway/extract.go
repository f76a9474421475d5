package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/graphgate/graphgate/pkg/graph"
)

// ContentFromSnapshot pulls the current assistant text out of a streaming
// step snapshot. Resolution order, first match wins:
//
//  1. a top-level "messages" list: the last element's content
//  2. a nested {component: {messages: [...]}} mapping: rule 1 applied to
//     the first sub-mapping found carrying messages
//  3. a direct "content" or "output" string value
//
// Returns the empty string when no shape matches. The extractor is
// permissive on purpose: the snapshot shape belongs to the runner, not to
// this system.
func ContentFromSnapshot(snap graph.Snapshot) string {
	if snap == nil {
		return ""
	}

	if text, ok := lastMessageContent(snap["messages"]); ok {
		return text
	}

	for _, value := range snap {
		sub, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := lastMessageContent(sub["messages"]); ok {
			return text
		}
	}

	if text, ok := stringValue(snap["content"]); ok {
		return text
	}
	if text, ok := stringValue(snap["output"]); ok {
		return text
	}

	return ""
}

// ContentFromResult pulls the assistant text out of a final Invoke result.
// It applies the same message rules as ContentFromSnapshot but, as the
// last resort, stringifies direct output/content values of any type and
// finally the whole payload, since a final result must render to
// something.
func ContentFromResult(result graph.Snapshot) string {
	if result == nil {
		return ""
	}

	if text, ok := lastMessageContent(result["messages"]); ok {
		return text
	}

	if v, ok := result["output"]; ok {
		return stringify(v)
	}
	if v, ok := result["content"]; ok {
		return stringify(v)
	}

	return stringify(map[string]any(result))
}

// lastMessageContent extracts the content of the last element of a
// messages list. The list may hold graph.Turn values, maps, or anything a
// runner chose to emit; only the last element is authoritative.
func lastMessageContent(messages any) (string, bool) {
	last, ok := lastElement(messages)
	if !ok {
		return "", false
	}

	switch msg := last.(type) {
	case graph.Turn:
		return msg.Content, true
	case *graph.Turn:
		return msg.Content, true
	case map[string]any:
		if text, ok := stringValue(msg["content"]); ok {
			return text, true
		}
	}
	return "", false
}

// lastElement returns the final element of a list value, tolerating the
// concrete slice types runners produce.
func lastElement(v any) (any, bool) {
	switch list := v.(type) {
	case []any:
		if len(list) == 0 {
			return nil, false
		}
		return list[len(list)-1], true
	case []graph.Turn:
		if len(list) == 0 {
			return nil, false
		}
		return list[len(list)-1], true
	case []map[string]any:
		if len(list) == 0 {
			return nil, false
		}
		return list[len(list)-1], true
	}
	return nil, false
}

// stringValue returns v as a string when it is one.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// stringify renders an arbitrary payload as text, preferring JSON.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
