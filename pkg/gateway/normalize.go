package gateway

import (
	"strings"

	"github.com/graphgate/graphgate/pkg/api"
	"github.com/graphgate/graphgate/pkg/graph"
)

// Utterance derives the canonical user utterance from a request.
//
// The input field wins over messages. A string input is returned verbatim;
// a part list is filtered to input_text (or, leniently, text) parts whose
// texts are joined with single spaces in list order. Failing both, the
// most recent user message is scanned for, its content extracted the same
// way. An empty return means the request carries no extractable input.
func Utterance(req *api.CreateResponseRequest) string {
	if req.Input != nil {
		if req.Input.IsString {
			return req.Input.Text
		}
		return joinParts(req.Input.Parts, "input_text", "text")
	}

	// Legacy messages: most recent user entry wins.
	for i := len(req.Messages) - 1; i >= 0; i-- {
		msg := req.Messages[i]
		if msg.Role != "user" {
			continue
		}
		if msg.Content.IsString {
			return msg.Content.Text
		}
		return joinParts(msg.Content.Parts, "text")
	}

	return ""
}

// joinParts concatenates the text fields of parts whose type matches one
// of the accepted tags, preserving order, separated by single spaces.
func joinParts(parts []api.ContentPart, acceptedTypes ...string) string {
	var texts []string
	for _, part := range parts {
		for _, t := range acceptedTypes {
			if part.Type == t {
				texts = append(texts, part.Text)
				break
			}
		}
	}
	return strings.Join(texts, " ")
}

// BuildInput assembles the runner invocation payload: any prior
// conversation turns (in original order) followed by a single new user
// turn, plus the request's pass-through context.
func BuildInput(utterance string, req *api.CreateResponseRequest, prior []graph.Turn) *graph.Input {
	messages := make([]graph.Turn, 0, len(prior)+1)
	messages = append(messages, prior...)
	messages = append(messages, graph.Turn{Role: "user", Content: utterance})

	return &graph.Input{
		Messages:    messages,
		ThreadID:    req.ThreadID,
		UserID:      req.UserID,
		Metadata:    req.Metadata,
		Temperature: req.Temperature,
	}
}
