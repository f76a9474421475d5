package gateway

import (
	"encoding/json"

	"github.com/graphgate/graphgate/pkg/api"
	"github.com/graphgate/graphgate/pkg/graph"
)

// Accountant accumulates token usage over the lifetime of a single
// response. Engine-reported counts take precedence; only when the
// accumulated total is zero does Finalize fall back to a character-based
// estimate for both sides.
type Accountant struct {
	prompt     int
	completion int
	total      int
}

// AddFromSnapshot scans a step snapshot for message-level usage metadata
// and accumulates any counts found. The runner may attach usage to any
// message in any nesting shape the extractor recognizes.
func (a *Accountant) AddFromSnapshot(snap graph.Snapshot) {
	if snap == nil {
		return
	}
	a.addFromMessages(snap["messages"])
	for _, value := range snap {
		if sub, ok := value.(map[string]any); ok {
			a.addFromMessages(sub["messages"])
		}
	}
}

// addFromMessages walks a messages list and accumulates
// response_metadata.token_usage counts from each map-shaped element.
// All three integers are carried: the reported total is preserved as is,
// not recomputed from the sides.
func (a *Accountant) addFromMessages(messages any) {
	list, ok := messages.([]any)
	if !ok {
		return
	}
	for _, elem := range list {
		msg, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		meta, ok := msg["response_metadata"].(map[string]any)
		if !ok {
			continue
		}
		usage, ok := meta["token_usage"].(map[string]any)
		if !ok {
			continue
		}
		if n, ok := asInt(usage["prompt_tokens"]); ok {
			a.prompt += n
		}
		if n, ok := asInt(usage["completion_tokens"]); ok {
			a.completion += n
		}
		if n, ok := asInt(usage["total_tokens"]); ok {
			a.total += n
		}
	}
}

// Finalize produces the usage block for the response envelope. When the
// accumulated total is zero, both sides are estimated: the prompt from
// the serialized runner input, the completion from the accumulated output
// text. The fallback is all or nothing so the two sides stay comparable.
func (a *Accountant) Finalize(input *graph.Input, output string) *api.Usage {
	prompt, completion, total := a.prompt, a.completion, a.total
	if total == 0 {
		prompt = EstimateTokens(serializeInput(input))
		completion = EstimateTokens(output)
		total = prompt + completion
	}
	return &api.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
	}
}

// Reported tells whether the finalized figures come from engine counts
// rather than the estimator.
func (a *Accountant) Reported() bool {
	return a.total > 0
}

// EstimateTokens approximates a token count from text length. The
// four-characters-per-token heuristic is crude but consistent; every
// text, even an empty one, counts as at least one token.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// serializeInput renders the runner input as the text the prompt estimate
// is based on.
func serializeInput(input *graph.Input) string {
	if input == nil {
		return ""
	}
	data, err := json.Marshal(input.Messages)
	if err != nil {
		return ""
	}
	return string(data)
}

// asInt converts a JSON-decoded numeric value to an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}
