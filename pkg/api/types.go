package api

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// Input content types
// ---------------------------------------------------------------------------

// ContentPart represents one typed part of user input content.
// The Type field indicates the kind of content: input_text (Responses API)
// or text (lenient fallback accepted from Chat Completions style clients).
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Input is the union type for the request "input" field, which may be a
// plain string or an ordered list of typed content parts.
type Input struct {
	Text  string
	Parts []ContentPart

	// IsString distinguishes an explicit empty string input from an
	// absent or list-valued input.
	IsString bool
}

// UnmarshalJSON deserializes Input from either a JSON string or an array
// of content parts.
func (in *Input) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		in.Text = s
		in.IsString = true
		in.Parts = nil
		return nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("input must be a string or an array of content parts: %w", err)
	}
	in.Text = ""
	in.IsString = false
	in.Parts = parts
	return nil
}

// MarshalJSON serializes Input back to its wire form.
func (in Input) MarshalJSON() ([]byte, error) {
	if in.IsString {
		return json.Marshal(in.Text)
	}
	return json.Marshal(in.Parts)
}

// MessageContent is the union type for the "content" field of a legacy
// message: a plain string or an ordered list of typed parts.
type MessageContent struct {
	Text     string
	Parts    []ContentPart
	IsString bool
}

// UnmarshalJSON deserializes MessageContent from a string or a part array.
func (mc *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		mc.Text = s
		mc.IsString = true
		mc.Parts = nil
		return nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("message content must be a string or an array of content parts: %w", err)
	}
	mc.Text = ""
	mc.IsString = false
	mc.Parts = parts
	return nil
}

// MarshalJSON serializes MessageContent back to its wire form.
func (mc MessageContent) MarshalJSON() ([]byte, error) {
	if mc.IsString {
		return json.Marshal(mc.Text)
	}
	return json.Marshal(mc.Parts)
}

// Message is one entry of the legacy flat message list accepted for
// backward compatibility with Chat Completions style clients.
type Message struct {
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
}

// ---------------------------------------------------------------------------
// Request
// ---------------------------------------------------------------------------

// CreateResponseRequest represents the request body for POST /v1/responses.
// Exactly one of Input or Messages is expected to carry the user utterance;
// Input wins when both are present.
type CreateResponseRequest struct {
	Model              string            `json:"model"`
	Input              *Input            `json:"input,omitempty"`
	Messages           []Message         `json:"messages,omitempty"`
	Stream             bool              `json:"stream,omitempty"`
	Temperature        *float64          `json:"temperature,omitempty"`
	Tools              []json.RawMessage `json:"tools,omitempty"`
	PreviousResponseID string            `json:"previous_response_id,omitempty"`
	ThreadID           string            `json:"thread_id,omitempty"`
	UserID             string            `json:"user_id,omitempty"`
	Metadata           map[string]any    `json:"metadata,omitempty"`
	Store              bool              `json:"store,omitempty"`
}

// ---------------------------------------------------------------------------
// Response envelope
// ---------------------------------------------------------------------------

// ResponseStatus represents the overall status of a response.
type ResponseStatus string

const (
	ResponseStatusInProgress ResponseStatus = "in_progress"
	ResponseStatusCompleted  ResponseStatus = "completed"
	ResponseStatusFailed     ResponseStatus = "failed"
)

// OutputText is a single output content part of type output_text.
type OutputText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewOutputText creates an output_text content part.
func NewOutputText(text string) OutputText {
	return OutputText{Type: "output_text", Text: text}
}

// OutputItem is one item of the response output array. The gateway only
// produces assistant message items carrying output_text content.
type OutputItem struct {
	ID      string       `json:"id,omitempty"`
	Type    string       `json:"type"`
	Role    string       `json:"role"`
	Content []OutputText `json:"content"`
}

// NewAssistantMessage creates an assistant message output item with the
// given text as its single output_text part.
func NewAssistantMessage(itemID, text string) OutputItem {
	return OutputItem{
		ID:      itemID,
		Type:    "message",
		Role:    "assistant",
		Content: []OutputText{NewOutputText(text)},
	}
}

// Usage holds token usage figures for one response. The figures are either
// fully engine-reported or fully estimated, never mixed.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the terminal envelope returned to the client, both as the
// body of a non-streaming call and inside response.created /
// response.completed streaming events.
type Response struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	CreatedAt int64          `json:"created_at"`
	Model     string         `json:"model"`
	Status    ResponseStatus `json:"status"`
	Output    []OutputItem   `json:"output,omitempty"`
	Usage     *Usage         `json:"usage,omitempty"`
}

// ---------------------------------------------------------------------------
// Auxiliary endpoint payloads
// ---------------------------------------------------------------------------

// ModelInfo describes one entry of the GET /v1/models listing.
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the GET /v1/models response body.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

// HealthStatus is the GET /health response body.
type HealthStatus struct {
	Status  string `json:"status"`
	Agent   string `json:"agent"`
	Version string `json:"version"`
}
