package api

// StreamEventType identifies the type of a streaming event.
type StreamEventType string

// Event types emitted during a streaming response, in lifecycle order.
// EventError replaces the remainder of the sequence when the graph
// runner fails mid-stream.
const (
	EventResponseCreated   StreamEventType = "response.created"
	EventOutputItemAdded   StreamEventType = "response.output_item.added"
	EventOutputTextDelta   StreamEventType = "response.output_text.delta"
	EventOutputItemDone    StreamEventType = "response.output_item.done"
	EventResponseCompleted StreamEventType = "response.completed"
	EventError             StreamEventType = "error"
)

// StreamEvent represents a single server-sent event in a streaming response.
// Fields are populated per event type; unused fields stay absent on the wire.
type StreamEvent struct {
	Type         StreamEventType `json:"type"`
	Response     *Response       `json:"response,omitempty"`
	Item         *OutputItem     `json:"item,omitempty"`
	Delta        string          `json:"delta,omitempty"`
	ResponseID   string          `json:"response_id,omitempty"`
	ItemID       string          `json:"item_id,omitempty"`
	OutputIndex  *int            `json:"output_index,omitempty"`
	ContentIndex *int            `json:"content_index,omitempty"`
	Error        *APIError       `json:"error,omitempty"`
}

// terminal event types end a streaming response.
var terminalEventTypes = map[StreamEventType]bool{
	EventResponseCompleted: true,
	EventError:             true,
}

// IsTerminalEvent reports whether the event type ends a streaming response.
func IsTerminalEvent(t StreamEventType) bool {
	return terminalEventTypes[t]
}

// Index returns a pointer to i for use in StreamEvent index fields, which
// must serialize the zero value explicitly.
func Index(i int) *int {
	return &i
}
