// Package graph defines the contract between the gateway and the underlying
// graph execution engine. The engine is a black box: it consumes a list of
// role-tagged turns plus side metadata and produces either a final state or
// a stream of intermediate state snapshots. The gateway never interprets
// snapshot internals beyond the permissive extraction rules in pkg/gateway.
package graph

import "context"

// Turn is one role-tagged message of a conversation, in the canonical form
// the engine consumes and the conversation store persists.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Input is the invocation payload handed to a Runner. Messages carries the
// full conversation (prior context plus the current user turn); the
// remaining fields are opaque pass-through context.
type Input struct {
	Messages    []Turn         `json:"messages"`
	ThreadID    string         `json:"thread_id,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
}

// Snapshot is one state payload produced by the engine: the final state of
// an Invoke call, or one intermediate step of a Stream. Its shape is not
// controlled by this system; values may themselves contain a "messages"
// list whose last element carries the current assistant text.
type Snapshot map[string]any

// Step is one element of a streaming execution. Err is non-nil exactly once,
// as the final element of a failed stream; Snapshot is nil in that case.
type Step struct {
	Snapshot Snapshot
	Err      error
}

// Runner abstracts a graph execution engine.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Runner interface {
	// Name returns the runner identifier for logging and metrics.
	Name() string

	// Invoke performs a single-shot execution and returns the final state.
	Invoke(ctx context.Context, input *Input) (Snapshot, error)

	// Stream performs a step-wise execution. The returned channel receives
	// intermediate snapshots and is closed by the runner when execution
	// completes or fails. A failure is delivered as a final Step with Err
	// set. The runner must stop producing when ctx is cancelled.
	Stream(ctx context.Context, input *Input) (<-chan Step, error)

	// Close releases runner resources.
	Close() error
}
