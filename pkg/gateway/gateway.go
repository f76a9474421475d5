package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/graphgate/graphgate/pkg/api"
	"github.com/graphgate/graphgate/pkg/graph"
	"github.com/graphgate/graphgate/pkg/observability"
	"github.com/graphgate/graphgate/pkg/store"
	"github.com/graphgate/graphgate/pkg/transport"
)

// Gateway translates Responses API requests into graph runner invocations.
// It implements transport.ResponseCreator.
type Gateway struct {
	runner        graph.Runner
	conversations *store.Conversations
	logger        *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for request-scoped diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// New creates a Gateway backed by the given runner and conversation store.
func New(runner graph.Runner, conversations *store.Conversations, opts ...Option) *Gateway {
	g := &Gateway{
		runner:        runner,
		conversations: conversations,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateResponse implements transport.ResponseCreator. Validation failures
// and runner failures are returned as *api.APIError values; the transport
// layer maps them to an HTTP status or, mid-stream, to a single error
// event.
func (g *Gateway) CreateResponse(ctx context.Context, req *api.CreateResponseRequest, w transport.ResponseWriter) error {
	if apiErr := api.ValidateRequest(req); apiErr != nil {
		return apiErr
	}

	utterance := Utterance(req)
	if utterance == "" {
		return api.NewInvalidRequestError("input", "No input or user message found")
	}

	var prior []graph.Turn
	if req.PreviousResponseID != "" {
		if turns, ok := g.conversations.Get(req.PreviousResponseID); ok {
			prior = turns
		} else {
			g.logger.Debug("previous response not found, continuing without context",
				"previous_response_id", req.PreviousResponseID)
		}
	}

	input := BuildInput(utterance, req, prior)

	if req.Stream {
		return g.streamResponse(ctx, req, input, w)
	}
	return g.createResponse(ctx, req, input, w)
}

// createResponse handles the single-shot path: one Invoke call, one JSON
// envelope.
func (g *Gateway) createResponse(ctx context.Context, req *api.CreateResponseRequest, input *graph.Input, w transport.ResponseWriter) error {
	respID := api.NewResponseID()
	createdAt := time.Now().Unix()

	start := time.Now()
	result, err := g.runner.Invoke(ctx, input)
	observability.GraphLatency.WithLabelValues(g.runner.Name(), "invoke").Observe(time.Since(start).Seconds())
	if err != nil {
		observability.GraphInvocationsTotal.WithLabelValues(g.runner.Name(), "invoke", "error").Inc()
		g.logger.Error("graph invocation failed", "response_id", respID, "error", err)
		return api.NewServerError(fmt.Sprintf("Graph execution failed: %v", err))
	}
	observability.GraphInvocationsTotal.WithLabelValues(g.runner.Name(), "invoke", "ok").Inc()

	content := ContentFromResult(result)

	var acct Accountant
	acct.AddFromSnapshot(result)
	usage := acct.Finalize(input, content)
	recordTokens(usage, acct.Reported())

	resp := &api.Response{
		ID:        respID,
		Object:    "response",
		CreatedAt: createdAt,
		Model:     req.Model,
		Status:    api.ResponseStatusCompleted,
		Output:    []api.OutputItem{api.NewAssistantMessage(api.NewItemID(), content)},
		Usage:     usage,
	}

	if req.Store {
		g.storeConversation(respID, input, content)
	}

	return w.WriteResponse(ctx, resp)
}

// streamResponse handles the streaming path. The event order is fixed:
// response.created, response.output_item.added, zero or more
// response.output_text.delta events, response.output_item.done,
// response.completed. A runner failure mid-stream is returned to the
// transport layer, which replaces the remainder of the sequence with a
// single error event.
func (g *Gateway) streamResponse(ctx context.Context, req *api.CreateResponseRequest, input *graph.Input, w transport.ResponseWriter) error {
	respID := api.NewResponseID()
	itemID := api.NewItemID()
	createdAt := time.Now().Unix()

	created := api.StreamEvent{
		Type: api.EventResponseCreated,
		Response: &api.Response{
			ID:        respID,
			Object:    "response",
			CreatedAt: createdAt,
			Model:     req.Model,
			Status:    api.ResponseStatusInProgress,
		},
	}
	if err := w.WriteEvent(ctx, created); err != nil {
		return err
	}

	added := api.StreamEvent{
		Type:        api.EventOutputItemAdded,
		OutputIndex: api.Index(0),
		Item: &api.OutputItem{
			ID:      itemID,
			Type:    "message",
			Role:    "assistant",
			Content: []api.OutputText{api.NewOutputText("")},
		},
	}
	if err := w.WriteEvent(ctx, added); err != nil {
		return err
	}

	start := time.Now()
	steps, err := g.runner.Stream(ctx, input)
	if err != nil {
		observability.GraphInvocationsTotal.WithLabelValues(g.runner.Name(), "stream", "error").Inc()
		g.logger.Error("graph stream failed to start", "response_id", respID, "error", err)
		return api.NewServerError(fmt.Sprintf("Graph execution failed: %v", err))
	}

	var acct Accountant
	var accumulated string

	for step := range steps {
		if step.Err != nil {
			observability.GraphLatency.WithLabelValues(g.runner.Name(), "stream").Observe(time.Since(start).Seconds())
			observability.GraphInvocationsTotal.WithLabelValues(g.runner.Name(), "stream", "error").Inc()
			g.logger.Error("graph stream failed", "response_id", respID, "error", step.Err)
			return api.NewServerError(fmt.Sprintf("Graph execution failed: %v", step.Err))
		}

		acct.AddFromSnapshot(step.Snapshot)

		content := ContentFromSnapshot(step.Snapshot)
		if len(content) <= len(accumulated) {
			// Non-growing snapshots carry no new text.
			continue
		}
		delta := content[len(accumulated):]
		accumulated = content

		ev := api.StreamEvent{
			Type:         api.EventOutputTextDelta,
			ResponseID:   respID,
			ItemID:       itemID,
			OutputIndex:  api.Index(0),
			ContentIndex: api.Index(0),
			Delta:        delta,
		}
		if err := w.WriteEvent(ctx, ev); err != nil {
			g.logger.Debug("client gone, abandoning stream", "response_id", respID)
			return err
		}
	}

	observability.GraphLatency.WithLabelValues(g.runner.Name(), "stream").Observe(time.Since(start).Seconds())
	observability.GraphInvocationsTotal.WithLabelValues(g.runner.Name(), "stream", "ok").Inc()

	done := api.StreamEvent{
		Type:        api.EventOutputItemDone,
		OutputIndex: api.Index(0),
		Item: func() *api.OutputItem {
			item := api.NewAssistantMessage(itemID, accumulated)
			return &item
		}(),
	}
	if err := w.WriteEvent(ctx, done); err != nil {
		return err
	}

	usage := acct.Finalize(input, accumulated)
	recordTokens(usage, acct.Reported())

	completed := api.StreamEvent{
		Type: api.EventResponseCompleted,
		Response: &api.Response{
			ID:        respID,
			Object:    "response",
			CreatedAt: createdAt,
			Model:     req.Model,
			Status:    api.ResponseStatusCompleted,
			Usage:     usage,
		},
	}
	if err := w.WriteEvent(ctx, completed); err != nil {
		return err
	}

	// Stored only after a fully successful sequence so a chained request
	// never resurrects a failed turn.
	if req.Store {
		g.storeConversation(respID, input, accumulated)
	}
	return nil
}

// storeConversation records the turns a follow-up request chaining on this
// response will replay: the full runner input plus the assistant's answer.
func (g *Gateway) storeConversation(respID string, input *graph.Input, assistantText string) {
	turns := make([]graph.Turn, 0, len(input.Messages)+1)
	turns = append(turns, input.Messages...)
	turns = append(turns, graph.Turn{Role: "assistant", Content: assistantText})

	if err := g.conversations.Put(respID, turns); err != nil {
		// Response IDs are unique, so a conflict here is a programming
		// error worth surfacing in logs, not to the client.
		g.logger.Warn("failed to store conversation", "response_id", respID, "error", err)
		return
	}
	observability.StoredConversations.Set(float64(g.conversations.Len()))
}

// recordTokens feeds the usage figures into the token counters, labelled by
// whether the counts came from the engine or the fallback estimator.
func recordTokens(usage *api.Usage, reported bool) {
	source := "estimated"
	if reported {
		source = "engine"
	}
	observability.TokensTotal.WithLabelValues("prompt", source).Add(float64(usage.PromptTokens))
	observability.TokensTotal.WithLabelValues("completion", source).Add(float64(usage.CompletionTokens))
}
