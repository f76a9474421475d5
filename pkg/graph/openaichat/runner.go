// Package openaichat provides a graph.Runner backed by any OpenAI-compatible
// chat completion backend (OpenAI, vLLM, Ollama, LiteLLM). It is the
// reference runner: a one-node graph whose single step is one chat
// completion call. Snapshots carry the canonical messages shape the
// gateway's extractor understands, with token usage attached as message
// metadata.
package openaichat

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/graphgate/graphgate/pkg/debug"
	"github.com/graphgate/graphgate/pkg/graph"
)

// Config holds the backend connection settings.
type Config struct {
	// BaseURL points at an OpenAI-compatible endpoint, e.g.
	// http://localhost:8000/v1 for vLLM.
	BaseURL string

	// APIKey is optional; local backends usually ignore it.
	APIKey string

	// Model is the model name forwarded to the backend.
	Model string
}

// Runner executes conversations against an OpenAI-compatible backend.
type Runner struct {
	client openai.Client
	model  string
}

var _ graph.Runner = (*Runner)(nil)

// New creates a Runner for the configured backend.
func New(cfg Config) *Runner {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// Local backends reject a missing key header even when they
		// ignore its value.
		opts = append(opts, option.WithAPIKey("dummy"))
	}

	return &Runner{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Name implements graph.Runner.
func (r *Runner) Name() string { return "openai-chat" }

// Invoke implements graph.Runner. It performs a single chat completion
// call and returns the final state as a one-message snapshot.
func (r *Runner) Invoke(ctx context.Context, input *graph.Input) (graph.Snapshot, error) {
	params, err := r.buildParams(input)
	if err != nil {
		return nil, err
	}

	debug.Log("graph", "invoking chat completion", "model", r.model, "messages", len(input.Messages))

	completion, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	text := completion.Choices[0].Message.Content
	usage := map[string]any{
		"prompt_tokens":     float64(completion.Usage.PromptTokens),
		"completion_tokens": float64(completion.Usage.CompletionTokens),
		"total_tokens":      float64(completion.Usage.TotalTokens),
	}

	return assistantSnapshot(text, usage), nil
}

// Stream implements graph.Runner. Each chunk from the backend yields one
// snapshot holding the full text accumulated so far, which is the growth
// contract the gateway's delta computation relies on.
func (r *Runner) Stream(ctx context.Context, input *graph.Input) (<-chan graph.Step, error) {
	params, err := r.buildParams(input)
	if err != nil {
		return nil, err
	}
	params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
		IncludeUsage: openai.Bool(true),
	}

	debug.Log("graph", "streaming chat completion", "model", r.model, "messages", len(input.Messages))

	stream := r.client.Chat.Completions.NewStreaming(ctx, params)
	steps := make(chan graph.Step, 8)

	go func() {
		defer close(steps)
		defer stream.Close()

		var accumulated string
		var usage map[string]any

		for stream.Next() {
			chunk := stream.Current()

			if chunk.Usage.TotalTokens > 0 {
				usage = map[string]any{
					"prompt_tokens":     float64(chunk.Usage.PromptTokens),
					"completion_tokens": float64(chunk.Usage.CompletionTokens),
					"total_tokens":      float64(chunk.Usage.TotalTokens),
				}
			}

			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			accumulated += chunk.Choices[0].Delta.Content

			select {
			case steps <- graph.Step{Snapshot: assistantSnapshot(accumulated, nil)}:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil {
			select {
			case steps <- graph.Step{Err: fmt.Errorf("chat completion stream: %w", err)}:
			case <-ctx.Done():
			}
			return
		}

		// Final snapshot repeats the full text with usage attached; the
		// gateway absorbs the non-growing text and keeps the counts.
		if usage != nil {
			select {
			case steps <- graph.Step{Snapshot: assistantSnapshot(accumulated, usage)}:
			case <-ctx.Done():
			}
		}
	}()

	return steps, nil
}

// Close implements graph.Runner.
func (r *Runner) Close() error { return nil }

// buildParams converts the runner input into chat completion parameters.
func (r *Runner) buildParams(input *graph.Input) (openai.ChatCompletionNewParams, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(input.Messages))
	for _, turn := range input.Messages {
		switch turn.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(turn.Content))
		case "developer":
			messages = append(messages, openai.DeveloperMessage(turn.Content))
		case "user":
			messages = append(messages, openai.UserMessage(turn.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			return openai.ChatCompletionNewParams{}, fmt.Errorf("unsupported message role: %s", turn.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(r.model),
		Messages: messages,
	}
	if input.Temperature != nil {
		params.Temperature = openai.Float(*input.Temperature)
	}
	if input.UserID != "" {
		params.User = openai.String(input.UserID)
	}
	return params, nil
}

// assistantSnapshot builds the canonical one-message snapshot shape.
func assistantSnapshot(text string, tokenUsage map[string]any) graph.Snapshot {
	msg := map[string]any{
		"role":    "assistant",
		"content": text,
	}
	if tokenUsage != nil {
		msg["response_metadata"] = map[string]any{
			"token_usage": tokenUsage,
		}
	}
	return graph.Snapshot{
		"messages": []any{msg},
	}
}
