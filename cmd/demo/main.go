// Command demo exercises the gateway end to end without any backend: a
// scripted in-process runner streams a canned answer word by word, and the
// demo drives both the non-streaming and the streaming path, including a
// chained follow-up request via previous_response_id. Events are printed
// exactly as they would appear on the wire.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/graphgate/graphgate/pkg/api"
	"github.com/graphgate/graphgate/pkg/gateway"
	"github.com/graphgate/graphgate/pkg/graph"
	"github.com/graphgate/graphgate/pkg/store"
	"github.com/graphgate/graphgate/pkg/transport"
)

// scriptedRunner answers every conversation with a fixed reply, streamed
// word by word as growing snapshots.
type scriptedRunner struct {
	reply string
}

func (r *scriptedRunner) Name() string { return "scripted" }

func (r *scriptedRunner) Invoke(ctx context.Context, input *graph.Input) (graph.Snapshot, error) {
	return r.snapshot(r.reply), nil
}

func (r *scriptedRunner) Stream(ctx context.Context, input *graph.Input) (<-chan graph.Step, error) {
	words := strings.Fields(r.reply)
	steps := make(chan graph.Step, len(words))
	go func() {
		defer close(steps)
		var accumulated string
		for _, word := range words {
			if accumulated != "" {
				accumulated += " "
			}
			accumulated += word
			select {
			case steps <- graph.Step{Snapshot: r.snapshot(accumulated)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return steps, nil
}

func (r *scriptedRunner) Close() error { return nil }

func (r *scriptedRunner) snapshot(text string) graph.Snapshot {
	return graph.Snapshot{
		"messages": []any{
			map[string]any{"role": "assistant", "content": text},
		},
	}
}

// stdoutWriter prints responses and events the way the HTTP transport
// would serialize them.
type stdoutWriter struct {
	lastResponse *api.Response
}

func (w *stdoutWriter) WriteEvent(ctx context.Context, event api.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	fmt.Printf("data: %s\n\n", data)
	return nil
}

func (w *stdoutWriter) WriteResponse(ctx context.Context, resp *api.Response) error {
	w.lastResponse = resp
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (w *stdoutWriter) Flush() error { return nil }

var _ transport.ResponseWriter = (*stdoutWriter)(nil)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	runner := &scriptedRunner{reply: "The answer is 4."}
	gw := gateway.New(runner, store.New())

	fmt.Println("== non-streaming request ==")
	first := &stdoutWriter{}
	err := gw.CreateResponse(ctx, &api.CreateResponseRequest{
		Model: "demo-agent",
		Input: &api.Input{Text: "What is 2+2?", IsString: true},
		Store: true,
	}, first)
	if err != nil {
		return err
	}

	fmt.Println("== chained streaming request ==")
	second := &stdoutWriter{}
	err = gw.CreateResponse(ctx, &api.CreateResponseRequest{
		Model:              "demo-agent",
		Input:              &api.Input{Text: "Are you sure?", IsString: true},
		Stream:             true,
		PreviousResponseID: first.lastResponse.ID,
	}, second)
	if err != nil {
		return err
	}

	return nil
}
