package transport

import (
	"context"
	"testing"
)

func TestInFlightCancelAll(t *testing.T) {
	r := NewInFlightRegistry()

	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	r.Register("resp_1", cancel1)
	r.Register("resp_2", cancel2)

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	if n := r.CancelAll(); n != 2 {
		t.Errorf("CancelAll = %d, want 2", n)
	}

	if ctx1.Err() == nil || ctx2.Err() == nil {
		t.Error("contexts not cancelled")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d after CancelAll, want 0", r.Len())
	}
}

func TestInFlightRemove(t *testing.T) {
	r := NewInFlightRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	r.Register("resp_1", cancel)
	r.Remove("resp_1")

	if ctx.Err() != nil {
		t.Error("Remove cancelled the context")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
