package ctxutil

import "testing"

func TestNewContextWithoutTimeoutReturnsUsableCancel(t *testing.T) {
	ctx, cancel := NewContext(WithHops())
	defer cancel() // must not panic even though no timeout was requested

	if HopsFromContext(ctx) != 0 {
		t.Fatalf("expected hop counter to start at 0, got %d", HopsFromContext(ctx))
	}
}

func TestHopsFromContextUnsetReturnsNegativeOne(t *testing.T) {
	ctx, cancel := NewContext()
	defer cancel()

	if got := HopsFromContext(ctx); got != -1 {
		t.Fatalf("expected -1 for a context with no hop counter, got %d", got)
	}
}

func TestIncHops(t *testing.T) {
	ctx, cancel := NewContext(WithHops())
	defer cancel()

	ctx = IncHops(ctx)
	ctx = IncHops(ctx)
	if got := HopsFromContext(ctx); got != 2 {
		t.Fatalf("expected hop counter 2 after two increments, got %d", got)
	}
}

func TestCheckContextCanceled(t *testing.T) {
	ctx, cancel := NewContext()
	cancel()

	if err := CheckContext(ctx); err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}

func TestCheckContextLive(t *testing.T) {
	ctx, cancel := NewContext()
	defer cancel()

	if err := CheckContext(ctx); err != nil {
		t.Fatalf("expected no error for a live context, got %v", err)
	}
}

func TestEnsureTraceIDAttachesOnlyOnce(t *testing.T) {
	ctx, cancel := NewContext()
	defer cancel()

	ctx = EnsureTraceID(ctx, "origin")
	id := TraceIDFromContext(ctx)
	if id == "" {
		t.Fatal("expected a trace ID to be attached")
	}

	ctx = EnsureTraceID(ctx, "other-origin")
	if got := TraceIDFromContext(ctx); got != id {
		t.Fatalf("expected EnsureTraceID to leave an existing trace ID untouched, got %q want %q", got, id)
	}
}
