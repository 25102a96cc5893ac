// Package ctxutil provides the small set of context.Context helpers the
// engine needs: an optional trace ID (internal/trace) and a hop counter
// recording the recursion depth spec.md §5 warns about ("Implementations
// in stack-limited environments should convert forwarding recursion into
// iteration" — the hop counter lets callers detect runaway recursion
// without doing that conversion).
package ctxutil

import (
	"context"
	"errors"
	"time"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/trace"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type hopsKey struct{}

// ContextOption configures NewContext. Multiple options can be combined.
type ContextOption func(*ctxConfig)

type ctxConfig struct {
	withTrace   bool
	traceOrigin string
	withHops    bool
	timeout     time.Duration
}

// WithTrace attaches a fresh trace ID derived from originName.
func WithTrace(originName string) ContextOption {
	return func(cfg *ctxConfig) {
		cfg.withTrace = true
		cfg.traceOrigin = originName
	}
}

// WithTimeout applies a timeout to the created context. The caller must
// invoke the returned cancel func.
func WithTimeout(d time.Duration) ContextOption {
	return func(cfg *ctxConfig) {
		cfg.timeout = d
	}
}

// WithHops initializes the hop counter at 0.
func WithHops() ContextOption {
	return func(cfg *ctxConfig) {
		cfg.withHops = true
	}
}

// NewContext builds a context.Context configured according to opts.
func NewContext(opts ...ContextOption) (context.Context, context.CancelFunc) {
	cfg := &ctxConfig{}
	for _, o := range opts {
		o(cfg)
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if cfg.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), cfg.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	if cfg.withTrace {
		ctx, _ = trace.AttachTraceID(ctx, cfg.traceOrigin)
	}
	if cfg.withHops {
		ctx = context.WithValue(ctx, hopsKey{}, 0)
	}

	return ctx, cancel
}

// TraceIDFromContext extracts the trace ID, or "" if none is present.
func TraceIDFromContext(ctx context.Context) string {
	return trace.GetTraceID(ctx)
}

// EnsureTraceID attaches a trace ID rooted at originName if ctx doesn't
// already carry one.
func EnsureTraceID(ctx context.Context, originName string) context.Context {
	if id := trace.GetTraceID(ctx); id == "" {
		ctx, _ = trace.AttachTraceID(ctx, originName)
	}
	return ctx
}

// HopsFromContext returns the current hop counter, or -1 if not set.
func HopsFromContext(ctx context.Context) int {
	if hops, ok := ctx.Value(hopsKey{}).(int); ok {
		return hops
	}
	return -1
}

// IncHops increments the hop counter if present; a context with no hop
// counter is returned unchanged.
func IncHops(ctx context.Context) context.Context {
	if hops, ok := ctx.Value(hopsKey{}).(int); ok {
		return context.WithValue(ctx, hopsKey{}, hops+1)
	}
	return ctx
}

// CheckContext reports a gRPC-flavored error if ctx has been canceled or
// its deadline has expired, nil otherwise. engine.Node.SendMessage calls
// it at the top of every unicast forwarding step so a canceled run
// unwinds promptly; the multicast forwarding path does not call it.
func CheckContext(ctx context.Context) error {
	switch err := ctx.Err(); {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled by caller")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	default:
		return nil
	}
}
