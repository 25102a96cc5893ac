// Package hoptrace wraps individual unicast/multicast forwarding hops
// (spec.md §4.2, §4.5) with OpenTelemetry spans, the in-process analogue of
// the teacher's lookuptrace package — which instruments gRPC calls crossing
// real process boundaries. Since spec.md places wire transport out of
// scope, there is no RPC boundary to propagate context across: every hop is
// a plain Go call already sharing the caller's context.Context, so this
// package only needs to start and end a span around it.
package hoptrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "multicast-simulator/hop"

var tracer = otel.Tracer(tracerName)

// StartHop begins a span named kind (e.g. "send_message",
// "send_multicast_message") carrying the forwarding node's name and the
// destination/group identifier. The returned func ends the span; callers
// should defer it.
//
// When no tracer provider has been installed (the common case — tracing is
// optional per SPEC_FULL.md §A.5), otel.Tracer returns a no-op tracer and this
// call costs essentially nothing.
func StartHop(ctx context.Context, kind, nodeName, target string) (context.Context, func()) {
	ctx, span := tracer.Start(ctx, kind, trace.WithAttributes(
		attribute.String("node", nodeName),
		attribute.String("target", target),
	))
	return ctx, span.End
}
