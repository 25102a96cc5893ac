// Package trace attaches a per-message-flow trace ID to a context.Context,
// used for log correlation across the hops a message takes through the
// fabric (spec.md §4.2).
package trace

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type traceKey struct{}

// GenerateTraceID creates a globally unique trace ID in the form
// "<originName>-<uuid>".
func GenerateTraceID(originName string) string {
	return fmt.Sprintf("%s-%s", originName, uuid.NewString())
}

// AttachTraceID generates a trace ID rooted at originName and stores it in
// the returned context.
func AttachTraceID(ctx context.Context, originName string) (context.Context, string) {
	id := GenerateTraceID(originName)
	return context.WithValue(ctx, traceKey{}, id), id
}

// GetTraceID retrieves the trace ID from ctx, or "" if none is present.
func GetTraceID(ctx context.Context) string {
	if v := ctx.Value(traceKey{}); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
