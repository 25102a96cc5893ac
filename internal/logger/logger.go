// Package logger defines the minimal structured-logging interface used
// throughout the simulator, so that internal/rib and internal/engine never
// import a concrete logging library directly.
package logger

import "github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"

// Field is a single structured key/value pair attached to a log line.
type Field struct {
	Key string
	Val any
}

// Logger is the logging surface required by rib and engine. Named/With
// mirror zap's scoping conventions so the zap adapter is a thin pass-through.
type Logger interface {
	Named(name string) Logger
	With(fields ...Field) Logger
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// F builds a Field concisely.
func F(key string, val any) Field { return Field{Key: key, Val: val} }

// FNode serializes a graph.Node into a compact, structured field.
func FNode(key string, n *graph.Node) Field {
	if n == nil {
		return Field{Key: key, Val: nil}
	}
	return Field{
		Key: key,
		Val: map[string]any{
			"name": n.Name,
			"role": n.Role.String(),
		},
	}
}

// NopLogger discards everything. It is the default for every component
// that accepts a Logger via functional option.
type NopLogger struct{}

func (l *NopLogger) Named(name string) Logger         { return l }
func (l *NopLogger) With(fields ...Field) Logger      { return l }
func (l *NopLogger) Debug(msg string, fields ...Field) {}
func (l *NopLogger) Info(msg string, fields ...Field)  {}
func (l *NopLogger) Warn(msg string, fields ...Field)  {}
func (l *NopLogger) Error(msg string, fields ...Field) {}
