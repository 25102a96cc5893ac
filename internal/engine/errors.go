package engine

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrUnsupportedMessageKind is returned when a switch or client receives a
// message kind only a router's handle_message dispatch table understands
// (spec.md §4.2: "A switch/client only handles the leaf kinds").
var ErrUnsupportedMessageKind = status.New(codes.Unimplemented, "message kind not supported by this node's role").Err()
