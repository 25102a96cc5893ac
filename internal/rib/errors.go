package rib

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error taxonomy from spec.md §7, expressed as in-band sentinel errors
// rather than exceptions. Every error is built with status.New so callers
// can compare kinds via status.Code(err) the way the teacher's
// internal/node/operation.go compares gRPC status codes.
var (
	// ErrNoRoute is returned by QueryNextHop when neither local Dijkstra
	// nor parent escalation finds a path to the destination.
	ErrNoRoute = status.New(codes.NotFound, "no route to destination").Err()

	// ErrUnknownGroup is returned by QueryNextMulticastHops when the
	// query reaches a router with no parent and no entry for the group.
	ErrUnknownGroup = status.New(codes.NotFound, "unknown multicast group").Err()

	// ErrPathNotFound is returned by DijkstraToAny when no path exists from
	// the start node to any node in the target set. Callers performing a
	// multicast splice MUST abort the join without mutating the tree
	// (spec.md §9 Open Question 2, resolved in favor of refusing the join).
	ErrPathNotFound = status.New(codes.FailedPrecondition, "no path to any target node").Err()

	// ErrGroupNotFound is returned by RouterJoinMulticastGroup when a
	// router has no entry for the group and no parent to escalate to.
	ErrGroupNotFound = status.New(codes.NotFound, "multicast group not found").Err()
)
