// Package rib implements the per-router Routing Information Base: the
// authoritative intra-domain topology view, child-domain ownership map,
// and multicast GroupEntry bookkeeping described in spec.md §3-§4. It is
// the hard part of the simulator — link/ownership propagation, Dijkstra-
// based next-hop resolution, and multicast tree construction/LCA
// transfer all live here.
//
// A RIB reaches other routers' RIBs through a Directory rather than a
// generic message bus: spec.md §5 sanctions this ("any implementation may
// run in a single process or over real transport... external observable
// behavior is identical"), and every rib_* operation in spec.md §4 is
// itself described as a RIB-level algorithm, not a message-dispatch
// concern. internal/engine still models the externally-visible message
// kinds (spec.md §6) and wraps these calls with hop tracing and logging.
package rib

import (
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"
)

// GroupEntry is the per-router, per-group bookkeeping record described in
// spec.md §3. Internal and external trees are populated independently:
// InternalMembers/Nodes/Edges only when IsMember, ExternalMembers/Nodes/
// Edges only while this router is the current LCA.
type GroupEntry struct {
	// LCA is the router currently designated lowest common ancestor for
	// the group, or nil if this router doesn't need to know it (a non-LCA
	// router that only holds an internal tree, per spec.md §4.5 rule 1).
	LCA *graph.Node

	// Owner is the original creating client, the credentials authority.
	Owner *graph.Node

	// IsMember reports whether this router has at least one local
	// (internal) joined member.
	IsMember bool

	InternalMembers map[*graph.Node]struct{}
	InternalNodes   map[*graph.Node]struct{}
	InternalEdges   []graph.Edge

	ExternalMembers map[*graph.Node]struct{}
	ExternalNodes   map[*graph.Node]struct{}
	ExternalEdges   []graph.Edge
}

func newGroupEntry() *GroupEntry {
	return &GroupEntry{
		InternalMembers: make(map[*graph.Node]struct{}),
		InternalNodes:   make(map[*graph.Node]struct{}),
		ExternalMembers: make(map[*graph.Node]struct{}),
		ExternalNodes:   make(map[*graph.Node]struct{}),
	}
}

// Directory resolves any router in the topology to its RIB. Every RIB in
// a topology shares the same Directory (backed by internal/engine's
// registry), letting a RIB reach an arbitrary ancestor or descendant
// router's RIB directly for escalation, LCA transfer, and LCA broadcast.
type Directory interface {
	RIB(router *graph.Node) *RIB
}

// RIB is the routing and multicast state owned by a single router node.
type RIB struct {
	logger logger.Logger
	router *graph.Node
	dir    Directory

	nodes           map[*graph.Node]struct{}
	edges           []graph.Edge
	childOwnerships map[*graph.Node]map[*graph.Node]struct{}
	groups          map[string]*GroupEntry
}

// New creates an empty RIB owned by router. dir must resolve router's
// entire ancestor chain (and, for multicast, any router reachable in the
// topology) to their RIBs.
func New(router *graph.Node, dir Directory, opts ...Option) *RIB {
	r := &RIB{
		logger:          &logger.NopLogger{},
		router:          router,
		dir:             dir,
		nodes:           make(map[*graph.Node]struct{}),
		childOwnerships: make(map[*graph.Node]map[*graph.Node]struct{}),
		groups:          make(map[string]*GroupEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger.Debug("rib initialized", logger.FNode("router", router))
	return r
}

// Router returns the router node this RIB is owned by.
func (r *RIB) Router() *graph.Node { return r.router }

// Nodes returns the set of nodes this RIB knows to exist in its domain.
func (r *RIB) Nodes() map[*graph.Node]struct{} { return r.nodes }

// Edges returns the RIB's known edge set.
func (r *RIB) Edges() []graph.Edge { return r.edges }

// ChildOwnerships returns the child-router -> owned-node-set map.
func (r *RIB) ChildOwnerships() map[*graph.Node]map[*graph.Node]struct{} {
	return r.childOwnerships
}

// Group returns the GroupEntry for name, if any.
func (r *RIB) Group(name string) (*GroupEntry, bool) {
	g, ok := r.groups[name]
	return g, ok
}

func (r *RIB) parentRIB() *RIB {
	if r.router.ParentRouter == nil {
		return nil
	}
	return r.dir.RIB(r.router.ParentRouter)
}

// AddLink handles RIB_ADD_LINK (spec.md §4.3), including the call
// originating from this router's own add_neighbor.
func (r *RIB) AddLink(a, b *graph.Node, cost int) {
	r.nodes[a] = struct{}{}
	r.nodes[b] = struct{}{}
	r.edges = append(r.edges, graph.Edge{A: a, B: b, Cost: cost})

	parent := r.parentRIB()
	if a.TrustDomainRouter() != b.TrustDomainRouter() {
		// Cross-domain link: ancestors must see the raw edge too.
		if parent != nil {
			parent.AddLink(a, b, cost)
		}
		r.logger.Debug("rib: recorded cross-domain link",
			logger.FNode("a", a), logger.FNode("b", b), logger.F("cost", cost))
		return
	}

	// Intra-domain link: ancestors learn coarse ownership only. A router
	// endpoint needs no ownership record of its own (its position in the
	// trust-domain tree already says who owns it); only its non-router
	// peer does.
	if parent != nil {
		if a.Role != graph.RoleRouter {
			parent.AddOwnership(r.router, a)
		}
		if b.Role != graph.RoleRouter {
			parent.AddOwnership(r.router, b)
		}
	}
	r.logger.Debug("rib: recorded intra-domain link",
		logger.FNode("a", a), logger.FNode("b", b), logger.F("cost", cost))
}

// AddOwnership handles RIB_ADD_OWNERSHIP (spec.md §4.3).
func (r *RIB) AddOwnership(ownerRouter, node *graph.Node) {
	if r.router != ownerRouter {
		set, ok := r.childOwnerships[ownerRouter]
		if !ok {
			set = make(map[*graph.Node]struct{})
			r.childOwnerships[ownerRouter] = set
		}
		set[node] = struct{}{}
		r.logger.Debug("rib: recorded child ownership",
			logger.FNode("owner_router", ownerRouter), logger.FNode("node", node))
	}
	if parent := r.parentRIB(); parent != nil {
		parent.AddOwnership(ownerRouter, node)
	}
}

// QueryNextHop implements rib_query_next_hop (spec.md §4.4): the
// cross-domain next-hop resolution protocol, executed at this RIB's
// router R.
func (r *RIB) QueryNextHop(start, destination *graph.Node) (*graph.Node, int, error) {
	if start == destination {
		return nil, 0, nil
	}

	if destination.ParentRouter == r.router {
		if hop, dist, ok := r.dijkstraFirstHop(start, destination); ok {
			return hop, dist, nil
		}
		return r.escalateNextHop(start, destination)
	}

	if start.Role != graph.RoleRouter {
		if hop, dist, ok := r.dijkstraFirstHop(start, start.ParentRouter); ok {
			return hop, dist, nil
		}
		return r.escalateNextHop(start, destination)
	}

	if hop, dist, ok := r.dijkstraFirstHop(start, destination.TrustDomainRouter()); ok {
		return hop, dist, nil
	}
	return r.escalateNextHop(start, destination)
}

func (r *RIB) escalateNextHop(start, destination *graph.Node) (*graph.Node, int, error) {
	parent := r.parentRIB()
	if parent == nil {
		r.logger.Warn("rib: no route and no parent to escalate to",
			logger.FNode("start", start), logger.FNode("destination", destination))
		return nil, 0, ErrNoRoute
	}
	return parent.QueryNextHop(start, destination)
}
