// Package engine binds graph.Node identity and rib.RIB state together
// into the three constructible roles spec.md §2 describes (router,
// switch, client) and implements the behaviors spec.md §4 attaches to
// them: neighbor addition, message forwarding/dispatch, and multicast
// send/receive. internal/rib stays a pure data-and-algorithm library;
// engine is the protocol layer that drives it.
package engine

import (
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/rib"
)

// Node wraps a graph.Node with the RIB it owns, if it is a router.
type Node struct {
	G   *graph.Node
	RIB *rib.RIB // nil for switches and clients
}

// Engine owns every node constructed for a topology, the RIB directory
// that lets RIBs reach one another, and run-wide stats.
type Engine struct {
	graph  *graph.Registry
	nodes  map[*graph.Node]*Node
	ribs   map[*graph.Node]*rib.RIB
	logger logger.Logger
	Stats  Stats
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		graph:  graph.NewRegistry(),
		nodes:  make(map[*graph.Node]*Node),
		ribs:   make(map[*graph.Node]*rib.RIB),
		logger: &logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RIB implements rib.Directory: it resolves any router to its RIB.
func (e *Engine) RIB(router *graph.Node) *rib.RIB {
	return e.ribs[router]
}

// Registry exposes the underlying graph registry, e.g. for DomainTree().
func (e *Engine) Registry() *graph.Registry { return e.graph }

// Get looks up a previously constructed node by name.
func (e *Engine) Get(name string) (*Node, bool) {
	gn, ok := e.graph.Get(name)
	if !ok {
		return nil, false
	}
	return e.nodes[gn], true
}

func (e *Engine) wrap(gn *graph.Node) *Node {
	if gn == nil {
		return nil
	}
	return e.nodes[gn]
}

func (e *Engine) wrapAll(gns []*graph.Node) []*Node {
	out := make([]*Node, 0, len(gns))
	for _, gn := range gns {
		if n := e.wrap(gn); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Router constructs a router node. parent is nil for the root router.
func (e *Engine) Router(name string, parent *Node) *Node {
	var parentG *graph.Node
	if parent != nil {
		parentG = parent.G
	}
	gn := graph.New(name, graph.RoleRouter, parentG)
	e.graph.Add(gn)

	n := &Node{G: gn}
	e.nodes[gn] = n

	r := rib.New(gn, e, rib.WithLogger(e.logger.Named("rib").With(logger.FNode("router", gn))))
	n.RIB = r
	e.ribs[gn] = r

	e.logger.Debug("engine: router constructed", logger.FNode("node", gn))
	return n
}

// Switch constructs a pure-forwarding node belonging to parent's trust
// domain. parent must be a router.
func (e *Engine) Switch(name string, parent *Node) *Node {
	gn := graph.New(name, graph.RoleSwitch, parent.G)
	e.graph.Add(gn)
	n := &Node{G: gn}
	e.nodes[gn] = n
	e.logger.Debug("engine: switch constructed", logger.FNode("node", gn))
	return n
}

// Client constructs a leaf endpoint and links it to attach as its single
// initial neighbor (spec.md §3: "a client has exactly one initial
// neighbor"). Its trust domain is attach's own trust-domain router.
func (e *Engine) Client(name string, attach *Node) *Node {
	gn := graph.New(name, graph.RoleClient, attach.G.TrustDomainRouter())
	e.graph.Add(gn)
	n := &Node{G: gn}
	e.nodes[gn] = n
	e.AddNeighbor(n, attach, 1)
	e.logger.Debug("engine: client constructed", logger.FNode("node", gn), logger.FNode("attach", attach.G))
	return n
}

// AddNeighbor implements add_neighbor (spec.md §4.1): the single mutator
// of topology. cost is the link weight; Client links a new client to its
// attachment point at cost 1.
func (e *Engine) AddNeighbor(self, other *Node, cost int) {
	e.addNeighbor(self, other, cost, false)
}

func (e *Engine) addNeighbor(self, other *Node, cost int, reverse bool) {
	self.G.AbsorbNeighbor(other.G, cost)

	if reverse {
		return
	}

	e.addNeighbor(other, self, cost, true)
	e.propagateLink(self, other, cost)

	e.Stats.LinksAdded++
	e.Stats.TotalEdgeWeight += cost

	e.logger.Debug("engine: neighbor added",
		logger.FNode("self", self.G), logger.FNode("other", other.G), logger.F("cost", cost))
}

// propagateLink implements spec.md §4.1 step 5: emit RIB_ADD_LINK toward
// self.parent_router, or directly apply it to self's own RIB if self is
// itself a router (whose AddLink already performs the §4.3 propagation).
func (e *Engine) propagateLink(self, other *Node, cost int) {
	if self.RIB != nil {
		self.RIB.AddLink(self.G, other.G, cost)
		return
	}
	if self.G.ParentRouter == nil {
		return
	}
	if parentRIB := e.RIB(self.G.ParentRouter); parentRIB != nil {
		parentRIB.AddLink(self.G, other.G, cost)
	}
}
