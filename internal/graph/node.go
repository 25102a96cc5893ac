// Package graph holds the shared, role-agnostic building blocks of the
// simulated fabric: node identity, neighbor sets, and the per-node
// unicast/multicast routing-table caches described in spec.md §3.
package graph

import "fmt"

// Role tags which of the three node kinds a Node plays in the fabric.
type Role int

const (
	RoleRouter Role = iota
	RoleSwitch
	RoleClient
)

func (r Role) String() string {
	switch r {
	case RoleRouter:
		return "router"
	case RoleSwitch:
		return "switch"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}

// Edge is an undirected, weighted link between two nodes, as recorded in
// a router's rib_edges (spec.md §3).
type Edge struct {
	A    *Node
	B    *Node
	Cost int
}

// Other returns the endpoint of e that isn't n, or nil if n isn't an
// endpoint of e.
func (e Edge) Other(n *Node) *Node {
	switch n {
	case e.A:
		return e.B
	case e.B:
		return e.A
	default:
		return nil
	}
}

// RouteEntry is the value side of a node's routing_table: the next hop
// to take towards a destination, and the cached distance to it. A nil
// NextHop paired with distance 0 represents the self entry.
type RouteEntry struct {
	NextHop  *Node
	Distance int
}

// Node is the shared representation backing routers, switches, and
// clients (spec.md §3). Role-specific state (the RIB, multicast_groups)
// lives alongside it in the engine and rib packages, keyed by the same
// *Node identity.
type Node struct {
	Name  string
	Role  Role
	Depth int // not part of the spec; used by DomainTree() for reporting

	// ParentRouter is the router whose trust domain this node belongs to,
	// or nil if this node is the root router.
	ParentRouter *Node

	Neighbors map[*Node]struct{}

	// RoutingTable maps destination -> (next hop, distance). self -> (nil, 0)
	// is always present, per the invariant in spec.md §3.
	RoutingTable map[*Node]RouteEntry

	// MulticastRoutingTable maps group name -> cached next-hop list.
	MulticastRoutingTable map[string][]*Node

	// MulticastGroups is the set of groups this node is a joined member
	// of. Only meaningful for clients, but kept on Node so that
	// receive_multicast_message (spec.md §4.5) can check membership
	// uniformly regardless of role.
	MulticastGroups map[string]struct{}
}

// New creates a bare Node of the given role, already containing the
// mandatory self routing-table entry.
func New(name string, role Role, parent *Node) *Node {
	n := &Node{
		Name:                  name,
		Role:                  role,
		ParentRouter:          parent,
		Neighbors:             make(map[*Node]struct{}),
		RoutingTable:          make(map[*Node]RouteEntry),
		MulticastRoutingTable: make(map[string][]*Node),
		MulticastGroups:       make(map[string]struct{}),
	}
	n.RoutingTable[n] = RouteEntry{NextHop: nil, Distance: 0}
	if parent != nil {
		n.Depth = parent.Depth + 1
	}
	return n
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}

func (n *Node) GoString() string {
	return fmt.Sprintf("Node(%s, %s)", n.Name, n.Role)
}

// TrustDomainRouter returns the router at the root of this node's own
// trust domain: itself if it is a router, otherwise ParentRouter.
func (n *Node) TrustDomainRouter() *Node {
	if n.Role == RoleRouter {
		return n
	}
	return n.ParentRouter
}

// HasNeighbor reports whether other is a direct neighbor of n.
func (n *Node) HasNeighbor(other *Node) bool {
	_, ok := n.Neighbors[other]
	return ok
}

// AbsorbNeighbor performs the local routing-table half of spec.md §4.1
// steps 1-3: record other as a neighbor, seed the direct route to it, and
// relax every route other already knows through it. It does not recurse
// to other and does not emit RIB_ADD_LINK; callers (internal/engine) own
// the symmetric propagation and message emission described in the rest
// of §4.1.
func (n *Node) AbsorbNeighbor(other *Node, cost int) {
	n.Neighbors[other] = struct{}{}
	n.UpdateRoute(other, other, cost)
	for dest, entry := range other.RoutingTable {
		n.UpdateRoute(dest, other, entry.Distance+cost)
	}
}

// UpdateRoute installs (nextHop, distance) for destination if no entry
// exists yet or the new distance strictly improves on the cached one.
// Returns whether the table was changed, matching the "absent or
// strictly better" phrasing used throughout spec.md §4.1.
func (n *Node) UpdateRoute(destination, nextHop *Node, distance int) bool {
	current, ok := n.RoutingTable[destination]
	if !ok || distance < current.Distance {
		n.RoutingTable[destination] = RouteEntry{NextHop: nextHop, Distance: distance}
		return true
	}
	return false
}
