package rib

import (
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"
)

func mapKeys(m map[*graph.Node]struct{}) []*graph.Node {
	out := make([]*graph.Node, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	return out
}

func union(dst map[*graph.Node]struct{}, nodes []*graph.Node) {
	for _, n := range nodes {
		dst[n] = struct{}{}
	}
}

// CreateMulticastGroup implements the CLIENT_CREATE_MULTICAST_GROUP flow
// of spec.md §4.5, executed at creator's trust-domain router R (this RIB).
func (r *RIB) CreateMulticastGroup(creator *graph.Node, name string) (*graph.Node, error) {
	r.AddMulticastGroup(name, r.router, creator)
	if _, err := r.RouterJoinMulticastGroup(r.router, name); err != nil {
		return nil, err
	}
	return r.ClientJoinMulticastGroup(creator, name)
}

// AddMulticastGroup handles ADD_MULTICAST_GROUP (spec.md §4.5 step 1):
// install an entry recording lca/owner if this router doesn't have one
// yet, then propagate one hop further up.
func (r *RIB) AddMulticastGroup(name string, lca, owner *graph.Node) {
	if _, exists := r.groups[name]; !exists {
		g := newGroupEntry()
		g.LCA = lca
		g.Owner = owner
		r.groups[name] = g
		r.logger.Debug("rib: installed multicast group entry",
			logger.F("name", name), logger.FNode("lca", lca), logger.FNode("owner", owner))
	}
	if parent := r.parentRIB(); parent != nil {
		parent.AddMulticastGroup(name, lca, owner)
	}
}

// RouterJoinMulticastGroup implements rib_router_join_multicast_group
// (spec.md §4.5), executed at this RIB's router R.
func (r *RIB) RouterJoinMulticastGroup(joiningRouter *graph.Node, name string) (*graph.Node, error) {
	g, exists := r.groups[name]
	if !exists {
		parent := r.parentRIB()
		if parent == nil {
			return nil, ErrGroupNotFound
		}
		g = newGroupEntry()
		g.IsMember = true
		g.InternalNodes[r.router] = struct{}{}
		r.groups[name] = g
	} else if !g.IsMember {
		g.IsMember = true
		g.InternalNodes[r.router] = struct{}{}
	}

	if g.LCA != nil && g.LCA != r.router {
		demoted := false
		for cur := g.LCA.ParentRouter; cur != nil; cur = cur.ParentRouter {
			if cur == r.router {
				demoted = true
				break
			}
		}
		if demoted {
			if err := r.demoteLCA(name, g); err != nil {
				return nil, err
			}
		}
	}

	if g.LCA == r.router {
		if err := r.spliceExternal(g, joiningRouter); err != nil {
			return nil, err
		}
		if err := r.spliceInternalSelf(g); err != nil {
			return nil, err
		}
		return g.Owner, nil
	}

	parent := r.parentRIB()
	if parent == nil {
		return nil, ErrGroupNotFound
	}
	owner, err := parent.RouterJoinMulticastGroup(joiningRouter, name)
	if err != nil {
		return nil, err
	}
	g.Owner = owner
	return owner, nil
}

// ClientJoinMulticastGroup implements rib_client_join_multicast_group
// (spec.md §4.5), executed at R = client's trust-domain router.
func (r *RIB) ClientJoinMulticastGroup(client *graph.Node, name string) (*graph.Node, error) {
	owner, err := r.RouterJoinMulticastGroup(r.router, name)
	if err != nil {
		return nil, err
	}

	g := r.groups[name]
	if _, already := g.InternalMembers[client]; already {
		// spec.md §9 Open Question 1: re-join by an already-joined client is
		// a membership no-op; it does not re-trigger the splice.
		return owner, nil
	}

	if len(g.InternalNodes) > 0 {
		nodes, edges, err := r.DijkstraToAny(client, g.InternalNodes)
		if err != nil {
			return nil, err
		}
		union(g.InternalNodes, nodes)
		g.InternalEdges = append(g.InternalEdges, edges...)
	} else {
		g.InternalNodes[client] = struct{}{}
	}
	g.InternalMembers[client] = struct{}{}
	return owner, nil
}

// spliceExternal adds joiningRouter to g's external tree, splicing via
// Dijkstra from joiningRouter to the existing external_nodes when any
// exist (spec.md §4.5 step 4).
func (r *RIB) spliceExternal(g *GroupEntry, joiningRouter *graph.Node) error {
	if len(g.ExternalNodes) > 0 {
		nodes, edges, err := r.DijkstraToAny(joiningRouter, g.ExternalNodes)
		if err != nil {
			return err
		}
		union(g.ExternalNodes, nodes)
		g.ExternalEdges = append(g.ExternalEdges, edges...)
	} else {
		g.ExternalNodes[joiningRouter] = struct{}{}
	}
	g.ExternalMembers[joiningRouter] = struct{}{}
	return nil
}

// spliceInternalSelf ensures R itself is present in its internal tree
// (spec.md §4.5 step 4, last bullet).
func (r *RIB) spliceInternalSelf(g *GroupEntry) error {
	if len(g.InternalNodes) > 0 {
		nodes, edges, err := r.DijkstraToAny(r.router, g.InternalNodes)
		if err != nil {
			return err
		}
		union(g.InternalNodes, nodes)
		g.InternalEdges = append(g.InternalEdges, edges...)
	} else {
		g.InternalNodes[r.router] = struct{}{}
	}
	return nil
}

// demoteLCA implements spec.md §4.5 step 3: transfer the external tree
// from the current LCA (a descendant of this router) to this router,
// then broadcast the new LCA identity.
func (r *RIB) demoteLCA(name string, g *GroupEntry) error {
	oldLCA := g.LCA
	oldRIB := r.dir.RIB(oldLCA)

	extMembers, extNodes, extEdges, err := oldRIB.transferOutLCA(name)
	if err != nil {
		return err
	}

	union(g.ExternalMembers, extMembers)
	union(g.ExternalNodes, extNodes)
	g.ExternalEdges = append(g.ExternalEdges, extEdges...)

	if len(g.ExternalNodes) > 0 {
		nodes, edges, err := r.DijkstraToAny(oldLCA, g.ExternalNodes)
		if err != nil {
			return err
		}
		union(g.ExternalNodes, nodes)
		g.ExternalEdges = append(g.ExternalEdges, edges...)
	} else {
		g.ExternalNodes[oldLCA] = struct{}{}
	}
	g.ExternalMembers[oldLCA] = struct{}{}

	g.LCA = r.router
	r.broadcastLCA(name, r.router)

	r.logger.Info("rib: LCA transferred",
		logger.F("group", name), logger.FNode("old_lca", oldLCA), logger.FNode("new_lca", r.router))
	return nil
}

// transferOutLCA hands over this RIB's external tree for name to a new
// LCA and clears it locally, then ensures this router is present in its
// own internal tree (spec.md §4.5 step 3, "old LCA also adds itself to
// its internal tree").
func (r *RIB) transferOutLCA(name string) ([]*graph.Node, []*graph.Node, []graph.Edge, error) {
	g, exists := r.groups[name]
	if !exists {
		return nil, nil, nil, ErrUnknownGroup
	}

	members := mapKeys(g.ExternalMembers)
	nodes := mapKeys(g.ExternalNodes)
	edges := append([]graph.Edge(nil), g.ExternalEdges...)

	g.ExternalMembers = make(map[*graph.Node]struct{})
	g.ExternalNodes = make(map[*graph.Node]struct{})
	g.ExternalEdges = nil

	if err := r.spliceInternalSelf(g); err != nil {
		return nil, nil, nil, err
	}

	return members, nodes, edges, nil
}

// broadcastLCA notifies every router this RIB knows about (rib_nodes)
// that holds an entry for name of the new LCA, by mutating their
// GroupEntry directly. spec.md §9 flags this as an acknowledged
// simplification of the real consistency protocol, which should use a
// propagated MULTICAST_GROUP_SET_LCA message instead; this mirrors the
// source's documented behavior rather than the redesign.
func (r *RIB) broadcastLCA(name string, newLCA *graph.Node) {
	for node := range r.nodes {
		if node.Role != graph.RoleRouter || node == r.router {
			continue
		}
		other := r.dir.RIB(node)
		if other == nil {
			continue
		}
		if g, ok := other.groups[name]; ok {
			g.LCA = newLCA
		}
	}
}

// QueryNextMulticastHops implements rib_query_next_multicast_hops
// (spec.md §4.5), executed at this RIB's router R.
func (r *RIB) QueryNextMulticastHops(start *graph.Node, name string) ([]*graph.Node, error) {
	g, exists := r.groups[name]
	if !exists {
		parent := r.parentRIB()
		if parent == nil {
			r.logger.Warn("rib: unknown multicast group on query", logger.F("name", name))
			return nil, ErrUnknownGroup
		}
		return parent.QueryNextMulticastHops(start, name)
	}

	var nextHops []*graph.Node

	if g.IsMember {
		for _, e := range g.InternalEdges {
			if other := e.Other(start); other != nil {
				nextHops = append(nextHops, other)
			}
		}
	}

	if start.Role == graph.RoleRouter {
		if g.LCA == r.router {
			for _, e := range g.ExternalEdges {
				if other := e.Other(start); other != nil {
					nextHops = append(nextHops, other)
				}
			}
		} else if parent := r.parentRIB(); parent != nil {
			hops, err := parent.QueryNextMulticastHops(start, name)
			if err != nil {
				return nil, err
			}
			nextHops = append(nextHops, hops...)
		}
	}

	return nextHops, nil
}
