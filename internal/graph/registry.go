package graph

import "sort"

// Registry is the in-memory bookkeeping of every node created during a
// scenario run. spec.md §1 explicitly excludes the topology construction
// driver from the engine's concerns; Registry is the thin bookkeeping
// layer callers (cmd/simulator, tests) use while driving that construction
// themselves, not a replacement for it.
type Registry struct {
	byName map[string]*Node
	order  []*Node
}

// NewRegistry returns an empty node registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Node)}
}

// Add registers n for later lookup by name. Panics on duplicate names,
// since node identity is supposed to be unique within a single topology
// (spec.md §3: "name: unique string identifier").
func (r *Registry) Add(n *Node) {
	if _, exists := r.byName[n.Name]; exists {
		panic("graph: duplicate node name " + n.Name)
	}
	r.byName[n.Name] = n
	r.order = append(r.order, n)
}

// Get looks up a node by name.
func (r *Registry) Get(name string) (*Node, bool) {
	n, ok := r.byName[name]
	return n, ok
}

// All returns every registered node in insertion order.
func (r *Registry) All() []*Node {
	out := make([]*Node, len(r.order))
	copy(out, r.order)
	return out
}

// TreeEntry is one row of a DomainTree() snapshot.
type TreeEntry struct {
	Name   string
	Role   Role
	Parent string // "" for the root router
	Depth  int
}

// DomainTree renders the trust-domain tree as a flat, depth-sorted
// snapshot suitable for printing. It is the Go-native equivalent of the
// original prototype's tree_edge_count / tree_total_edge_weight debugging
// helpers (original_source/multicast_evaluation.py) and carries no
// routing semantics of its own.
func (r *Registry) DomainTree() []TreeEntry {
	entries := make([]TreeEntry, 0, len(r.order))
	for _, n := range r.order {
		parent := ""
		if n.ParentRouter != nil {
			parent = n.ParentRouter.Name
		}
		entries = append(entries, TreeEntry{
			Name:   n.Name,
			Role:   n.Role,
			Parent: parent,
			Depth:  n.Depth,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth < entries[j].Depth
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
