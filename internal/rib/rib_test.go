package rib

import (
	"testing"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
)

// testDirectory is a minimal in-memory rib.Directory for exercising RIBs
// without pulling in internal/engine.
type testDirectory struct {
	ribs map[*graph.Node]*RIB
}

func newTestDirectory() *testDirectory {
	return &testDirectory{ribs: make(map[*graph.Node]*RIB)}
}

func (d *testDirectory) RIB(router *graph.Node) *RIB { return d.ribs[router] }

func (d *testDirectory) newRouter(name string, parent *graph.Node) (*graph.Node, *RIB) {
	gn := graph.New(name, graph.RoleRouter, parent)
	r := New(gn, d)
	d.ribs[gn] = r
	return gn, r
}

// buildSingleDomain builds one router R with two directly-linked child
// nodes a and b, the way a flat domain without nesting looks.
func buildSingleDomain(t *testing.T) (d *testDirectory, router *graph.Node, rRIB *RIB, a, b *graph.Node) {
	t.Helper()
	d = newTestDirectory()
	router, rRIB = d.newRouter("R", nil)
	a = graph.New("a", graph.RoleSwitch, router)
	b = graph.New("b", graph.RoleSwitch, router)
	rRIB.AddLink(a, b, 4)
	return
}

func TestAddLinkIntraDomainRecordsEdge(t *testing.T) {
	_, _, rRIB, a, b := buildSingleDomain(t)

	if len(rRIB.Edges()) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(rRIB.Edges()))
	}
	e := rRIB.Edges()[0]
	if e.A != a || e.B != b || e.Cost != 4 {
		t.Fatalf("unexpected edge: %+v", e)
	}
}

func TestAddLinkCrossDomainPropagatesToParent(t *testing.T) {
	d := newTestDirectory()
	root, rootRIB := d.newRouter("root", nil)
	childRouter, childRIB := d.newRouter("child", root)

	x := graph.New("x", graph.RoleSwitch, root)
	y := graph.New("y", graph.RoleSwitch, childRouter)

	childRIB.AddLink(x, y, 7)

	if len(rootRIB.Edges()) != 1 {
		t.Fatalf("expected the cross-domain edge to propagate to the root RIB, got %d edges", len(rootRIB.Edges()))
	}

	owned, ok := rootRIB.ChildOwnerships()[childRouter]
	if ok {
		// AddLink across domains does not record ownership; only
		// AddOwnership does, via the intra-domain branch.
		if _, present := owned[y]; present {
			t.Fatal("cross-domain AddLink should not also record ownership")
		}
	}
}

func TestAddLinkIntraDomainPropagatesOwnershipToParent(t *testing.T) {
	d := newTestDirectory()
	root, rootRIB := d.newRouter("root", nil)
	childRouter, childRIB := d.newRouter("child", root)

	a := graph.New("a", graph.RoleSwitch, childRouter)
	b := graph.New("b", graph.RoleSwitch, childRouter)
	childRIB.AddLink(a, b, 1)

	owned, ok := rootRIB.ChildOwnerships()[childRouter]
	if !ok {
		t.Fatal("expected root RIB to record child ownership for an intra-domain link")
	}
	if _, present := owned[a]; !present {
		t.Error("expected root to know child owns a")
	}
	if _, present := owned[b]; !present {
		t.Error("expected root to know child owns b")
	}
}

func TestQueryNextHopWithinOwnDomain(t *testing.T) {
	_, _, rRIB, a, b := buildSingleDomain(t)

	hop, dist, err := rRIB.QueryNextHop(a, b)
	if err != nil {
		t.Fatalf("QueryNextHop: %v", err)
	}
	if hop != b || dist != 4 {
		t.Fatalf("expected direct hop to b at distance 4, got hop=%v dist=%d", hop, dist)
	}
}

func TestQueryNextHopNoRouteEscalatesAndFails(t *testing.T) {
	d := newTestDirectory()
	root, rootRIB := d.newRouter("root", nil)

	a := graph.New("a", graph.RoleSwitch, root)
	b := graph.New("b", graph.RoleSwitch, root)
	// no link between a and b

	_, _, err := rootRIB.QueryNextHop(a, b)
	if err != ErrNoRoute {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestDijkstraToAnyStartAlreadyInTargets(t *testing.T) {
	_, _, rRIB, a, _ := buildSingleDomain(t)

	nodes, edges, err := rRIB.DijkstraToAny(a, map[*graph.Node]struct{}{a: {}})
	if err != nil {
		t.Fatalf("DijkstraToAny: %v", err)
	}
	if len(nodes) != 1 || nodes[0] != a {
		t.Fatalf("expected [a], got %v", nodes)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %v", edges)
	}
}

func TestDijkstraToAnyUnreachableFails(t *testing.T) {
	d := newTestDirectory()
	router, rRIB := d.newRouter("R", nil)
	a := graph.New("a", graph.RoleSwitch, router)
	b := graph.New("b", graph.RoleSwitch, router)
	// a and b are both known to the RIB but not linked to each other.
	rRIB.nodes[a] = struct{}{}
	rRIB.nodes[b] = struct{}{}

	_, _, err := rRIB.DijkstraToAny(a, map[*graph.Node]struct{}{b: {}})
	if err != ErrPathNotFound {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
}
