package graph

import "testing"

func TestNewSelfRoute(t *testing.T) {
	n := New("A", RoleRouter, nil)
	entry, ok := n.RoutingTable[n]
	if !ok {
		t.Fatal("expected self routing-table entry")
	}
	if entry.NextHop != nil || entry.Distance != 0 {
		t.Fatalf("self entry should be (nil, 0), got (%v, %d)", entry.NextHop, entry.Distance)
	}
}

func TestTrustDomainRouter(t *testing.T) {
	root := New("root", RoleRouter, nil)
	child := New("child", RoleRouter, root)
	sw := New("sw", RoleSwitch, child)

	if got := root.TrustDomainRouter(); got != root {
		t.Errorf("root.TrustDomainRouter() = %v, want root", got)
	}
	if got := child.TrustDomainRouter(); got != child {
		t.Errorf("child.TrustDomainRouter() = %v, want child", got)
	}
	if got := sw.TrustDomainRouter(); got != child {
		t.Errorf("sw.TrustDomainRouter() = %v, want child", got)
	}
}

func TestAbsorbNeighborDirectRoute(t *testing.T) {
	a := New("a", RoleRouter, nil)
	b := New("b", RoleRouter, nil)

	a.AbsorbNeighbor(b, 5)

	if !a.HasNeighbor(b) {
		t.Fatal("expected a to have b as neighbor")
	}
	entry, ok := a.RoutingTable[b]
	if !ok || entry.NextHop != b || entry.Distance != 5 {
		t.Fatalf("expected direct route to b via b at cost 5, got %+v", entry)
	}
}

func TestAbsorbNeighborRelaysTransitiveRoutes(t *testing.T) {
	a := New("a", RoleRouter, nil)
	b := New("b", RoleRouter, nil)
	c := New("c", RoleRouter, nil)

	b.AbsorbNeighbor(c, 3)
	a.AbsorbNeighbor(b, 2)

	entry, ok := a.RoutingTable[c]
	if !ok {
		t.Fatal("expected a to learn a route to c through b")
	}
	if entry.NextHop != b || entry.Distance != 5 {
		t.Fatalf("expected route to c via b at distance 5, got %+v", entry)
	}
}

func TestUpdateRouteOnlyImprovesStrictly(t *testing.T) {
	a := New("a", RoleRouter, nil)
	b := New("b", RoleRouter, nil)

	if !a.UpdateRoute(b, b, 10) {
		t.Fatal("expected first route install to report a change")
	}
	if a.UpdateRoute(b, b, 10) {
		t.Fatal("equal-cost update should not report a change")
	}
	if a.UpdateRoute(b, b, 11) {
		t.Fatal("worse-cost update should not report a change")
	}
	if !a.UpdateRoute(b, b, 9) {
		t.Fatal("strictly better update should report a change")
	}
	if got := a.RoutingTable[b].Distance; got != 9 {
		t.Fatalf("expected distance 9 after improvement, got %d", got)
	}
}

func TestEdgeOther(t *testing.T) {
	a := New("a", RoleRouter, nil)
	b := New("b", RoleRouter, nil)
	c := New("c", RoleRouter, nil)
	e := Edge{A: a, B: b, Cost: 1}

	if got := e.Other(a); got != b {
		t.Errorf("e.Other(a) = %v, want b", got)
	}
	if got := e.Other(b); got != a {
		t.Errorf("e.Other(b) = %v, want a", got)
	}
	if got := e.Other(c); got != nil {
		t.Errorf("e.Other(c) = %v, want nil", got)
	}
}
