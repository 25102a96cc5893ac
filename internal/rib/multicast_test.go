package rib

import (
	"testing"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
)

// buildChainTopology builds root -> RA -> RB, each router directly linked
// to its parent, mirroring spec.md Scenario D's shape.
func buildChainTopology(t *testing.T) (d *testDirectory, root, ra, rb *graph.Node, rootRIB, raRIB, rbRIB *RIB) {
	t.Helper()
	d = newTestDirectory()
	root, rootRIB = d.newRouter("root", nil)
	ra, raRIB = d.newRouter("RA", root)
	rb, rbRIB = d.newRouter("RB", ra)

	rootRIB.AddLink(root, ra, 1)
	raRIB.AddLink(ra, rb, 1)
	return
}

func TestCreateMulticastGroupElectsCreatorsRouterAsLCA(t *testing.T) {
	d, _, ra, _, _, raRIB, _ := buildChainTopology(t)
	_ = d

	creator := graph.New("c1", graph.RoleClient, ra)
	raRIB.AddLink(ra, creator, 1)

	owner, err := raRIB.CreateMulticastGroup(creator, "grp")
	if err != nil {
		t.Fatalf("CreateMulticastGroup: %v", err)
	}
	if owner != creator {
		t.Fatalf("expected creator to be the initial owner, got %v", owner)
	}

	g, ok := raRIB.Group("grp")
	if !ok {
		t.Fatal("expected a group entry on RA's RIB")
	}
	if g.LCA != ra {
		t.Fatalf("expected RA to be LCA, got %v", g.LCA)
	}
	if _, joined := g.InternalMembers[creator]; !joined {
		t.Fatal("expected creator in internal members")
	}
}

func TestRouterJoinMulticastGroupTransfersLCAToAncestor(t *testing.T) {
	d, root, ra, rb, rootRIB, raRIB, rbRIB := buildChainTopology(t)
	_ = d
	_ = rbRIB

	creator := graph.New("c1", graph.RoleClient, ra)
	raRIB.AddLink(ra, creator, 1)
	if _, err := raRIB.CreateMulticastGroup(creator, "grp"); err != nil {
		t.Fatalf("CreateMulticastGroup: %v", err)
	}

	// root, an ancestor of the current LCA (RA), now joins as a router.
	if _, err := rootRIB.RouterJoinMulticastGroup(root, "grp"); err != nil {
		t.Fatalf("RouterJoinMulticastGroup: %v", err)
	}

	rootGroup, ok := rootRIB.Group("grp")
	if !ok {
		t.Fatal("expected root to hold a group entry")
	}
	if rootGroup.LCA != root {
		t.Fatalf("expected LCA to migrate to root, got %v", rootGroup.LCA)
	}

	raGroup, _ := raRIB.Group("grp")
	if len(raGroup.ExternalNodes) != 0 || len(raGroup.ExternalMembers) != 0 {
		t.Fatalf("expected RA's external tree to be emptied after demotion, got nodes=%v members=%v",
			raGroup.ExternalNodes, raGroup.ExternalMembers)
	}

	if _, present := rootGroup.ExternalMembers[ra]; !present {
		t.Error("expected root's external members to include the old LCA RA")
	}
	_ = rb
}

func TestClientJoinMulticastGroupReJoinIsNoOp(t *testing.T) {
	d, _, ra, _, _, raRIB, _ := buildChainTopology(t)
	_ = d

	creator := graph.New("c1", graph.RoleClient, ra)
	raRIB.AddLink(ra, creator, 1)
	if _, err := raRIB.CreateMulticastGroup(creator, "grp"); err != nil {
		t.Fatalf("CreateMulticastGroup: %v", err)
	}

	g, _ := raRIB.Group("grp")
	edgesBefore := len(g.InternalEdges)

	if _, err := raRIB.ClientJoinMulticastGroup(creator, "grp"); err != nil {
		t.Fatalf("re-join: %v", err)
	}

	if len(g.InternalEdges) != edgesBefore {
		t.Fatalf("expected re-join to be a no-op, internal edges changed from %d to %d", edgesBefore, len(g.InternalEdges))
	}
}

func TestQueryNextMulticastHopsFromMember(t *testing.T) {
	d, _, ra, _, _, raRIB, _ := buildChainTopology(t)
	_ = d

	creator := graph.New("c1", graph.RoleClient, ra)
	other := graph.New("c2", graph.RoleClient, ra)
	raRIB.AddLink(ra, creator, 1)
	raRIB.AddLink(creator, other, 1)

	if _, err := raRIB.CreateMulticastGroup(creator, "grp"); err != nil {
		t.Fatalf("CreateMulticastGroup: %v", err)
	}
	if _, err := raRIB.ClientJoinMulticastGroup(other, "grp"); err != nil {
		t.Fatalf("join: %v", err)
	}

	hops, err := raRIB.QueryNextMulticastHops(creator, "grp")
	if err != nil {
		t.Fatalf("QueryNextMulticastHops: %v", err)
	}
	found := false
	for _, h := range hops {
		if h == other {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected creator's next multicast hops to include other, got %v", hops)
	}
}
