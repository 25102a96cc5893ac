package engine

import (
	"context"
	"testing"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/message"
)

// buildIntraDomainTopology builds a single router R with two switches and
// two clients hanging off them, mirroring spec.md Scenario A.
func buildIntraDomainTopology(t *testing.T) (e *Engine, r, s1, s2, c1, c2 *Node) {
	t.Helper()
	e = New()
	r = e.Router("R", nil)
	s1 = e.Switch("S1", r)
	s2 = e.Switch("S2", r)
	e.AddNeighbor(r, s1, 1)
	e.AddNeighbor(r, s2, 1)
	c1 = e.Client("C1", s1)
	c2 = e.Client("C2", s2)
	return
}

func TestAddNeighborIsSymmetric(t *testing.T) {
	_, r, s1, _, _, _ := buildIntraDomainTopology(t)
	if !r.G.HasNeighbor(s1.G) {
		t.Error("expected R to have S1 as neighbor")
	}
	if !s1.G.HasNeighbor(r.G) {
		t.Error("expected S1 to have R as neighbor")
	}
}

func TestAddNeighborUpdatesStats(t *testing.T) {
	e, _, _, _, _, _ := buildIntraDomainTopology(t)
	if e.Stats.LinksAdded == 0 {
		t.Error("expected LinksAdded to be incremented")
	}
	if e.Stats.TotalEdgeWeight == 0 {
		t.Error("expected TotalEdgeWeight to be incremented")
	}
}

func TestSendMessageWithinDomainDelivers(t *testing.T) {
	e, _, _, _, c1, c2 := buildIntraDomainTopology(t)
	ctx := context.Background()

	env := message.New(message.Ping, message.PingContent{Payload: "hi"})
	if _, err := c1.SendMessage(ctx, e, c1, c2, env); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
}

func TestSendMessageToSelfHandlesDirectly(t *testing.T) {
	e, _, _, _, c1, _ := buildIntraDomainTopology(t)
	ctx := context.Background()

	env := message.New(message.Ping, message.PingContent{Payload: "hi"})
	if _, err := c1.SendMessage(ctx, e, c1, c1, env); err != nil {
		t.Fatalf("SendMessage to self: %v", err)
	}
}

func TestCreateAndJoinMulticastGroup(t *testing.T) {
	e, _, _, _, c1, c2 := buildIntraDomainTopology(t)
	ctx := context.Background()

	if err := c1.CreateMulticastGroup(ctx, e, "grp"); err != nil {
		t.Fatalf("CreateMulticastGroup: %v", err)
	}
	owner, err := c2.JoinMulticastGroup(ctx, e, "grp")
	if err != nil {
		t.Fatalf("JoinMulticastGroup: %v", err)
	}
	if owner == nil || owner.G.Name != "C1" {
		t.Fatalf("expected owner C1, got %v", owner)
	}
}

func TestSendGroupMessageDeliversToAllMembers(t *testing.T) {
	e, _, _, _, c1, c2 := buildIntraDomainTopology(t)
	ctx := context.Background()

	if err := c1.CreateMulticastGroup(ctx, e, "grp"); err != nil {
		t.Fatalf("CreateMulticastGroup: %v", err)
	}
	if _, err := c2.JoinMulticastGroup(ctx, e, "grp"); err != nil {
		t.Fatalf("JoinMulticastGroup: %v", err)
	}

	before := e.Stats.MulticastMessagesDelivered
	if err := c1.SendGroupMessage(ctx, e, "grp", "hello"); err != nil {
		t.Fatalf("SendGroupMessage: %v", err)
	}
	if e.Stats.MulticastMessagesDelivered <= before {
		t.Error("expected at least one multicast delivery to be recorded")
	}
}

func TestHandleMessageRejectsRouterOnlyKindsOnSwitch(t *testing.T) {
	e, _, s1, _, _, _ := buildIntraDomainTopology(t)
	ctx := context.Background()

	env := message.New(message.ClientCreateMulticastGroup, message.AddMulticastGroupContent{Name: "grp"})
	_, err := s1.HandleMessage(ctx, e, s1, env)
	if err != ErrUnsupportedMessageKind {
		t.Fatalf("expected ErrUnsupportedMessageKind, got %v", err)
	}
}
