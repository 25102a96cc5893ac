package engine

import (
	"context"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/message"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/telemetry/hoptrace"
)

// CreateMulticastGroup implements client.create_multicast_group(name)
// (spec.md §6 public operations): the client sends
// CLIENT_CREATE_MULTICAST_GROUP to its own trust-domain router, routed
// through whatever switches separate them.
func (n *Node) CreateMulticastGroup(ctx context.Context, e *Engine, name string) error {
	router := e.wrap(n.G.TrustDomainRouter())
	env := message.New(message.ClientCreateMulticastGroup, message.AddMulticastGroupContent{Name: name})
	_, err := n.SendMessage(ctx, e, n, router, env)
	if err == nil {
		n.G.MulticastGroups[name] = struct{}{}
	}
	return err
}

// JoinMulticastGroup implements client.join_multicast_group(name),
// returning the group's credentials authority (owner).
func (n *Node) JoinMulticastGroup(ctx context.Context, e *Engine, name string) (*Node, error) {
	router := e.wrap(n.G.TrustDomainRouter())
	env := message.New(message.ClientJoinMulticastGroup, message.JoinMulticastGroupContent{Name: name})
	result, err := n.SendMessage(ctx, e, n, router, env)
	if err != nil {
		return nil, err
	}
	n.G.MulticastGroups[name] = struct{}{}
	owner, _ := result.(*Node)
	return owner, nil
}

// RequestCredentials implements the joiner -> owner
// MULTICAST_GROUP_REQUEST_CREDENTIALS step mentioned in spec.md §4.5,
// step 3 of client join: "the client then optionally issues
// MULTICAST_GROUP_REQUEST_CREDENTIALS directly to owner."
func (n *Node) RequestCredentials(ctx context.Context, e *Engine, owner *Node, name string) (any, error) {
	env := message.New(message.MulticastGroupRequestCredentials, message.RequestCredentialsContent{
		Name:   name,
		Joiner: n.G,
	})
	return n.SendMessage(ctx, e, n, owner, env)
}

// getNextMulticastHops implements get_next_multicast_hops (spec.md
// §4.5): a cache lookup on multicast_routing_table, falling back to a
// RIB query on miss.
func (n *Node) getNextMulticastHops(e *Engine, group string) ([]*Node, error) {
	if cached, ok := n.G.MulticastRoutingTable[group]; ok {
		return e.wrapAll(cached), nil
	}
	domainRIB := e.RIB(n.G.TrustDomainRouter())
	hopsG, err := domainRIB.QueryNextMulticastHops(n.G, group)
	if err != nil {
		return nil, err
	}
	n.G.MulticastRoutingTable[group] = hopsG
	return e.wrapAll(hopsG), nil
}

// SendMulticastMessage implements send_multicast_message (spec.md §4.5).
func (n *Node) SendMulticastMessage(ctx context.Context, e *Engine, source *Node, group string, env message.Envelope, visited map[*graph.Node]struct{}) error {
	ctx, end := hoptrace.StartHop(ctx, "send_multicast_message", n.G.Name, group)
	defer end()

	hops, err := n.getNextMulticastHops(e, group)
	if err != nil {
		return err
	}

	next := make(map[*graph.Node]struct{}, len(visited)+1)
	for k := range visited {
		next[k] = struct{}{}
	}
	next[n.G] = struct{}{}

	for _, nh := range hops {
		if _, seen := visited[nh.G]; seen {
			continue
		}
		e.Stats.MulticastHopsForwarded++
		if err := nh.ReceiveMulticastMessage(ctx, e, source, group, env, next); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveMulticastMessage implements receive_multicast_message (spec.md §4.5).
func (n *Node) ReceiveMulticastMessage(ctx context.Context, e *Engine, source *Node, group string, env message.Envelope, visited map[*graph.Node]struct{}) error {
	if _, joined := n.G.MulticastGroups[group]; joined {
		e.Stats.MulticastMessagesDelivered++
		e.logger.Debug("engine: multicast message delivered",
			logger.FNode("to", n.G), logger.F("group", group))
		_, err := n.HandleMessage(ctx, e, source, env)
		return err
	}
	return n.SendMulticastMessage(ctx, e, source, group, env, visited)
}

// SendGroupMessage implements client.send_multicast_message(source,
// name, msg): the PING-carried application payload fan-out, starting
// with an empty visited set.
func (n *Node) SendGroupMessage(ctx context.Context, e *Engine, name string, payload any) error {
	env := message.New(message.Ping, message.PingContent{Payload: payload})
	return n.SendMulticastMessage(ctx, e, n, name, env, map[*graph.Node]struct{}{})
}
