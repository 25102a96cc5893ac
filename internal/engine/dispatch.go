package engine

import (
	"context"
	"fmt"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/ctxutil"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/message"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/telemetry/hoptrace"
)

// getNextHop implements get_next_hop (spec.md §4.2): a routing-table
// cache lookup, falling back to the owning trust-domain router's RIB on
// a miss and caching the answer.
func (n *Node) getNextHop(e *Engine, destination *Node) (*Node, error) {
	if entry, ok := n.G.RoutingTable[destination.G]; ok {
		return e.wrap(entry.NextHop), nil
	}

	domainRIB := e.RIB(n.G.TrustDomainRouter())
	nextHopG, dist, err := domainRIB.QueryNextHop(n.G, destination.G)
	if err != nil {
		e.logger.Warn("engine: next-hop query failed",
			logger.FNode("self", n.G), logger.FNode("destination", destination.G))
		return nil, err
	}
	n.G.RoutingTable[destination.G] = graph.RouteEntry{NextHop: nextHopG, Distance: dist}
	return e.wrap(nextHopG), nil
}

// SendMessage implements send_message (spec.md §4.2), invoked on
// whichever node currently holds the message. The recursion depth is
// bounded by the trust-domain tree depth plus graph diameter (spec.md
// §5); ctx carries an optional hop counter and cancellation signal
// across that recursion.
func (n *Node) SendMessage(ctx context.Context, e *Engine, source, destination *Node, env message.Envelope) (any, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	ctx = ctxutil.IncHops(ctx)

	ctx, end := hoptrace.StartHop(ctx, "send_message", n.G.Name, destination.G.Name)
	defer end()

	if n == destination {
		return n.HandleMessage(ctx, e, source, env)
	}

	next, err := n.getNextHop(e, destination)
	if err != nil {
		return nil, err
	}
	return next.ReceiveMessage(ctx, e, source, destination, env)
}

// ReceiveMessage implements receive_message (spec.md §4.2).
func (n *Node) ReceiveMessage(ctx context.Context, e *Engine, source, destination *Node, env message.Envelope) (any, error) {
	if n == destination {
		return n.HandleMessage(ctx, e, source, env)
	}
	return n.SendMessage(ctx, e, source, destination, env)
}

// HandleMessage is the per-role dispatch table of spec.md §4.2/§6. A
// switch or client only understands the leaf kinds (PING, credential
// request/response); a router additionally binds the client-facing
// multicast-group entry points to its RIB.
func (n *Node) HandleMessage(ctx context.Context, e *Engine, source *Node, env message.Envelope) (any, error) {
	switch env.Kind {
	case message.Ping:
		return n.handlePing(e, source, env)
	case message.MulticastGroupRequestCredentials:
		return n.handleRequestCredentials(ctx, e, source, env)
	case message.MulticastGroupSendCredentials:
		return n.handleSendCredentials(e, source, env)
	}

	if n.RIB == nil {
		e.logger.Warn("engine: unsupported message kind for non-router node",
			logger.FNode("node", n.G), logger.F("kind", env.Kind.String()))
		return nil, ErrUnsupportedMessageKind
	}

	switch env.Kind {
	case message.ClientCreateMulticastGroup:
		return n.handleCreateMulticastGroup(e, source, env)
	case message.ClientJoinMulticastGroup:
		return n.handleClientJoinMulticastGroup(e, source, env)
	default:
		panic(fmt.Sprintf("engine: unhandled message kind %s", env.Kind))
	}
}

func (n *Node) handlePing(e *Engine, source *Node, env message.Envelope) (any, error) {
	e.logger.Debug("engine: ping delivered", logger.FNode("to", n.G), logger.FNode("from", source.G))
	return nil, nil
}

func (n *Node) handleCreateMulticastGroup(e *Engine, source *Node, env message.Envelope) (any, error) {
	content := env.Content.(message.AddMulticastGroupContent)
	_, err := n.RIB.CreateMulticastGroup(source.G, content.Name)
	return nil, err
}

func (n *Node) handleClientJoinMulticastGroup(e *Engine, source *Node, env message.Envelope) (any, error) {
	content := env.Content.(message.JoinMulticastGroupContent)
	ownerG, err := n.RIB.ClientJoinMulticastGroup(source.G, content.Name)
	if err != nil {
		return nil, err
	}
	return e.wrap(ownerG), nil
}

func (n *Node) handleRequestCredentials(ctx context.Context, e *Engine, source *Node, env message.Envelope) (any, error) {
	content := env.Content.(message.RequestCredentialsContent)
	reply := message.New(message.MulticastGroupSendCredentials, message.SendCredentialsContent{
		Name:    content.Name,
		Payload: fmt.Sprintf("credentials-for-%s", content.Name),
	})
	return n.SendMessage(ctx, e, n, content.Joiner, reply)
}

func (n *Node) handleSendCredentials(e *Engine, source *Node, env message.Envelope) (any, error) {
	content := env.Content.(message.SendCredentialsContent)
	e.logger.Debug("engine: credentials received",
		logger.FNode("to", n.G), logger.FNode("from", source.G), logger.F("group", content.Name))
	return content.Payload, nil
}
