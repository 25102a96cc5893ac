package scenario

import (
	"context"
	"fmt"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/engine"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/message"
)

// Build constructs every node and link declared in s against a fresh
// engine. Nodes must be listed so that a router/switch's parent and a
// client's attachment point are already declared (a top-to-bottom
// listing of the trust-domain tree, in practice).
func Build(s *Scenario, opts ...engine.Option) (*engine.Engine, error) {
	e := engine.New(opts...)

	for _, ns := range s.Nodes {
		switch ns.Role {
		case "router":
			var parent *engine.Node
			if ns.Parent != "" {
				p, ok := e.Get(ns.Parent)
				if !ok {
					return nil, fmt.Errorf("scenario: router %s: unknown parent %s", ns.Name, ns.Parent)
				}
				parent = p
			}
			e.Router(ns.Name, parent)

		case "switch":
			parent, ok := e.Get(ns.Parent)
			if !ok {
				return nil, fmt.Errorf("scenario: switch %s: unknown parent %s", ns.Name, ns.Parent)
			}
			e.Switch(ns.Name, parent)

		case "client":
			attach, ok := e.Get(ns.Attach)
			if !ok {
				return nil, fmt.Errorf("scenario: client %s: unknown attach point %s", ns.Name, ns.Attach)
			}
			e.Client(ns.Name, attach)

		default:
			return nil, fmt.Errorf("scenario: node %s: unknown role %q", ns.Name, ns.Role)
		}
	}

	for _, ls := range s.Links {
		a, ok := e.Get(ls.A)
		if !ok {
			return nil, fmt.Errorf("scenario: link: unknown node %s", ls.A)
		}
		b, ok := e.Get(ls.B)
		if !ok {
			return nil, fmt.Errorf("scenario: link: unknown node %s", ls.B)
		}
		cost := ls.Cost
		if cost == 0 {
			cost = 1
		}
		e.AddNeighbor(a, b, cost)
	}

	return e, nil
}

// Run executes s.Actions in order against an already-built engine.
func Run(ctx context.Context, e *engine.Engine, s *Scenario) error {
	for _, act := range s.Actions {
		if err := runAction(ctx, e, act); err != nil {
			return fmt.Errorf("scenario: action %s on %s: %w", act.Kind, act.Client, err)
		}
	}
	return nil
}

func runAction(ctx context.Context, e *engine.Engine, act ActionSpec) error {
	switch act.Kind {
	case "create_group":
		client, ok := e.Get(act.Client)
		if !ok {
			return fmt.Errorf("unknown client %s", act.Client)
		}
		return client.CreateMulticastGroup(ctx, e, act.Group)

	case "join_group":
		client, ok := e.Get(act.Client)
		if !ok {
			return fmt.Errorf("unknown client %s", act.Client)
		}
		_, err := client.JoinMulticastGroup(ctx, e, act.Group)
		return err

	case "unicast":
		source, ok := e.Get(act.Source)
		if !ok {
			return fmt.Errorf("unknown source %s", act.Source)
		}
		destination, ok := e.Get(act.Destination)
		if !ok {
			return fmt.Errorf("unknown destination %s", act.Destination)
		}
		env := message.New(message.Ping, message.PingContent{Payload: act.Payload})
		_, err := source.SendMessage(ctx, e, source, destination, env)
		return err

	case "multicast":
		client, ok := e.Get(act.Client)
		if !ok {
			return fmt.Errorf("unknown client %s", act.Client)
		}
		return client.SendGroupMessage(ctx, e, act.Group, act.Payload)

	default:
		return fmt.Errorf("unknown action kind %q", act.Kind)
	}
}
