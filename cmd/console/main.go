// Command console is an interactive REPL attached in-process to a
// running simulator topology, for poking at send/create/join operations
// by hand instead of scripting them in a scenario file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/ctxutil"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/engine"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/message"
	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/scenario"

	"github.com/peterh/liner"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to scenario file describing the topology to load")
	timeout := flag.Duration("timeout", 5*time.Second, "per-command context timeout")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *scenarioPath == "" {
		log.Fatal("console: -scenario is required")
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("console: failed to load scenario: %v", err)
	}
	eng, err := scenario.Build(sc)
	if err != nil {
		log.Fatalf("console: failed to build topology: %v", err)
	}

	fmt.Printf("multicast-simulator interactive console. Loaded %s\n", *scenarioPath)
	fmt.Println("Available commands: ping/create/join/send/nodes/tree/stats/exit")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("sim> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Aborted")
				continue
			}
			break
		}
		line.AppendHistory(input)

		args := strings.Fields(strings.TrimSpace(input))
		if len(args) == 0 {
			continue
		}
		cmd := args[0]

		ctx, cancel := ctxutil.NewContext(ctxutil.WithTimeout(*timeout), ctxutil.WithHops())

		switch cmd {

		case "ping":
			if len(args) < 3 {
				fmt.Println("Usage: ping <source> <destination>")
				cancel()
				continue
			}
			source, ok := eng.Get(args[1])
			if !ok {
				fmt.Printf("Unknown node: %s\n", args[1])
				cancel()
				continue
			}
			destination, ok := eng.Get(args[2])
			if !ok {
				fmt.Printf("Unknown node: %s\n", args[2])
				cancel()
				continue
			}
			env := message.New(message.Ping, message.PingContent{Payload: nil})
			_, err := source.SendMessage(ctx, eng, source, destination, env)
			if err != nil {
				fmt.Printf("Ping failed: %v\n", err)
			} else {
				fmt.Println("Ping delivered")
			}

		case "create":
			if len(args) < 3 {
				fmt.Println("Usage: create <client> <group>")
				cancel()
				continue
			}
			runCreate(ctx, eng, args[1], args[2])

		case "join":
			if len(args) < 3 {
				fmt.Println("Usage: join <client> <group>")
				cancel()
				continue
			}
			runJoin(ctx, eng, args[1], args[2])

		case "send":
			if len(args) < 4 {
				fmt.Println("Usage: send <client> <group> <payload>")
				cancel()
				continue
			}
			client, ok := eng.Get(args[1])
			if !ok {
				fmt.Printf("Unknown node: %s\n", args[1])
				cancel()
				continue
			}
			if err := client.SendGroupMessage(ctx, eng, args[2], strings.Join(args[3:], " ")); err != nil {
				fmt.Printf("Send failed: %v\n", err)
			} else {
				fmt.Println("Message sent")
			}

		case "nodes":
			for _, n := range eng.Registry().All() {
				fmt.Printf("  %s (%s)\n", n.Name, n.Role)
			}

		case "tree":
			for _, entry := range eng.Registry().DomainTree() {
				parent := entry.Parent
				if parent == "" {
					parent = "-"
				}
				fmt.Printf("  %*s%s (%s, parent=%s)\n", entry.Depth*2, "", entry.Name, entry.Role, parent)
			}

		case "stats":
			s := eng.Stats
			fmt.Printf("  links added:                  %d\n", s.LinksAdded)
			fmt.Printf("  total edge weight:             %d\n", s.TotalEdgeWeight)
			fmt.Printf("  multicast messages delivered:  %d\n", s.MulticastMessagesDelivered)
			fmt.Printf("  multicast hops forwarded:      %d\n", s.MulticastHopsForwarded)

		case "exit", "quit":
			fmt.Println("Bye!")
			cancel()
			return

		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}

		cancel()
	}
}

func runCreate(ctx context.Context, eng *engine.Engine, clientName, group string) {
	client, ok := eng.Get(clientName)
	if !ok {
		fmt.Printf("Unknown node: %s\n", clientName)
		return
	}
	if err := client.CreateMulticastGroup(ctx, eng, group); err != nil {
		fmt.Printf("Create failed: %v\n", err)
		return
	}
	fmt.Printf("Group %s created\n", group)
}

func runJoin(ctx context.Context, eng *engine.Engine, clientName, group string) {
	client, ok := eng.Get(clientName)
	if !ok {
		fmt.Printf("Unknown node: %s\n", clientName)
		return
	}
	owner, err := client.JoinMulticastGroup(ctx, eng, group)
	if err != nil {
		fmt.Printf("Join failed: %v\n", err)
		return
	}
	ownerName := "<none>"
	if owner != nil {
		ownerName = owner.G.Name
	}
	fmt.Printf("Joined %s, credentials owner=%s\n", group, ownerName)
}
