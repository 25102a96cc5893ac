// Package scenario loads a declarative topology/action description and
// builds it against internal/engine. It is the Go-native stand-in for
// the "topology construction driver" spec.md §1 names as an external
// collaborator: the engine stays ignorant of how topology is built, and
// this package is the one concrete way cmd/simulator builds it.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeSpec declares one router, switch, or client.
type NodeSpec struct {
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`   // "router", "switch", "client"
	Parent string `yaml:"parent"` // router's parent router, or switch's domain router
	Attach string `yaml:"attach"` // client's attachment point
}

// LinkSpec declares an add_neighbor call between two already-declared
// nodes.
type LinkSpec struct {
	A    string `yaml:"a"`
	B    string `yaml:"b"`
	Cost int    `yaml:"cost"`
}

// ActionSpec declares one scripted operation to run after the topology
// is built: create/join a multicast group, or send a unicast/multicast
// message.
type ActionSpec struct {
	Kind        string `yaml:"kind"` // "create_group", "join_group", "unicast", "multicast"
	Client      string `yaml:"client"`
	Group       string `yaml:"group"`
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Payload     string `yaml:"payload"`
}

// Scenario is the full declarative description: nodes, links, and a
// scripted sequence of actions.
type Scenario struct {
	Nodes   []NodeSpec   `yaml:"nodes"`
	Links   []LinkSpec   `yaml:"links"`
	Actions []ActionSpec `yaml:"actions"`
}

// Load reads and parses a scenario YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to read %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: failed to parse %s: %w", path, err)
	}
	return &s, nil
}
