package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	data := `
nodes:
  - name: root
    role: router
  - name: S1
    role: switch
    parent: root
  - name: C1
    role: client
    attach: S1
links:
  - a: root
    b: S1
    cost: 1
actions:
  - kind: create_group
    client: C1
    group: grp
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(s.Nodes))
	}
	if len(s.Links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(s.Links))
	}
	if len(s.Actions) != 1 || s.Actions[0].Kind != "create_group" {
		t.Fatalf("expected 1 create_group action, got %+v", s.Actions)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/path/scenario.yaml"); err == nil {
		t.Fatal("expected an error loading a nonexistent scenario file")
	}
}

func exampleScenario() *Scenario {
	return &Scenario{
		Nodes: []NodeSpec{
			{Name: "root", Role: "router"},
			{Name: "S1", Role: "switch", Parent: "root"},
			{Name: "C1", Role: "client", Attach: "S1"},
			{Name: "C2", Role: "client", Attach: "S1"},
		},
		Links: []LinkSpec{
			{A: "root", B: "S1", Cost: 1},
		},
		Actions: []ActionSpec{
			{Kind: "create_group", Client: "C1", Group: "grp"},
			{Kind: "join_group", Client: "C2", Group: "grp"},
			{Kind: "multicast", Client: "C1", Group: "grp", Payload: "hello"},
			{Kind: "unicast", Source: "C1", Destination: "C2", Payload: "ping"},
		},
	}
}

func TestBuildConstructsTopology(t *testing.T) {
	e, err := Build(exampleScenario())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, name := range []string{"root", "S1", "C1", "C2"} {
		if _, ok := e.Get(name); !ok {
			t.Errorf("expected node %s to be registered", name)
		}
	}
}

func TestBuildUnknownParentFails(t *testing.T) {
	s := &Scenario{Nodes: []NodeSpec{{Name: "S1", Role: "switch", Parent: "ghost"}}}
	if _, err := Build(s); err == nil {
		t.Fatal("expected Build to fail on an unknown parent")
	}
}

func TestRunExecutesActions(t *testing.T) {
	s := exampleScenario()
	e, err := Build(s)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := Run(context.Background(), e, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.Stats.MulticastMessagesDelivered == 0 {
		t.Error("expected the scripted multicast action to deliver at least one message")
	}
}
