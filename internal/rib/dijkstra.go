package rib

import (
	"container/heap"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/graph"
)

// pqEntry is a priority-queue item: a candidate node and its tentative
// distance from the Dijkstra start node. Stale entries (superseded by a
// later, shorter relaxation) are left in place and skipped via the
// visited set rather than removed, the standard lazy-deletion approach.
type pqEntry struct {
	node *graph.Node
	dist int
}

type priorityQueue []pqEntry

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)         { *pq = append(*pq, x.(pqEntry)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// adjacency builds a node -> incident-edges index from rib_edges. spec.md
// §4.4 allows either a linear scan or an adjacency list ("correctness is
// the contract"); building the index once per Dijkstra run keeps the
// relaxation loop itself linear in degree.
func (r *RIB) adjacency() map[*graph.Node][]graph.Edge {
	adj := make(map[*graph.Node][]graph.Edge, len(r.nodes))
	for _, e := range r.edges {
		adj[e.A] = append(adj[e.A], e)
		adj[e.B] = append(adj[e.B], e)
	}
	return adj
}

// dijkstra runs Dijkstra's algorithm from start over rib_edges restricted
// to rib_nodes, terminating as soon as any node in targets is popped
// (spec.md §4.4 normative algorithm). Tie-breaking among equal-cost
// routes is left to map/heap iteration order, as the spec requires tests
// not depend on it.
func (r *RIB) dijkstra(start *graph.Node, targets map[*graph.Node]struct{}) (reached *graph.Node, dist map[*graph.Node]int, prev map[*graph.Node]*graph.Node, ok bool) {
	adj := r.adjacency()
	dist = map[*graph.Node]int{start: 0}
	prev = make(map[*graph.Node]*graph.Node)
	visited := make(map[*graph.Node]bool)

	pq := &priorityQueue{{node: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqEntry)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if _, isTarget := targets[cur.node]; isTarget {
			return cur.node, dist, prev, true
		}

		for _, e := range adj[cur.node] {
			other := e.Other(cur.node)
			if other == nil || visited[other] {
				continue
			}
			next := cur.dist + e.Cost
			if d, seen := dist[other]; !seen || next < d {
				dist[other] = next
				prev[other] = cur.node
				heap.Push(pq, pqEntry{node: other, dist: next})
			}
		}
	}
	return nil, dist, prev, false
}

// reconstructPath walks the predecessor chain from end back to start,
// returning both in start-to-end order along with the rib_edges
// traversed (preserving their recorded cost).
func (r *RIB) reconstructPath(start, end *graph.Node, prev map[*graph.Node]*graph.Node) ([]*graph.Node, []graph.Edge) {
	if start == end {
		return []*graph.Node{start}, nil
	}

	adj := r.adjacency()
	nodes := []*graph.Node{end}
	var edges []graph.Edge

	cur := end
	for cur != start {
		p, ok := prev[cur]
		if !ok {
			return nil, nil
		}
		for _, e := range adj[p] {
			if e.Other(p) == cur {
				edges = append(edges, e)
				break
			}
		}
		nodes = append(nodes, p)
		cur = p
	}

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return nodes, edges
}

// dijkstraFirstHop resolves the next hop out of start on the shortest
// path to destination: the normative Dijkstra-then-backtrack sequence
// described throughout spec.md §4.4.
func (r *RIB) dijkstraFirstHop(start, destination *graph.Node) (*graph.Node, int, bool) {
	if start == destination {
		return nil, 0, false
	}
	reached, dist, prev, ok := r.dijkstra(start, map[*graph.Node]struct{}{destination: {}})
	if !ok {
		return nil, 0, false
	}
	cur := reached
	for prev[cur] != start {
		p, exists := prev[cur]
		if !exists {
			return nil, 0, false
		}
		cur = p
	}
	return cur, dist[reached], true
}

// DijkstraToAny implements spec.md §4.6: the shortest path from start to
// the nearest member of targets. Returns the union of nodes and the
// ordered edges on that path, or ErrPathNotFound if targets is
// unreachable from start.
func (r *RIB) DijkstraToAny(start *graph.Node, targets map[*graph.Node]struct{}) ([]*graph.Node, []graph.Edge, error) {
	if _, already := targets[start]; already {
		return []*graph.Node{start}, nil, nil
	}
	reached, _, prev, ok := r.dijkstra(start, targets)
	if !ok {
		return nil, nil, ErrPathNotFound
	}
	nodes, edges := r.reconstructPath(start, reached, prev)
	return nodes, edges, nil
}
