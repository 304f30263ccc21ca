package dag

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports that a topological sort failed because at least one
// cycle exists. Remaining lists the IDs of every node that could not be
// ordered, sorted for stable messages; each is on or downstream of a cycle.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving nodes: %s", strings.Join(e.Remaining, ", "))
}

// TopologicalSort returns every node ID ordered so that each node appears
// after all of its dependencies (Kahn's algorithm). The tie-break between
// simultaneously-ready nodes is explicit and guaranteed: the ready queue is
// seeded in node insertion order and processed FIFO, with a node enqueued
// the moment its last dependency is placed. Returns a *CycleError when the
// graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	inDegree := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		inDegree[id] = len(g.nodes[id].deps)
	}

	queue := make([]string, 0, len(g.nodes))
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		// Release dependents in insertion order so discovery order, and
		// with it the final order, never depends on map iteration.
		n := g.nodes[id]
		for _, depID := range g.order {
			if _, ok := n.dependents[depID]; !ok {
				continue
			}
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if len(sorted) < len(g.nodes) {
		placed := make(map[string]struct{}, len(sorted))
		for _, id := range sorted {
			placed[id] = struct{}{}
		}
		var remaining []string
		for _, id := range g.order {
			if _, ok := placed[id]; !ok {
				remaining = append(remaining, id)
			}
		}
		sort.Strings(remaining)
		return nil, &CycleError{Remaining: remaining}
	}

	return sorted, nil
}
