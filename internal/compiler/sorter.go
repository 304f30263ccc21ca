package compiler

import (
	"errors"
	"strings"

	"github.com/vk/shadegrid/internal/dag"
	"github.com/vk/shadegrid/internal/graph"
)

// sortDependencies builds the dependency graph (connections into ports and
// parameter slots count the same way) and returns the execution order. A
// cycle anywhere short-circuits compilation: unlike structural and type
// violations there is nothing to accumulate, because no ordering exists to
// drive the later stages.
func sortDependencies(doc *graph.Document, diags *diagSink) []string {
	g := dag.New()
	for _, n := range doc.Nodes {
		g.AddNode(n.ID)
	}

	seen := make(map[[2]string]struct{}, len(doc.Connections))
	for _, c := range doc.Connections {
		edge := [2]string{c.SourceNode, c.TargetNode}
		if _, dup := seen[edge]; dup {
			continue
		}
		seen[edge] = struct{}{}

		if err := g.AddEdge(c.SourceNode, c.TargetNode); err != nil {
			// The validator guarantees both endpoints exist, so the only
			// error left is a self-referential connection, which is the
			// smallest possible cycle.
			diags.cyclef("node %q feeds itself via connection %q", c.SourceNode, c.ID)
			return nil
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			diags.cyclef("nodes %s form a dependency cycle", strings.Join(cycleErr.Remaining, ", "))
		} else {
			diags.cyclef("%v", err)
		}
		return nil
	}
	return order
}
