package compiler

import (
	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
)

// validateStructure checks shape and reference integrity of the document,
// accumulating every violation rather than stopping at the first. Any error
// here aborts compilation before ordering or codegen is attempted.
func validateStructure(doc *graph.Document, reg *registry.Registry, diags *diagSink) {
	if doc.ID == "" {
		diags.structuralf("graph is missing its id")
	}
	if doc.Name == "" {
		diags.structuralf("graph is missing its name")
	}
	if doc.Version != graph.SchemaVersion {
		// A version mismatch is an error, never a silent upgrade;
		// migration is a pre-step owned by the preset tooling.
		diags.structuralf("graph schema version %d does not match expected version %d", doc.Version, graph.SchemaVersion)
	}

	nodeIDs := make(map[string]struct{}, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			diags.structuralf("node of type %q is missing its id", n.Type)
			continue
		}
		if _, dup := nodeIDs[n.ID]; dup {
			diags.structuralf("duplicate node id %q", n.ID)
			continue
		}
		nodeIDs[n.ID] = struct{}{}

		if _, ok := reg.Lookup(n.Type); !ok {
			diags.structuralf("node %q references unknown node type %q", n.ID, n.Type)
		}
	}

	connIDs := make(map[string]struct{}, len(doc.Connections))
	targets := make(map[string]string) // "node\x00port" -> connection id
	for _, c := range doc.Connections {
		if c.ID == "" {
			diags.structuralf("connection from %q is missing its id", c.SourceNode)
		} else if _, dup := connIDs[c.ID]; dup {
			diags.structuralf("duplicate connection id %q", c.ID)
		} else {
			connIDs[c.ID] = struct{}{}
		}

		if _, ok := nodeIDs[c.SourceNode]; !ok {
			diags.structuralf("connection %q references unknown source node %q", c.ID, c.SourceNode)
		}
		if _, ok := nodeIDs[c.TargetNode]; !ok {
			diags.structuralf("connection %q references unknown target node %q", c.ID, c.TargetNode)
		}

		slot := c.TargetPort
		if c.TargetsParam() {
			slot = "param:" + c.TargetParam
		}
		key := c.TargetNode + "\x00" + slot
		if prev, dup := targets[key]; dup {
			diags.structuralf("connections %q and %q both target %q on node %q", prev, c.ID, slot, c.TargetNode)
		} else {
			targets[key] = c.ID
		}
	}
}
