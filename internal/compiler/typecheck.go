package compiler

import (
	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// checkTypes verifies every connection against the promotion lattice. All
// violations across all connections are reported together. An unresolvable
// port or parameter name is an "invalid port" error, reported distinctly
// from a type mismatch.
//
// The validator has already run, so node references and type ids resolve;
// connections touching a node that failed validation are never reached
// because validation errors abort first.
func checkTypes(doc *graph.Document, reg *registry.Registry, diags *diagSink) {
	for _, c := range doc.Connections {
		srcNode := doc.NodeByID(c.SourceNode)
		dstNode := doc.NodeByID(c.TargetNode)
		srcSpec, _ := reg.Lookup(srcNode.Type)
		dstSpec, _ := reg.Lookup(dstNode.Type)

		srcPort, ok := srcSpec.Output(c.SourcePort)
		if !ok {
			diags.typef("connection %q: invalid port: node %q (%s) has no output %q", c.ID, c.SourceNode, srcSpec.Type, c.SourcePort)
			continue
		}

		if c.TargetsParam() {
			checkParamTarget(c, dstNode, dstSpec, srcPort, diags)
			continue
		}

		dstPort, ok := dstSpec.Input(c.TargetPort)
		if !ok {
			diags.typef("connection %q: invalid port: node %q (%s) has no input %q", c.ID, c.TargetNode, dstSpec.Type, c.TargetPort)
			continue
		}

		if !srcPort.Type.AssignableTo(dstPort.Type) {
			diags.typef("connection %q: cannot connect %s output %q.%s to %s input %q.%s",
				c.ID, srcPort.Type, c.SourceNode, c.SourcePort, dstPort.Type, c.TargetNode, c.TargetPort)
		}
	}
}

func checkParamTarget(c *graph.Connection, dstNode *graph.Node, dstSpec *spec.NodeSpec, srcPort spec.PortDef, diags *diagSink) {
	def, ok := dstSpec.Param(c.TargetParam)
	if !ok {
		diags.typef("connection %q: invalid port: node %q (%s) has no parameter %q", c.ID, c.TargetNode, dstSpec.Type, c.TargetParam)
		return
	}

	if !def.Type.Connectable() {
		diags.typef("connection %q: parameter %q.%s has type %s, which cannot be fed by a connection",
			c.ID, c.TargetNode, c.TargetParam, def.Type)
		return
	}

	if !srcPort.Type.AssignableTo(def.Type) {
		diags.typef("connection %q: cannot connect %s output %q.%s to %s parameter %q.%s",
			c.ID, srcPort.Type, c.SourceNode, c.SourcePort, def.Type, c.TargetNode, c.TargetParam)
		return
	}

	mode := dstNode.Mode(c.TargetParam, def)
	if !spec.ValidInputMode(mode) {
		diags.typef("connection %q: parameter %q.%s has unknown input mode %q", c.ID, c.TargetNode, c.TargetParam, mode)
		return
	}
	// Arithmetic combination needs a numeric base value; a bool parameter
	// can only be overridden.
	if def.Type == spec.TypeBool && mode != spec.ModeOverride {
		diags.typef("connection %q: bool parameter %q.%s only supports the override input mode, got %q",
			c.ID, c.TargetNode, c.TargetParam, mode)
	}
}
