package compiler

import (
	"github.com/vk/shadegrid/internal/spec"
)

// blackExpr is the constant final color of a degenerate program.
const blackExpr = "vec3(0.0)"

// resolveFinalOutput picks the node and output port whose value becomes the
// program's color, and returns the chosen node id together with the
// three-component color expression.
//
// Selection order:
//  1. The sink node type, when present exactly once.
//  2. Among several sinks: the last one in execution order with no
//     outgoing connections, else the last sink in execution order.
//  3. No sink: the last node in execution order exposing a 3- or
//     4-component output.
//  4. Fallback: the very last node's first output, converted to grayscale
//     when scalar.
//
// An empty order yields constant black; the caller emits the accompanying
// warning.
func (g *genContext) resolveFinalOutput(diags *diagSink) (string, string) {
	if len(g.order) == 0 {
		return "", blackExpr
	}

	if nodeID, port, ok := g.chooseSink(); ok {
		g.warnUnused(nodeID, diags)
		return nodeID, g.portColorExpr(nodeID, port)
	}

	// No sink: last color-like output wins.
	for i := len(g.order) - 1; i >= 0; i-- {
		nodeID := g.order[i]
		s, _ := g.reg.Lookup(g.doc.NodeByID(nodeID).Type)
		for _, p := range s.Outputs {
			if p.Type == spec.TypeVec3 || p.Type == spec.TypeVec4 {
				g.warnUnused(nodeID, diags)
				return nodeID, g.portColorExpr(nodeID, p)
			}
		}
	}

	// Fallback: the last node with any output at all.
	for i := len(g.order) - 1; i >= 0; i-- {
		nodeID := g.order[i]
		s, _ := g.reg.Lookup(g.doc.NodeByID(nodeID).Type)
		if len(s.Outputs) > 0 {
			g.warnUnused(nodeID, diags)
			return nodeID, g.portColorExpr(nodeID, s.Outputs[0])
		}
	}

	diags.warnf("no node exposes an output; rendering constant black")
	return "", blackExpr
}

// chooseSink applies the sink preference rules. The boolean reports
// whether any sink exists.
func (g *genContext) chooseSink() (string, spec.PortDef, bool) {
	var sinks []string
	for _, nodeID := range g.order {
		s, _ := g.reg.Lookup(g.doc.NodeByID(nodeID).Type)
		if s.Sink {
			sinks = append(sinks, nodeID)
		}
	}
	if len(sinks) == 0 {
		return "", spec.PortDef{}, false
	}

	chosen := sinks[len(sinks)-1]
	if len(sinks) > 1 {
		// Prefer a terminal sink: one nothing else reads from.
		for i := len(sinks) - 1; i >= 0; i-- {
			if len(g.doc.ConnectionsFrom(sinks[i])) == 0 {
				chosen = sinks[i]
				break
			}
		}
	}

	s, _ := g.reg.Lookup(g.doc.NodeByID(chosen).Type)
	if len(s.Outputs) > 0 {
		return chosen, s.Outputs[0], true
	}
	// A sink without outputs renders via its color input instead; treat
	// the first input as the value source by re-emitting its expression.
	return chosen, spec.PortDef{}, true
}

// portColorExpr converts a node output (or, for an output-less sink, its
// first input) into a vec3 color expression.
func (g *genContext) portColorExpr(nodeID string, port spec.PortDef) string {
	if port.Name != "" {
		return colorExpr(g.names.output(nodeID, port.Name), port.Type)
	}

	s, _ := g.reg.Lookup(g.doc.NodeByID(nodeID).Type)
	if len(s.Inputs) == 0 {
		return blackExpr
	}
	in := s.Inputs[0]
	conn := g.inbound[nodeID][in.Name]
	if conn == nil {
		return blackExpr
	}
	return colorExpr(
		promoteExpr(g.names.output(conn.SourceNode, conn.SourcePort), g.sourceType(conn), in.Type),
		in.Type,
	)
}

// warnUnused emits the advisory warning for nodes whose outputs drive
// nothing: not the chosen final output and no outgoing connections.
func (g *genContext) warnUnused(finalNode string, diags *diagSink) {
	for _, nodeID := range g.order {
		if nodeID == finalNode {
			continue
		}
		s, _ := g.reg.Lookup(g.doc.NodeByID(nodeID).Type)
		if len(s.Outputs) == 0 {
			continue
		}
		if len(g.doc.ConnectionsFrom(nodeID)) == 0 {
			diags.warnf("node %q drives nothing; its output is unused", nodeID)
		}
	}
}
