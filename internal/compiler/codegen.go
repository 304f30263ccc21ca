package compiler

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// genContext carries every artifact of one compile call through codegen and
// assembly. It is created per call and discarded with it; the compiler
// keeps no state between calls.
type genContext struct {
	doc   *graph.Document
	reg   *registry.Registry
	names *nameTable
	order []string

	// inbound maps nodeID -> input port -> the single connection feeding
	// it; paramFeeds is the same for parameter slots. The validator
	// guarantees at most one connection per slot.
	inbound    map[string]map[string]*graph.Connection
	paramFeeds map[string]map[string]*graph.Connection
}

// buildFeeds indexes the document's connections by their target slot.
func buildFeeds(doc *graph.Document) (inbound, paramFeeds map[string]map[string]*graph.Connection) {
	inbound = make(map[string]map[string]*graph.Connection)
	paramFeeds = make(map[string]map[string]*graph.Connection)
	for _, c := range doc.Connections {
		if c.TargetsParam() {
			if paramFeeds[c.TargetNode] == nil {
				paramFeeds[c.TargetNode] = make(map[string]*graph.Connection)
			}
			paramFeeds[c.TargetNode][c.TargetParam] = c
		} else {
			if inbound[c.TargetNode] == nil {
				inbound[c.TargetNode] = make(map[string]*graph.Connection)
			}
			inbound[c.TargetNode][c.TargetPort] = c
		}
	}
	return inbound, paramFeeds
}

// sourceType returns the declared type of a connection's source output
// port. Type checking has already verified the port resolves.
func (g *genContext) sourceType(c *graph.Connection) spec.ValueType {
	srcSpec, _ := g.reg.Lookup(g.doc.NodeByID(c.SourceNode).Type)
	port, _ := srcSpec.Output(c.SourcePort)
	return port.Type
}

// generateMain renders each node's main template inside its own block
// scope, in execution order, and returns the blocks plus the preamble of
// output variable declarations.
//
// The preamble declares every node's output variables once at main's top
// level because a later node's block may read an output variable whose
// producing block already closed. Coordinate-transform outputs start as the
// unmodified base coordinate; everything else starts at zero.
func (g *genContext) generateMain(diags *diagSink) (preamble []string, blocks []string, err error) {
	for _, nodeID := range g.order {
		n := g.doc.NodeByID(nodeID)
		s, _ := g.reg.Lookup(n.Type)

		for _, p := range s.Outputs {
			init := p.Type.ZeroLiteral()
			if s.Category == spec.CategoryTransform && p.Type == spec.TypeVec2 {
				init = baseCoordName
			}
			preamble = append(preamble, fmt.Sprintf("%s %s = %s;", p.Type.GLSL(), g.names.output(nodeID, p.Name), init))
		}
	}

	for _, nodeID := range g.order {
		n := g.doc.NodeByID(nodeID)
		s, _ := g.reg.Lookup(n.Type)

		if !s.SelfSupplying && len(s.Inputs) > 0 && len(g.inbound[nodeID]) == 0 && len(g.paramFeeds[nodeID]) == 0 {
			diags.warnf("node %q is disconnected; its inputs default to zero", nodeID)
		}

		block, err := g.renderNode(n, s)
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, block)
	}

	return preamble, blocks, nil
}

// renderNode renders one node's local constant arrays and substituted main
// template inside a lexical block, so helper locals of repeated instances
// of the same node type never collide.
func (g *genContext) renderNode(n *graph.Node, s *spec.NodeSpec) (string, error) {
	arrays := map[string]string{}
	var arrayDecls []string
	for _, def := range s.Params {
		if def.Type != spec.TypeArray {
			continue
		}
		name := localArrayName(n.ID, def.Name)
		arrays[def.Name] = name
		arrayDecls = append(arrayDecls, g.arrayDecl(n, def, name))
	}

	body, err := s.Main.Render(func(slot spec.Slot) (string, error) {
		return g.resolveMainSlot(n, s, slot, arrays)
	})
	if err != nil {
		return "", fmt.Errorf("node %q: %w", n.ID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    { // %s: %s\n", s.Type, n.ID)
	for _, decl := range arrayDecls {
		b.WriteString("        " + decl + "\n")
	}
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("        " + strings.TrimLeft(line, " \t") + "\n")
	}
	b.WriteString("    }")
	return b.String(), nil
}

// arrayDecl emits the node-local constant array for an array-typed
// parameter. Elements use fixed-precision literals. An empty array value
// still yields a one-element zero array, because GLSL has no zero-length
// arrays and the template may index the constant unconditionally.
func (g *genContext) arrayDecl(n *graph.Node, def spec.ParamDef, name string) string {
	val := def.Default
	if v, ok := n.Params[def.Name]; ok {
		val = v
	}

	var elems []string
	if val != cty.NilVal {
		if converted, err := convert.Convert(val, def.Type.CtyType()); err == nil {
			for it := converted.ElementIterator(); it.Next(); {
				_, ev := it.Element()
				elems = append(elems, fixedLiteral(ctyFloat(ev)))
			}
		}
	}
	if len(elems) == 0 {
		elems = []string{fixedLiteral(0)}
	}
	return fmt.Sprintf("const float %s[%d] = float[%d](%s);", name, len(elems), len(elems), strings.Join(elems, ", "))
}

// resolveMainSlot resolves one slot of a node's main template.
func (g *genContext) resolveMainSlot(n *graph.Node, s *spec.NodeSpec, slot spec.Slot, arrays map[string]string) (string, error) {
	switch slot.Kind {
	case spec.SlotTime:
		return timeUniform, nil
	case spec.SlotResolution:
		return resolutionUniform, nil
	case spec.SlotCoord:
		return baseCoordName, nil

	case spec.SlotOutput:
		return g.names.output(n.ID, slot.Name), nil

	case spec.SlotInput:
		port, _ := s.Input(slot.Name)
		conn := g.inbound[n.ID][slot.Name]
		if conn == nil {
			return port.Type.ZeroLiteral(), nil
		}
		expr := g.names.output(conn.SourceNode, conn.SourcePort)
		return promoteExpr(expr, g.sourceType(conn), port.Type), nil

	case spec.SlotParam:
		def, _ := s.Param(slot.Name)
		return g.resolveParam(n, def, arrays)
	}
	return "", fmt.Errorf("unresolvable slot %s", slot)
}

// resolveParam produces the expression for a parameter reference: the local
// constant array, the inlined string, the connected expression, a
// combination of uniform and connected expression, or the bare uniform.
// Uniform usage is recorded here, at substitution time.
func (g *genContext) resolveParam(n *graph.Node, def spec.ParamDef, arrays map[string]string) (string, error) {
	switch def.Type {
	case spec.TypeArray:
		return arrays[def.Name], nil
	case spec.TypeString:
		return g.stringParam(n, def), nil
	}

	feed := g.paramFeeds[n.ID][def.Name]
	if feed == nil {
		u := g.names.uniform(n.ID, def.Name)
		u.used = true
		return u.name, nil
	}

	srcExpr := promoteExpr(g.names.output(feed.SourceNode, feed.SourcePort), g.sourceType(feed), def.Type)
	mode := n.Mode(def.Name, def)
	if mode == spec.ModeOverride {
		// The connected value fully replaces the base value; the uniform
		// was never allocated.
		return srcExpr, nil
	}

	u := g.names.uniform(n.ID, def.Name)
	u.used = true
	switch mode {
	case spec.ModeAdd:
		return fmt.Sprintf("(%s + %s)", u.name, srcExpr), nil
	case spec.ModeSubtract:
		return fmt.Sprintf("(%s - %s)", u.name, srcExpr), nil
	case spec.ModeMultiply:
		return fmt.Sprintf("(%s * %s)", u.name, srcExpr), nil
	}
	return "", fmt.Errorf("parameter %q.%s: unknown input mode %q", n.ID, def.Name, mode)
}

// paramValue returns the instance's value for a parameter, falling back to
// the spec default.
func paramValue(n *graph.Node, def spec.ParamDef) cty.Value {
	if v, ok := n.Params[def.Name]; ok {
		return v
	}
	return def.Default
}

// stringParam inlines a string parameter's text into the template. String
// parameters choose codegen behavior (an operator, a function name); they
// never become uniforms.
func (g *genContext) stringParam(n *graph.Node, def spec.ParamDef) string {
	val := def.Default
	if v, ok := n.Params[def.Name]; ok {
		val = v
	}
	if val == cty.NilVal {
		return ""
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return ""
	}
	return converted.AsString()
}
