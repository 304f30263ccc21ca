package compiler

import (
	"fmt"

	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/spec"
)

// collectSubroutines renders the shared subroutine template of every node
// instance whose spec declares one, then deduplicates by exact text
// equality. Each instance gets its own fully-substituted copy; dedup only
// collapses truly identical text, such as a helper with no per-instance
// slots shared by several instances. Two instances whose templates
// reference their own uniforms render differently and both survive.
func (g *genContext) collectSubroutines() ([]string, error) {
	var out []string
	seen := map[string]struct{}{}

	for _, nodeID := range g.order {
		n := g.doc.NodeByID(nodeID)
		s, _ := g.reg.Lookup(n.Type)
		if s.Subroutine == nil {
			continue
		}

		text, err := s.Subroutine.Render(func(slot spec.Slot) (string, error) {
			return g.resolveSubroutineSlot(n, s, slot)
		})
		if err != nil {
			return nil, fmt.Errorf("node %q subroutine: %w", nodeID, err)
		}

		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out, nil
}

// resolveSubroutineSlot resolves slots inside a subroutine template.
// Subroutines are global functions, so they can only see uniforms and the
// fixed globals, never main's locals: a parameter whose uniform was
// suppressed by an override-mode connection resolves to its declared
// default as a constant instead.
func (g *genContext) resolveSubroutineSlot(n *graph.Node, s *spec.NodeSpec, slot spec.Slot) (string, error) {
	switch slot.Kind {
	case spec.SlotTime:
		return timeUniform, nil
	case spec.SlotResolution:
		return resolutionUniform, nil
	case spec.SlotCoord:
		// The base coordinate is computed in main; subroutines receive
		// coordinates as arguments instead.
		return "", fmt.Errorf("$coord is not available inside a subroutine")
	case spec.SlotParam:
		def, _ := s.Param(slot.Name)
		if def.Type == spec.TypeString {
			return g.stringParam(n, def), nil
		}
		if u := g.names.uniform(n.ID, slot.Name); u != nil {
			u.used = true
			return u.name, nil
		}
		return valueLiteral(paramValue(n, def), def.Type), nil
	}
	return "", fmt.Errorf("unresolvable slot %s in subroutine", slot)
}
