// Package spec defines the static node templates the compiler consumes: the
// value-type domain, port and parameter declarations, and the slot-based
// code templates a node type carries.
//
// A NodeSpec is authored once (in a builtin catalog package or an HCL
// manifest), validated at registration, and treated as immutable for the
// lifetime of the registry. The compiler never mutates a spec.
package spec

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Category groups node types for the editor palette and gives the compiler
// the one behavioral hint it needs: transform nodes produce coordinates.
type Category string

const (
	CategorySource    Category = "source"
	CategoryMath      Category = "math"
	CategoryColor     Category = "color"
	CategoryTransform Category = "transform"
	CategoryAudio     Category = "audio"
	CategoryOutput    Category = "output"
)

// InputMode says how a value connected to a parameter slot combines with the
// parameter's own base value.
type InputMode string

const (
	// ModeOverride replaces the base value entirely; the parameter's
	// uniform is suppressed.
	ModeOverride InputMode = "override"
	ModeAdd      InputMode = "add"
	ModeSubtract InputMode = "subtract"
	ModeMultiply InputMode = "multiply"
)

// ValidInputMode reports whether m is one of the recognized combination modes.
func ValidInputMode(m InputMode) bool {
	switch m {
	case ModeOverride, ModeAdd, ModeSubtract, ModeMultiply:
		return true
	}
	return false
}

// PortDef declares a single named, typed input or output port.
type PortDef struct {
	Name string
	Type ValueType
}

// ParamDef declares a runtime-adjustable parameter of a node type.
type ParamDef struct {
	Name string
	Type ValueType

	// Default is the parameter's base value, expressed as a cty value
	// convertible to Type.CtyType(). It seeds the uniform's default in the
	// binding table.
	Default cty.Value

	// Min and Max bound the editor's control range. They are advisory;
	// the compiler does not clamp.
	Min, Max *float64

	// Mode is the default input-combination mode applied when a connection
	// feeds this parameter and the node instance does not override it.
	Mode InputMode
}

// NodeSpec is the static template for a node type. Instances reference it by
// Type; the compiler resolves ports, parameters, and code templates through
// it.
type NodeSpec struct {
	Type     string
	Category Category

	Inputs  []PortDef
	Outputs []PortDef

	// Params are ordered as declared; order determines uniform allocation
	// order and therefore generated-program byte stability.
	Params []ParamDef

	// Main is the node's body template, substituted once per instance
	// inside its own block scope. Required.
	Main *Template

	// Subroutine is an optional shared helper template emitted once per
	// instance ahead of main(), deduplicated by exact text.
	Subroutine *Template

	// SelfSupplying marks source-like nodes that manufacture their own
	// value and never read ports. Unconnected inputs on such nodes are not
	// a "disconnected node" condition.
	SelfSupplying bool

	// Sink marks the designated final-output node type.
	Sink bool

	// LiveSource marks nodes whose uniforms are refreshed every frame by
	// an external collaborator (audio analysis). Their uniforms are never
	// eliminated, referenced or not.
	LiveSource bool
}

// Input resolves a declared input port by name.
func (s *NodeSpec) Input(name string) (PortDef, bool) {
	for _, p := range s.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return PortDef{}, false
}

// Output resolves a declared output port by name.
func (s *NodeSpec) Output(name string) (PortDef, bool) {
	for _, p := range s.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return PortDef{}, false
}

// Param resolves a declared parameter by name.
func (s *NodeSpec) Param(name string) (ParamDef, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDef{}, false
}

// Validate checks internal consistency of the spec: declared types are
// known, port and parameter names are unique, and every template slot
// resolves to a declaration. The registry calls this once at registration.
func (s *NodeSpec) Validate() error {
	if s.Type == "" {
		return fmt.Errorf("node spec missing type id")
	}
	if s.Main == nil {
		return fmt.Errorf("node spec %q: missing main template", s.Type)
	}

	seen := map[string]struct{}{}
	for _, p := range s.Inputs {
		if !p.Type.Connectable() {
			return fmt.Errorf("node spec %q: input %q has non-connectable type %q", s.Type, p.Name, p.Type)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("node spec %q: duplicate input %q", s.Type, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	seen = map[string]struct{}{}
	for _, p := range s.Outputs {
		if !p.Type.Connectable() {
			return fmt.Errorf("node spec %q: output %q has non-connectable type %q", s.Type, p.Name, p.Type)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("node spec %q: duplicate output %q", s.Type, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	seen = map[string]struct{}{}
	for _, p := range s.Params {
		if !p.Type.Valid() {
			return fmt.Errorf("node spec %q: param %q has unknown type %q", s.Type, p.Name, p.Type)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("node spec %q: duplicate param %q", s.Type, p.Name)
		}
		if p.Mode != "" && !ValidInputMode(p.Mode) {
			return fmt.Errorf("node spec %q: param %q has unknown input mode %q", s.Type, p.Name, p.Mode)
		}
		seen[p.Name] = struct{}{}
	}

	for _, slot := range s.Main.Slots() {
		if err := s.checkSlot(slot, false); err != nil {
			return fmt.Errorf("node spec %q: main template: %w", s.Type, err)
		}
	}
	if s.Subroutine != nil {
		for _, slot := range s.Subroutine.Slots() {
			if err := s.checkSlot(slot, true); err != nil {
				return fmt.Errorf("node spec %q: subroutine template: %w", s.Type, err)
			}
		}
	}
	return nil
}

func (s *NodeSpec) checkSlot(slot Slot, subroutine bool) error {
	switch slot.Kind {
	case SlotInput:
		if subroutine {
			return fmt.Errorf("input slot %q not allowed outside main", slot.Name)
		}
		if _, ok := s.Input(slot.Name); !ok {
			return fmt.Errorf("slot references undeclared input %q", slot.Name)
		}
	case SlotOutput:
		if subroutine {
			return fmt.Errorf("output slot %q not allowed outside main", slot.Name)
		}
		if _, ok := s.Output(slot.Name); !ok {
			return fmt.Errorf("slot references undeclared output %q", slot.Name)
		}
	case SlotParam:
		def, ok := s.Param(slot.Name)
		if !ok {
			return fmt.Errorf("slot references undeclared param %q", slot.Name)
		}
		// Array constants are node-block locals in main; a global
		// subroutine cannot see them.
		if subroutine && def.Type == TypeArray {
			return fmt.Errorf("array param %q not allowed outside main", slot.Name)
		}
	case SlotCoord:
		// The base coordinate is a main() local; subroutines take
		// coordinates as arguments.
		if subroutine {
			return fmt.Errorf("$coord not allowed outside main")
		}
	}
	return nil
}
