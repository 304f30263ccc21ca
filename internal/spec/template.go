package spec

import (
	"fmt"
	"strings"
)

// SlotKind classifies the placeholder slots a code template may carry.
type SlotKind int

const (
	// SlotInput resolves to the expression feeding a named input port.
	SlotInput SlotKind = iota
	// SlotOutput resolves to the instance's allocated output variable.
	SlotOutput
	// SlotParam resolves to the instance's uniform (or local constant) for
	// a named parameter.
	SlotParam
	// SlotTime resolves to the global elapsed-time uniform.
	SlotTime
	// SlotResolution resolves to the global viewport-resolution uniform.
	SlotResolution
	// SlotCoord resolves to the base fragment coordinate.
	SlotCoord
)

// Slot is one placeholder in a template. Name is empty for the global kinds.
type Slot struct {
	Kind SlotKind
	Name string
}

func (s Slot) String() string {
	switch s.Kind {
	case SlotInput:
		return "$in." + s.Name
	case SlotOutput:
		return "$out." + s.Name
	case SlotParam:
		return "$param." + s.Name
	case SlotTime:
		return "$time"
	case SlotResolution:
		return "$resolution"
	case SlotCoord:
		return "$coord"
	}
	return "$?"
}

// segment is either a run of literal text or exactly one slot.
type segment struct {
	literal string
	slot    Slot
	isSlot  bool
}

// Template is a code template parsed into an alternating sequence of literal
// text and slots. Parsing happens once, at spec registration; rendering
// resolves every slot through a callback, so there is no textual
// search-and-replace at compile time and no way for a substitution to
// collide with surrounding text.
type Template struct {
	source   string
	segments []segment
	slots    []Slot
}

// ParseTemplate parses src into a Template. Slots are written as
// $in.name, $out.name, $param.name, $time, $resolution, or $coord. A '$'
// that does not introduce a well-formed slot is an error, which guarantees
// every placeholder in a registered template is resolved at render time.
func ParseTemplate(src string) (*Template, error) {
	t := &Template{source: src}
	seenSlots := map[Slot]struct{}{}

	var lit strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		if c != '$' {
			lit.WriteByte(c)
			i++
			continue
		}

		slot, next, err := parseSlot(src, i)
		if err != nil {
			return nil, err
		}
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		t.segments = append(t.segments, segment{slot: slot, isSlot: true})
		if _, ok := seenSlots[slot]; !ok {
			seenSlots[slot] = struct{}{}
			t.slots = append(t.slots, slot)
		}
		i = next
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	return t, nil
}

// MustParse is ParseTemplate for static catalog templates; it panics on a
// malformed template, surfacing catalog authoring mistakes at startup.
func MustParse(src string) *Template {
	t, err := ParseTemplate(src)
	if err != nil {
		panic(fmt.Sprintf("spec: invalid template: %v", err))
	}
	return t
}

// parseSlot parses one slot starting at the '$' at src[start] and returns it
// together with the index just past its end.
func parseSlot(src string, start int) (Slot, int, error) {
	i := start + 1
	kindWord, i := scanIdent(src, i)
	switch kindWord {
	case "time":
		return Slot{Kind: SlotTime}, i, nil
	case "resolution":
		return Slot{Kind: SlotResolution}, i, nil
	case "coord":
		return Slot{Kind: SlotCoord}, i, nil
	case "in", "out", "param":
	default:
		return Slot{}, 0, fmt.Errorf("stray '$' at offset %d: %q is not a slot kind", start, kindWord)
	}

	if i >= len(src) || src[i] != '.' {
		return Slot{}, 0, fmt.Errorf("slot $%s at offset %d missing '.name'", kindWord, start)
	}
	name, i := scanIdent(src, i+1)
	if name == "" {
		return Slot{}, 0, fmt.Errorf("slot $%s. at offset %d missing name", kindWord, start)
	}

	var kind SlotKind
	switch kindWord {
	case "in":
		kind = SlotInput
	case "out":
		kind = SlotOutput
	case "param":
		kind = SlotParam
	}
	return Slot{Kind: kind, Name: name}, i, nil
}

// scanIdent consumes [A-Za-z_][A-Za-z0-9_]* starting at i.
func scanIdent(src string, i int) (string, int) {
	start := i
	for i < len(src) {
		c := src[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || (i > start && c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return src[start:i], i
}

// Source returns the original template text.
func (t *Template) Source() string { return t.source }

// Slots returns the distinct slots of the template in first-appearance
// order.
func (t *Template) Slots() []Slot { return t.slots }

// Render resolves every slot through resolve and concatenates the result.
// The error from the first failing slot is returned as-is.
func (t *Template) Render(resolve func(Slot) (string, error)) (string, error) {
	var out strings.Builder
	for _, seg := range t.segments {
		if !seg.isSlot {
			out.WriteString(seg.literal)
			continue
		}
		text, err := resolve(seg.slot)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}
