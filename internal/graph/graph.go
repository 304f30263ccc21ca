// Package graph defines the user-authored graph document the compiler
// consumes: placed nodes, connections between their ports, and opaque
// editor view-state.
//
// A Document is constructed entirely outside the compiler, by the editor or
// a preset loader. The compiler treats it as a read-only snapshot for the
// duration of one compile call; nothing in this package enforces the
// document invariants (unique IDs, resolvable references), the structural
// validator reports violations instead.
package graph

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/spec"
)

// SchemaVersion is the document schema version this build understands. A
// document declaring any other version is rejected by the structural
// validator; migration is a pre-step owned by the preset loader's callers.
const SchemaVersion = 2

// Document is one complete node graph.
type Document struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`

	// Nodes and Connections keep their authored order. Node order is the
	// topological sort's tie-break, so it is semantically significant.
	Nodes       []*Node       `json:"nodes"`
	Connections []*Connection `json:"connections"`

	// View carries editor state (pan, zoom, node positions). The compiler
	// never inspects it.
	View map[string]any `json:"view,omitempty"`
}

// Node is a placed node instance referencing a NodeSpec by type id.
type Node struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	// Params holds concrete parameter values keyed by parameter name.
	// Values are cty values convertible to the declared parameter type.
	Params map[string]cty.Value `json:"-"`

	// Modes optionally overrides, per parameter, how a connected value
	// combines with the parameter's base value.
	Modes map[string]spec.InputMode `json:"modes,omitempty"`
}

// Connection is a directed edge from a source node's output port to either
// a target node's input port or one of its parameter slots.
type Connection struct {
	ID         string `json:"id"`
	SourceNode string `json:"sourceNode"`
	SourcePort string `json:"sourcePort"`
	TargetNode string `json:"targetNode"`

	// Exactly one of TargetPort and TargetParam is set.
	TargetPort  string `json:"targetPort,omitempty"`
	TargetParam string `json:"targetParam,omitempty"`
}

// TargetsParam reports whether the connection feeds a parameter slot rather
// than an input port.
func (c *Connection) TargetsParam() bool { return c.TargetParam != "" }

// NodeByID returns the node with the given id, or nil.
func (d *Document) NodeByID(id string) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// ConnectionsInto returns the document's connections targeting the given
// node, in authored order.
func (d *Document) ConnectionsInto(nodeID string) []*Connection {
	var conns []*Connection
	for _, c := range d.Connections {
		if c.TargetNode == nodeID {
			conns = append(conns, c)
		}
	}
	return conns
}

// ConnectionsFrom returns the document's connections sourced from the given
// node, in authored order.
func (d *Document) ConnectionsFrom(nodeID string) []*Connection {
	var conns []*Connection
	for _, c := range d.Connections {
		if c.SourceNode == nodeID {
			conns = append(conns, c)
		}
	}
	return conns
}

// Mode returns the input-combination mode in effect for a parameter of this
// node: the instance override when present, otherwise the spec default,
// otherwise override.
func (n *Node) Mode(param string, def spec.ParamDef) spec.InputMode {
	if m, ok := n.Modes[param]; ok {
		return m
	}
	if def.Mode != "" {
		return def.Mode
	}
	return spec.ModeOverride
}
