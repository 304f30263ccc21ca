// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file loads graph documents from HCL preset files.
//
// Why HCL for presets?
//
// A preset is the serialized form of what the editor shows: nodes, their
// parameter values, and the wires between them. HCL keeps that form diffable
// and hand-editable, which matters during a live set when an artist wants to
// nudge a parameter in a text editor without round-tripping through the UI.
// The loader is deliberately dumb: it only maps syntax onto the document
// model. Every semantic rule (unique ids, resolvable types, wirable ports)
// belongs to the compiler's validator, so a broken preset produces the same
// diagnostics as a broken editor graph.
package preset

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/ctxlog"
	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/spec"
)

// hclFile is the top-level structure of a preset file for decoding.
type hclFile struct {
	Graphs []*hclGraph `hcl:"graph,block"`
}

type hclGraph struct {
	ID          string           `hcl:"id,label"`
	Name        string           `hcl:"name,optional"`
	Version     int              `hcl:"version"`
	Nodes       []*hclNode       `hcl:"node,block"`
	Connections []*hclConnection `hcl:"connection,block"`

	// Remain swallows editor view-state blocks; the compiler never reads
	// them and the loader does not fail on them.
	Remain hcl.Body `hcl:",remain"`
}

type hclNode struct {
	Type   string            `hcl:"type,label"`
	ID     string            `hcl:"id,label"`
	Params cty.Value         `hcl:"params,optional"`
	Modes  map[string]string `hcl:"modes,optional"`
}

type hclConnection struct {
	ID    string `hcl:"id,label"`
	From  string `hcl:"from"`
	To    string `hcl:"to,optional"`
	Param string `hcl:"param,optional"`
	Mode  string `hcl:"mode,optional"`
}

// LoadHCLFile parses a single .hcl preset file into a graph document. A
// preset file holds exactly one graph block.
func LoadHCLFile(ctx context.Context, filePath string) (*graph.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph preset", "path", filePath)

	parser := hclparse.NewParser()
	hclF, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", filePath, diags)
	}

	var file hclFile
	if diags := gohcl.DecodeBody(hclF.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode preset file %s: %w", filePath, diags)
	}

	if len(file.Graphs) != 1 {
		return nil, fmt.Errorf("preset file %s: expected exactly one graph block, found %d", filePath, len(file.Graphs))
	}

	doc, err := file.Graphs[0].toDocument()
	if err != nil {
		return nil, fmt.Errorf("preset file %s: %w", filePath, err)
	}

	logger.Debug("Graph preset loaded", "graph", doc.ID, "nodes", len(doc.Nodes), "connections", len(doc.Connections))
	return doc, nil
}

func (g *hclGraph) toDocument() (*graph.Document, error) {
	doc := &graph.Document{
		ID:      g.ID,
		Name:    g.Name,
		Version: g.Version,
	}
	if doc.Name == "" {
		doc.Name = g.ID
	}

	for _, hn := range g.Nodes {
		n := &graph.Node{
			ID:     hn.ID,
			Type:   hn.Type,
			Params: map[string]cty.Value{},
		}
		if hn.Params != cty.NilVal {
			if !hn.Params.Type().IsObjectType() && !hn.Params.Type().IsMapType() {
				return nil, fmt.Errorf("node %q: params must be an object", hn.ID)
			}
			n.Params = hn.Params.AsValueMap()
		}
		for param, mode := range hn.Modes {
			if n.Modes == nil {
				n.Modes = map[string]spec.InputMode{}
			}
			n.Modes[param] = spec.InputMode(mode)
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	for _, hc := range g.Connections {
		srcNode, srcPort, err := splitEndpoint(hc.From)
		if err != nil {
			return nil, fmt.Errorf("connection %q: from: %w", hc.ID, err)
		}

		conn := &graph.Connection{
			ID:         hc.ID,
			SourceNode: srcNode,
			SourcePort: srcPort,
		}

		switch {
		case hc.To != "" && hc.Param != "":
			return nil, fmt.Errorf("connection %q: 'to' and 'param' are mutually exclusive", hc.ID)
		case hc.To != "":
			node, port, err := splitEndpoint(hc.To)
			if err != nil {
				return nil, fmt.Errorf("connection %q: to: %w", hc.ID, err)
			}
			conn.TargetNode = node
			conn.TargetPort = port
		case hc.Param != "":
			node, param, err := splitEndpoint(hc.Param)
			if err != nil {
				return nil, fmt.Errorf("connection %q: param: %w", hc.ID, err)
			}
			conn.TargetNode = node
			conn.TargetParam = param
			if hc.Mode != "" {
				target := findNode(doc, node)
				if target == nil {
					return nil, fmt.Errorf("connection %q: param targets undeclared node %q", hc.ID, node)
				}
				if target.Modes == nil {
					target.Modes = map[string]spec.InputMode{}
				}
				target.Modes[param] = spec.InputMode(hc.Mode)
			}
		default:
			return nil, fmt.Errorf("connection %q: one of 'to' or 'param' is required", hc.ID)
		}

		doc.Connections = append(doc.Connections, conn)
	}

	return doc, nil
}

func findNode(doc *graph.Document, id string) *graph.Node {
	for _, n := range doc.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// splitEndpoint splits "node.port" on the last dot, so node ids containing
// dots keep working.
func splitEndpoint(s string) (string, string, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return "", "", fmt.Errorf("endpoint %q must have the form \"node.port\"", s)
	}
	return s[:i], s[i+1:], nil
}
