// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file loads graph documents stored as JSON, the interchange format
// the editor and export tooling use for saved presets.
package preset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/shadegrid/internal/ctxlog"
	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/spec"
)

// jsonDocument mirrors graph.Document with raw parameter payloads, because
// parameter values carry no type information of their own in JSON.
type jsonDocument struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Version     int                 `json:"version"`
	Nodes       []*jsonNode         `json:"nodes"`
	Connections []*graph.Connection `json:"connections"`
	View        map[string]any      `json:"view,omitempty"`
}

type jsonNode struct {
	ID     string                     `json:"id"`
	Type   string                     `json:"type"`
	Params map[string]json.RawMessage `json:"params,omitempty"`
	Modes  map[string]spec.InputMode  `json:"modes,omitempty"`
}

// LoadJSONFile parses a stored .json preset into a graph document.
// Parameter values are decoded with their JSON-implied cty type; the
// compiler converts them to the declared parameter type during codegen.
func LoadJSONFile(ctx context.Context, filePath string) (*graph.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading JSON graph preset", "path", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", filePath, err)
	}

	var jd jsonDocument
	if err := json.Unmarshal(raw, &jd); err != nil {
		return nil, fmt.Errorf("failed to decode preset file %s: %w", filePath, err)
	}

	doc := &graph.Document{
		ID:          jd.ID,
		Name:        jd.Name,
		Version:     jd.Version,
		Connections: jd.Connections,
		View:        jd.View,
	}

	for _, jn := range jd.Nodes {
		n := &graph.Node{
			ID:     jn.ID,
			Type:   jn.Type,
			Params: map[string]cty.Value{},
			Modes:  jn.Modes,
		}
		for name, payload := range jn.Params {
			ty, err := ctyjson.ImpliedType(payload)
			if err != nil {
				return nil, fmt.Errorf("preset file %s: node %q param %q: %w", filePath, jn.ID, name, err)
			}
			val, err := ctyjson.Unmarshal(payload, ty)
			if err != nil {
				return nil, fmt.Errorf("preset file %s: node %q param %q: %w", filePath, jn.ID, name, err)
			}
			n.Params[name] = val
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	return doc, nil
}

// LoadFile dispatches on file extension: .hcl presets are the authoring
// format, .json presets are the stored interchange format.
func LoadFile(ctx context.Context, filePath string) (*graph.Document, error) {
	switch filepath.Ext(filePath) {
	case ".hcl":
		return LoadHCLFile(ctx, filePath)
	case ".json":
		return LoadJSONFile(ctx, filePath)
	default:
		return nil, fmt.Errorf("unsupported preset format %q (want .hcl or .json)", filepath.Ext(filePath))
	}
}
