// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file loads node spec manifests from HCL files.
//
// Why allow node specs outside the builtin catalog?
//
// The builtin catalog covers the common composer nodes, but a performance
// rig often needs one-off effect nodes. A manifest lets an artist declare a
// new node type (ports, parameters, GLSL templates) as data, without
// touching Go code, and have it validated by exactly the same rules as the
// builtins.
package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/shadegrid/internal/ctxlog"
	"github.com/vk/shadegrid/internal/fsutil"
	"github.com/vk/shadegrid/internal/spec"
)

// manifestFile is the top-level structure of a node spec manifest file.
type manifestFile struct {
	Specs []*manifestSpec `hcl:"node_spec,block"`
}

type manifestSpec struct {
	Type          string           `hcl:"type,label"`
	Category      string           `hcl:"category"`
	Inputs        []*manifestPort  `hcl:"input,block"`
	Outputs       []*manifestPort  `hcl:"output,block"`
	Params        []*manifestParam `hcl:"param,block"`
	Main          string           `hcl:"main"`
	Subroutine    string           `hcl:"subroutine,optional"`
	SelfSupplying bool             `hcl:"self_supplying,optional"`
	Sink          bool             `hcl:"sink,optional"`
	LiveSource    bool             `hcl:"live_source,optional"`
}

type manifestPort struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

type manifestParam struct {
	Name    string    `hcl:"name,label"`
	Type    string    `hcl:"type"`
	Default cty.Value `hcl:"default,optional"`
	Min     *float64  `hcl:"min,optional"`
	Max     *float64  `hcl:"max,optional"`
	Mode    string    `hcl:"mode,optional"`
}

// LoadSpecsRecursively finds all .hcl manifest files under specsPath and
// registers every node_spec they declare.
func (r *Registry) LoadSpecsRecursively(ctx context.Context, specsPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading node specs from manifest path...", "path", specsPath)

	filePaths, err := fsutil.FindFilesByExtension(specsPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk manifest directory", "path", specsPath, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", specsPath)
		return nil
	}

	parser := hclparse.NewParser()
	loaded := 0

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse manifest file %s: %w", filePath, diags)
		}

		var file manifestFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
			return fmt.Errorf("failed to decode manifest file %s: %w", filePath, diags)
		}

		for _, ms := range file.Specs {
			s, err := ms.toNodeSpec()
			if err != nil {
				return fmt.Errorf("manifest file %s: %w", filePath, err)
			}
			// User manifests report errors instead of panicking the way
			// builtin registration does.
			if err := s.Validate(); err != nil {
				return fmt.Errorf("manifest file %s: %w", filePath, err)
			}
			if _, exists := r.Lookup(s.Type); exists {
				return fmt.Errorf("manifest file %s: node_spec %q already registered", filePath, s.Type)
			}
			r.Register(s)
			loaded++
		}
		logger.Debug("Successfully loaded node specs from manifest file", "file", filePath)
	}

	logger.Info("Registry loaded manifests successfully.", "node_specs_loaded", loaded)
	return nil
}

// toNodeSpec converts a decoded manifest block into a validated NodeSpec.
func (ms *manifestSpec) toNodeSpec() (*spec.NodeSpec, error) {
	s := &spec.NodeSpec{
		Type:          ms.Type,
		Category:      spec.Category(ms.Category),
		SelfSupplying: ms.SelfSupplying,
		Sink:          ms.Sink,
		LiveSource:    ms.LiveSource,
	}

	for _, p := range ms.Inputs {
		vt := spec.ValueType(p.Type)
		if !vt.Valid() {
			return nil, fmt.Errorf("node_spec %q: input %q: unknown type %q", ms.Type, p.Name, p.Type)
		}
		s.Inputs = append(s.Inputs, spec.PortDef{Name: p.Name, Type: vt})
	}
	for _, p := range ms.Outputs {
		vt := spec.ValueType(p.Type)
		if !vt.Valid() {
			return nil, fmt.Errorf("node_spec %q: output %q: unknown type %q", ms.Type, p.Name, p.Type)
		}
		s.Outputs = append(s.Outputs, spec.PortDef{Name: p.Name, Type: vt})
	}

	for _, p := range ms.Params {
		vt := spec.ValueType(p.Type)
		if !vt.Valid() {
			return nil, fmt.Errorf("node_spec %q: param %q: unknown type %q", ms.Type, p.Name, p.Type)
		}
		def := vt.ZeroValue()
		if p.Default != cty.NilVal {
			converted, err := convert.Convert(p.Default, vt.CtyType())
			if err != nil {
				return nil, fmt.Errorf("node_spec %q: param %q: default not convertible to %s: %w", ms.Type, p.Name, vt, err)
			}
			def = converted
		}
		s.Params = append(s.Params, spec.ParamDef{
			Name:    p.Name,
			Type:    vt,
			Default: def,
			Min:     p.Min,
			Max:     p.Max,
			Mode:    spec.InputMode(p.Mode),
		})
	}

	main, err := spec.ParseTemplate(ms.Main)
	if err != nil {
		return nil, fmt.Errorf("node_spec %q: main template: %w", ms.Type, err)
	}
	s.Main = main

	if ms.Subroutine != "" {
		sub, err := spec.ParseTemplate(ms.Subroutine)
		if err != nil {
			return nil, fmt.Errorf("node_spec %q: subroutine template: %w", ms.Type, err)
		}
		s.Subroutine = sub
	}

	return s, nil
}
