package compiler

import (
	"context"

	"github.com/vk/shadegrid/internal/ctxlog"
	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
)

// Compiler compiles graph documents against an immutable node-spec
// registry. A Compiler holds no per-compile state: the same instance may
// serve concurrent Compile calls (a live preview compile racing an export
// compile) without coordination.
type Compiler struct {
	reg *registry.Registry
}

// New creates a Compiler over the given registry. The registry must be
// fully populated; it is treated as read-only from here on.
func New(reg *registry.Registry) *Compiler {
	if reg == nil {
		panic("compiler: nil registry")
	}
	return &Compiler{reg: reg}
}

// Compile turns a graph document into a fragment shader program and its
// uniform binding table. The document is treated as a read-only snapshot;
// every intermediate artifact is call-scoped and discarded on return.
//
// User mistakes never surface as Go errors: they accumulate in the result's
// diagnostics, and a non-empty error list means the (empty) program must
// not be run.
func (c *Compiler) Compile(ctx context.Context, doc *graph.Document) *Result {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compile: starting.", "graph", doc.ID, "nodes", len(doc.Nodes), "connections", len(doc.Connections))

	diags := &diagSink{}

	validateStructure(doc, c.reg, diags)
	if diags.hasErrors() {
		logger.Debug("Compile: structural validation failed.", "errors", len(diags.errors))
		return failure(diags)
	}

	// The empty graph is a deliberate degenerate, not an error: a trivial
	// constant-black program with exactly one warning, skipping every
	// later stage.
	if len(doc.Nodes) == 0 {
		diags.warnf("graph %q contains no nodes; rendering constant black", doc.ID)
		g := &genContext{doc: doc, reg: c.reg, names: allocateNames(doc, c.reg, nil)}
		table := g.uniformTable()
		return &Result{
			ProgramText: assembleProgram(table, nil, nil, nil, blackExpr),
			Uniforms:    table,
			Diagnostics: Diagnostics{
				Errors:   diags.errors,
				Warnings: diags.warnings,
			},
		}
	}

	order := sortDependencies(doc, diags)
	if diags.hasErrors() {
		logger.Debug("Compile: dependency sort failed.")
		return failure(diags)
	}

	checkTypes(doc, c.reg, diags)
	if diags.hasErrors() {
		logger.Debug("Compile: type check failed.", "errors", len(diags.errors))
		return failure(diags)
	}

	inbound, paramFeeds := buildFeeds(doc)
	g := &genContext{
		doc:        doc,
		reg:        c.reg,
		names:      allocateNames(doc, c.reg, paramFeeds),
		order:      order,
		inbound:    inbound,
		paramFeeds: paramFeeds,
	}

	preamble, blocks, err := g.generateMain(diags)
	if err != nil {
		// Render failures are registry/catalog bugs, not graph mistakes,
		// but a diagnostic beats a panic during a live set.
		diags.structuralf("internal: %v", err)
		return failure(diags)
	}

	subroutines, err := g.collectSubroutines()
	if err != nil {
		diags.structuralf("internal: %v", err)
		return failure(diags)
	}

	finalNode, finalExpr := g.resolveFinalOutput(diags)
	uniforms := g.uniformTable()

	result := &Result{
		ProgramText: assembleProgram(uniforms, subroutines, preamble, blocks, finalExpr),
		Uniforms:    uniforms,
		Diagnostics: Diagnostics{
			Errors:          diags.errors,
			Warnings:        diags.warnings,
			ExecutionOrder:  order,
			FinalOutputNode: finalNode,
		},
	}

	logger.Debug("Compile: finished.",
		"graph", doc.ID,
		"uniforms", len(result.Uniforms),
		"warnings", len(result.Diagnostics.Warnings),
		"final_output", finalNode,
	)
	return result
}

// failure produces the aborted-compile result: empty program, no uniform
// table, full diagnostics.
func failure(diags *diagSink) *Result {
	return &Result{
		Diagnostics: Diagnostics{
			Errors:   diags.errors,
			Warnings: diags.warnings,
		},
	}
}
