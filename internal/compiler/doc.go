// Package compiler turns a graph document into a single GLSL fragment
// shader plus a uniform binding table.
//
// Compilation is a fixed pipeline with one file per stage:
//
//	validator -> sorter -> typecheck -> names -> codegen -> output -> assembler
//
// Each stage either accumulates diagnostics (structural and type errors are
// collected exhaustively before aborting) or produces an artifact consumed
// by the next stage. Compile is pure: it reads the document and the spec
// registry, holds all intermediate state in a call-scoped context, and
// performs no I/O, so concurrent compiles of different documents need no
// coordination.
package compiler
