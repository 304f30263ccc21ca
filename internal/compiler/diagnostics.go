package compiler

import (
	"fmt"
)

// Diagnostics is the per-compile report handed back to callers. A non-empty
// Errors list means the program text is empty and must not be run; warnings
// are advisory and always accompany best-effort output.
type Diagnostics struct {
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	ExecutionOrder  []string `json:"executionOrder"`
	FinalOutputNode string   `json:"finalOutputNodeId,omitempty"`
}

// UniformMeta describes one entry of the uniform binding table the runtime
// rebinds every frame.
type UniformMeta struct {
	Name string `json:"name"`
	// Node and Param identify the owning node parameter; both are empty
	// for the fixed globals.
	Node  string `json:"node,omitempty"`
	Param string `json:"param,omitempty"`
	// Kind is the GLSL declaration keyword (float, int, bool, vec2..vec4).
	Kind string `json:"kind"`
	// Default holds the initial value, one element per component. Bools
	// are 0 or 1.
	Default []float64 `json:"default"`
	// Live marks uniforms fed by an external per-frame data source; the
	// runtime must refresh them whether or not the program samples them.
	Live bool `json:"live,omitempty"`
}

// Result is the complete output of one compile call.
type Result struct {
	ProgramText string       `json:"programText"`
	Uniforms    []UniformMeta `json:"uniforms"`
	Diagnostics Diagnostics  `json:"diagnostics"`
}

// OK reports whether the result carries a runnable program.
func (r *Result) OK() bool { return len(r.Diagnostics.Errors) == 0 }

// diagSink accumulates diagnostics across a compile call. Structural and
// type errors are exhaustive within their stage; the sink never stops at
// the first violation.
type diagSink struct {
	errors   []string
	warnings []string
}

func (d *diagSink) structuralf(format string, args ...any) {
	d.errors = append(d.errors, "structural: "+fmt.Sprintf(format, args...))
}

func (d *diagSink) typef(format string, args ...any) {
	d.errors = append(d.errors, "type: "+fmt.Sprintf(format, args...))
}

func (d *diagSink) cyclef(format string, args ...any) {
	d.errors = append(d.errors, "cyclic dependency: "+fmt.Sprintf(format, args...))
}

func (d *diagSink) warnf(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *diagSink) hasErrors() bool { return len(d.errors) > 0 }
