package compiler

import (
	"fmt"
	"strings"
)

// assembleProgram stitches the compiled pieces into the final fragment
// shader source. The uniform table arrives already ordered (fixed globals
// first, then node uniforms sorted by name), so the emitted declarations
// are byte-stable across compiles of the same document.
func assembleProgram(uniforms []UniformMeta, subroutines, preamble, blocks []string, finalExpr string) string {
	var b strings.Builder

	b.WriteString("#version 300 es\n")
	b.WriteString("precision highp float;\n\n")

	for _, u := range uniforms {
		fmt.Fprintf(&b, "uniform %s %s;\n", u.Kind, u.Name)
	}
	b.WriteString("\nout vec4 fragColor;\n")

	for _, sub := range subroutines {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(sub, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\nvoid main() {\n")
	fmt.Fprintf(&b, "    vec2 %s = gl_FragCoord.xy / %s;\n", baseCoordName, resolutionUniform)
	for _, decl := range preamble {
		b.WriteString("    " + decl + "\n")
	}
	for _, block := range blocks {
		b.WriteString(block + "\n")
	}
	fmt.Fprintf(&b, "    fragColor = vec4(%s, 1.0);\n", finalExpr)
	b.WriteString("}\n")

	return b.String()
}
