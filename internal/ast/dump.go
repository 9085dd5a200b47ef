package ast

import (
	"fmt"
	"strings"
)

// Dump returns an indented, human-readable rendering of prog for
// developer introspection (`bfdump ast`). It has no bearing on
// compilation; it exists only to make a tree reviewable without a
// debugger.
func Dump(prog *Program) string {
	var out strings.Builder
	dumpBody(&out, prog.Body, 0)
	return out.String()
}

func dumpBody(out *strings.Builder, body []Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range body {
		switch v := n.(type) {
		case IncPtr:
			fmt.Fprintf(out, "%sIncPtr(%d)\n", indent, v.Count)
		case DecPtr:
			fmt.Fprintf(out, "%sDecPtr(%d)\n", indent, v.Count)
		case IncByte:
			fmt.Fprintf(out, "%sIncByte(%d)\n", indent, v.Count)
		case DecByte:
			fmt.Fprintf(out, "%sDecByte(%d)\n", indent, v.Count)
		case Zero:
			fmt.Fprintf(out, "%sZero\n", indent)
		case Output:
			fmt.Fprintf(out, "%sOutput\n", indent)
		case Input:
			fmt.Fprintf(out, "%sInput\n", indent)
		case Loop:
			fmt.Fprintf(out, "%sLoop\n", indent)
			dumpBody(out, v.Body, depth+1)
		default:
			panic("ast: unknown AST node variant")
		}
	}
}
