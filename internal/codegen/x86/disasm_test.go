package x86

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcox74/bf386/internal/ast"
)

func TestDisassembleKnownOpcodes(t *testing.T) {
	code := append(decESP(), incByteMem()...)
	text := Disassemble(code)
	assert.Contains(t, text, "dec")
	assert.Contains(t, text, "%esp")
	assert.Contains(t, text, "incb")
}

func TestDisassembleCoversEveryGeneratedByte(t *testing.T) {
	code, err := Generate(&ast.Program{Body: []ast.Node{
		ast.IncByte{Count: 3},
		ast.Loop{Body: []ast.Node{ast.DecByte{Count: 1}, ast.IncPtr{Count: 1}}},
		ast.Output{},
		ast.Input{},
	}})
	if err != nil {
		t.Fatal(err)
	}

	text := Disassemble(code)
	// A fully-known instruction stream should never fall back to the
	// raw .byte escape hatch.
	assert.False(t, strings.Contains(text, ".byte"), "unexpected undecoded byte in:\n%s", text)
}
