// Command bfc compiles a Brainfuck source file into a native i386
// Linux ELF executable. See the package-level docs in internal/ast,
// internal/codegen/x86, and internal/elf for how each stage works;
// this file only wires the pipeline together and enforces the CLI's
// exact error contract.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lcox74/bf386/internal/ast"
	"github.com/lcox74/bf386/internal/codegen/x86"
	"github.com/lcox74/bf386/internal/elf"
	"github.com/lcox74/bf386/internal/token"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: bfc <program.bf>")
		os.Exit(1)
	}

	inPath := os.Args[1]
	outPath := outputPath(inPath)

	src, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "err: could not read input file")
		os.Exit(1)
	}

	if verbose() {
		fmt.Fprintf(os.Stderr, "bfc: read %d bytes from %s\n", len(src), inPath)
	}

	prog, err := compile(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "err: %s\n", err)
		os.Exit(1)
	}

	code, err := x86.Generate(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "err: %s\n", err)
		os.Exit(1)
	}

	if verbose() {
		fmt.Fprintf(os.Stderr, "bfc: emitted %d bytes of machine code\n", len(code))
	}

	if err := elf.WriteExecutable(outPath, code); err != nil {
		fmt.Fprintf(os.Stderr, "err: %s\n", err)
		os.Exit(1)
	}
}

// compile runs the lex/parse/optimise stages and returns the finished
// tree, or the first *ast.Error encountered.
func compile(src []byte) (*ast.Program, error) {
	toks := token.Tokenize(src)

	prog, err := ast.Parse(toks)
	if err != nil {
		return nil, err
	}

	return ast.Optimise(prog), nil
}

// outputPath strips the input path's file extension, per §6: hello.bf
// -> hello.
func outputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext)
}

// verbose reports whether BFC_VERBOSE is set to anything nonempty.
// This is an opt-in developer trace, not part of the CLI's stable
// output contract: default runs are silent except for the single-line
// error/usage messages above.
func verbose() bool {
	return os.Getenv("BFC_VERBOSE") != ""
}
