package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lcox74/bf386/internal/ast"
	"github.com/lcox74/bf386/internal/codegen/x86"
	"github.com/lcox74/bf386/internal/token"
)

func cmdAsm(args []string) {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	optLevel := fs.Bool("O", true, "run the optimizer before generating code")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bfdump asm [-O] <file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
	}

	file := filepath.Clean(fs.Arg(0))
	src := readSource(file)

	toks := token.Tokenize(src)
	prog, err := ast.Parse(toks)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *optLevel {
		prog = ast.Optimise(prog)
	}

	code, err := x86.Generate(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(x86.Disassemble(code))
}
