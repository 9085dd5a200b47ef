package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lcox74/bf386/internal/ast"
	"github.com/lcox74/bf386/internal/token"
)

func cmdAST(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	optimise := fs.Bool("O", false, "run the optimizer before dumping")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bfdump ast [-O] <file>")
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

	if *optimise {
		prog = ast.Optimise(prog)
	}

	fmt.Print(ast.Dump(prog))
}
