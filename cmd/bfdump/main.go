// Command bfdump is a developer introspection tool for the compiler
// pipeline: it dumps tokens, the parsed (optionally optimized) AST, or the generated
// machine code as text. It is not part of the bfc product CLI
// contract and never writes an ELF executable.
package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bfdump <command> [options] <file>

commands:
  tokens <file>       dump the lexer's token stream
  ast [-O] <file>     dump the parsed (optionally optimized) AST
  asm [-O] <file>     dump the generated i386 machine code as assembly`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "tokens":
		cmdTokens(args)
	case "ast":
		cmdAST(args)
	case "asm":
		cmdAsm(args)
	default:
		usage()
	}
}

func readSource(file string) []byte {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return src
}
