// Package oracle is a tree-walking evaluator over an ast.Program. It is
// not a product back end -- the bfc CLI never reaches it -- it exists
// solely as a ground truth for _test.go files that check "what should
// this Brainfuck program output" without needing an IA-32 kernel to run
// the real compiled executable.
package oracle

import (
	"fmt"
	"io"
	"os"

	"github.com/lcox74/bf386/internal/ast"
	"github.com/lcox74/bf386/internal/token"
)

// EOFBehavior controls what a read does to the current cell once the
// input reader is exhausted.
type EOFBehavior int

const (
	EOFZero     EOFBehavior = iota // set cell to 0 (default)
	EOFMinusOne                    // set cell to 255
	EOFNoChange                    // leave the cell unchanged
)

// RuntimeError reports a failure while walking the tree: an
// out-of-bounds data pointer or an I/O error from the configured
// reader/writer.
type RuntimeError struct {
	Msg string
	Pos token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Machine walks an ast.Program and reproduces its observable
// behavior: bytes written, bytes consumed, and the final exit status
// (always 0, since Run only returns on completion or error).
type Machine struct {
	memSize     int
	in          io.Reader
	out         io.Writer
	eofBehavior EOFBehavior

	memory []byte
	dp     int
	ioBuf  [1]byte
}

// Option configures a Machine.
type Option func(*Machine)

// WithMemorySize sets the tape size (default 30000, the traditional
// Brainfuck tape length; the real compiled program's tape is a 1 MiB
// stack region, but no test scenario in this repository comes close
// to either bound).
func WithMemorySize(size int) Option {
	return func(m *Machine) { m.memSize = size }
}

// WithInput sets the reader `,` consumes from (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(m *Machine) { m.in = r }
}

// WithOutput sets the writer `.` writes to (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(m *Machine) { m.out = w }
}

// WithEOFBehavior sets how `,` behaves once input is exhausted.
func WithEOFBehavior(b EOFBehavior) Option {
	return func(m *Machine) { m.eofBehavior = b }
}

// New builds a Machine ready to Run a program.
func New(opts ...Option) *Machine {
	m := &Machine{
		memSize:     30000,
		in:          os.Stdin,
		out:         os.Stdout,
		eofBehavior: EOFZero,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run walks prog's body in order, starting with a zeroed tape and the
// data pointer at index 0. It returns the first RuntimeError
// encountered, or nil on a complete, successful walk.
func (m *Machine) Run(prog *ast.Program) error {
	m.memory = make([]byte, m.memSize)
	m.dp = 0
	return m.runBody(prog.Body)
}

func (m *Machine) runBody(body []ast.Node) error {
	for _, n := range body {
		if err := m.runNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) runNode(n ast.Node) error {
	switch v := n.(type) {
	case ast.IncPtr:
		return m.shift(int(v.Count), v.Pos)
	case ast.DecPtr:
		return m.shift(-int(v.Count), v.Pos)
	case ast.IncByte:
		m.memory[m.dp] += v.Count
		return nil
	case ast.DecByte:
		m.memory[m.dp] -= v.Count
		return nil
	case ast.Zero:
		m.memory[m.dp] = 0
		return nil
	case ast.Output:
		return m.doOutput(v.Pos)
	case ast.Input:
		return m.doInput(v.Pos)
	case ast.Loop:
		for m.memory[m.dp] != 0 {
			if err := m.runBody(v.Body); err != nil {
				return err
			}
		}
		return nil
	default:
		panic("oracle: unknown AST node variant")
	}
}

func (m *Machine) shift(delta int, pos token.Position) error {
	dp := m.dp + delta
	if dp < 0 || dp >= m.memSize {
		return &RuntimeError{
			Msg: fmt.Sprintf("data pointer out of bounds: %d (valid range 0-%d)", dp, m.memSize-1),
			Pos: pos,
		}
	}
	m.dp = dp
	return nil
}

func (m *Machine) doOutput(pos token.Position) error {
	m.ioBuf[0] = m.memory[m.dp]
	if _, err := m.out.Write(m.ioBuf[:]); err != nil {
		return &RuntimeError{Msg: fmt.Sprintf("output error: %v", err), Pos: pos}
	}
	return nil
}

func (m *Machine) doInput(pos token.Position) error {
	n, err := m.in.Read(m.ioBuf[:])
	if err == io.EOF || n == 0 {
		switch m.eofBehavior {
		case EOFZero:
			m.memory[m.dp] = 0
		case EOFMinusOne:
			m.memory[m.dp] = 255
		case EOFNoChange:
			// leave unchanged
		}
		return nil
	}
	if err != nil {
		return &RuntimeError{Msg: fmt.Sprintf("input error: %v", err), Pos: pos}
	}
	m.memory[m.dp] = m.ioBuf[0]
	return nil
}
