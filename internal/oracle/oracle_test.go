package oracle_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcox74/bf386/internal/ast"
	"github.com/lcox74/bf386/internal/oracle"
	"github.com/lcox74/bf386/internal/token"
)

// run compiles src through the real lex/parse/optimise pipeline and
// walks the result with the oracle, returning everything written to
// stdout.
func run(t *testing.T, src string, stdin string) string {
	t.Helper()

	prog, err := ast.Parse(token.Tokenize([]byte(src)))
	require.NoError(t, err)
	prog = ast.Optimise(prog)

	var out bytes.Buffer
	m := oracle.New(oracle.WithInput(strings.NewReader(stdin)), oracle.WithOutput(&out))
	require.NoError(t, m.Run(prog))
	return out.String()
}

func TestEmptyProgramProducesNoOutput(t *testing.T) {
	assert.Equal(t, "", run(t, "", ""))
}

func TestIncrementAndOutput(t *testing.T) {
	assert.Equal(t, string([]byte{0x03}), run(t, "+++.", ""))
}

func TestEchoInput(t *testing.T) {
	assert.Equal(t, "x", run(t, ",.", "x"))
}

func TestCopyAddIdiom(t *testing.T) {
	assert.Equal(t, string([]byte{0x05}), run(t, "++>+++<[->+<]>.", ""))
}

func TestHelloWorldLetterA(t *testing.T) {
	assert.Equal(t, "A", run(t, "++++++++[>++++++++<-]>+.", ""))
}

func TestClearLoopIdiomOptimisationPreservesBehavior(t *testing.T) {
	// [-] must still behave as a cell clear once rewritten to ast.Zero.
	assert.Equal(t, string([]byte{0x00}), run(t, "+++++[-].", ""))
}

func TestLoopRunsExactIterationCount(t *testing.T) {
	// Classic move-while-decrementing: cell 0 holds 3, moves it fully
	// into cell 1 over three loop iterations.
	assert.Equal(t, string([]byte{0x03}), run(t, "+++[>+<-]>.", ""))
}
