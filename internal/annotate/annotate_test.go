package annotate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaBru/abstract-interpreter/grammar"
	"github.com/LucaBru/abstract-interpreter/internal/annotate"
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/config"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
	"github.com/LucaBru/abstract-interpreter/internal/interp"
)

func TestAnnotateInsertsLoopInvariantAboveWhile(t *testing.T) {
	src := "assume x := 0\nwhile x < 3 do {\n  x := x + 1\n}"
	p, err := grammar.ParseSource("t.toy", src)
	require.NoError(t, err)
	prog := ast.Build(p)

	in := interp.New(config.Config{Bounds: domain.Bounds{M: domain.Finite(-100), N: domain.Finite(100)}, NarrowingSteps: 3})
	_, invariants := in.Run(prog)

	annotated := annotate.Annotate(src, prog, invariants)
	lines := strings.Split(annotated, "\n")

	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "# {"))
	assert.Contains(t, annotated, "while x < 3 do {")
	assert.True(t, strings.HasSuffix(strings.TrimRight(annotated, "\n"), "}"))
}

func TestAnnotateAppendsFinalState(t *testing.T) {
	src := "x := 1; y := 2"
	p, err := grammar.ParseSource("t.toy", src)
	require.NoError(t, err)
	prog := ast.Build(p)

	in := interp.New(config.Config{Bounds: domain.Bounds{M: domain.Finite(-100), N: domain.Finite(100)}, NarrowingSteps: 3})
	_, invariants := in.Run(prog)

	annotated := annotate.Annotate(src, prog, invariants)
	assert.Contains(t, annotated, "x -> 1")
	assert.Contains(t, annotated, "y -> 2")
}
