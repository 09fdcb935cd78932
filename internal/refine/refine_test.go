package refine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaBru/abstract-interpreter/grammar"
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
	"github.com/LucaBru/abstract-interpreter/internal/refine"
	"github.com/LucaBru/abstract-interpreter/internal/state"
)

var bounds = domain.Bounds{M: domain.Finite(-1000), N: domain.Finite(1000)}
var family = domain.NewFamily(bounds)

func cond(t *testing.T, src string) ast.BExpr {
	t.Helper()
	p, err := grammar.ParseSource("t.toy", "if "+src+" then { skip } else { skip }")
	require.NoError(t, err)
	return ast.Build(p).Body.Statements[0].(*ast.IfStmt).Guard
}

func rng(lo, hi int64) domain.Value {
	return family.Range(domain.Finite(lo), domain.Finite(hi))
}

func TestRefineLessThanNarrowsUpperBound(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 100))
	refined := refine.Refine(cond(t, "x < 10"), s, family)
	assert.True(t, refined.Lookup("x").Equal(rng(0, 9)))
}

func TestRefineGreaterOrEqualViaNegation(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 100))
	refined := refine.Refine(cond(t, "!(x < 10)"), s, family)
	assert.True(t, refined.Lookup("x").Equal(rng(10, 100)))
}

func TestRefineInfeasibleConditionIsBottom(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 5))
	refined := refine.Refine(cond(t, "x < 0"), s, family)
	assert.True(t, refined.IsBottom())
}

func TestRefineEqualityPinsVariable(t *testing.T) {
	s := state.New(family).Bind("x", rng(-50, 50))
	refined := refine.Refine(cond(t, "x = 7"), s, family)
	assert.True(t, refined.Lookup("x").Equal(rng(7, 7)))
}

func TestRefineAndNarrowsBothConjuncts(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 100))
	refined := refine.Refine(cond(t, "x < 50 & !(x < 10)"), s, family)
	assert.True(t, refined.Lookup("x").Equal(rng(10, 49)))
}

func TestRefineOrJoinsBothDisjuncts(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 100))
	refined := refine.Refine(cond(t, "!(x < 50 & !(x < 10))"), s, family)
	// De Morgan: !(x<50 & x>=10) == (x>=50 | x<10)
	lo, hi := refined.Lookup("x").(domain.Interval).Endpoints()
	assert.Equal(t, domain.Finite(0), lo)
	assert.Equal(t, domain.Finite(100), hi)
}

func TestRefineSharedVariableBothSides(t *testing.T) {
	// x + x < 10 with x in [0, 100]: the interval domain can't express
	// the correlation between the two occurrences of x, so the sharpest
	// sound bound the shared leaf cell converges to is x in [0, 9], not
	// the precise x <= 4 a relational domain could derive.
	s := state.New(family).Bind("x", rng(0, 100))
	refined := refine.Refine(cond(t, "x + x < 10"), s, family)
	assert.True(t, refined.Lookup("x").Equal(rng(0, 9)))
}

func TestRefineTrueLiteralIsIdentity(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 10))
	refined := refine.Refine(cond(t, "true"), s, family)
	assert.True(t, refined.Equal(s))
}

func TestRefineFalseLiteralIsBottom(t *testing.T) {
	s := state.New(family).Bind("x", rng(0, 10))
	refined := refine.Refine(cond(t, "false"), s, family)
	assert.True(t, refined.IsBottom())
}
