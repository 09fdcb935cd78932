package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucaBru/abstract-interpreter/internal/domain"
	"github.com/LucaBru/abstract-interpreter/internal/state"
)

var bounds = domain.Bounds{M: domain.Finite(-1000), N: domain.Finite(1000)}
var family = domain.NewFamily(bounds)

func constRange(lo, hi int64) domain.Value {
	return family.Range(domain.Finite(lo), domain.Finite(hi))
}

func TestEmptyStateIsBottom(t *testing.T) {
	assert.True(t, state.Bottom(family).IsBottom())
	assert.False(t, state.New(family).IsBottom())
}

func TestLookupUnboundIsTop(t *testing.T) {
	s := state.New(family)
	assert.True(t, s.Lookup("x").IsTop())
}

func TestBindThenLookup(t *testing.T) {
	s := state.New(family).Bind("x", constRange(1, 5))
	assert.True(t, s.Lookup("x").Equal(constRange(1, 5)))
}

func TestJoinUnionsVariablesAndValues(t *testing.T) {
	a := state.New(family).Bind("x", constRange(1, 5))
	b := state.New(family).Bind("x", constRange(10, 20)).Bind("y", constRange(0, 0))

	joined := a.Join(b)
	assert.True(t, joined.Lookup("x").Equal(constRange(1, 20)))
	// y is unbound in a, so Lookup(y) on a is Top; joined with [0,0] stays Top.
	assert.True(t, joined.Lookup("y").IsTop())
}

func TestJoinWithBottomIsIdentity(t *testing.T) {
	a := state.New(family).Bind("x", constRange(1, 5))
	joined := a.Join(state.Bottom(family))
	assert.True(t, joined.Equal(a))
}

func TestMeetNarrowsSharedVariables(t *testing.T) {
	a := state.New(family).Bind("x", constRange(1, 10))
	b := state.New(family).Bind("x", constRange(5, 20))

	met := a.Meet(b)
	assert.True(t, met.Lookup("x").Equal(constRange(5, 10)))
}

func TestMeetDisjointBecomesBottom(t *testing.T) {
	a := state.New(family).Bind("x", constRange(1, 2))
	b := state.New(family).Bind("x", constRange(10, 20))

	assert.True(t, a.Meet(b).IsBottom())
}

func TestEqualIgnoresNonBottomRepresentationDetails(t *testing.T) {
	a := state.New(family).Bind("x", constRange(1, 5))
	b := state.New(family).Bind("x", constRange(1, 5))
	assert.True(t, a.Equal(b))
}

func TestWidenThenNarrowRoundTrips(t *testing.T) {
	prior := state.New(family).Bind("x", constRange(0, 10))
	next := state.New(family).Bind("x", constRange(0, 20))

	widened := prior.Widen(next, nil)
	assert.True(t, widened.Lookup("x").IsTop() == false) // only hi jumps to +inf
	narrowed := widened.Narrow(next)
	assert.True(t, narrowed.Lookup("x").Equal(constRange(0, 20)))
}

func TestStringListsVariablesAlphabetically(t *testing.T) {
	s := state.New(family).Bind("z", constRange(1, 1)).Bind("a", constRange(2, 2))
	assert.Equal(t, "{ a -> 2, z -> 1 }", s.String())
}
