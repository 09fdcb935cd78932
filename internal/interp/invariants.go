package interp

import (
	"sort"

	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/state"
)

// Invariants records the abstract state the interpreter computed at
// selected program points: every while-loop head (its loop invariant)
// plus the program's final post-state, keyed under ast.EndOfProgram so
// callers never have to guess a real position for it.
type Invariants struct {
	byPosition map[ast.Position]state.State
}

func newInvariants() *Invariants {
	return &Invariants{byPosition: map[ast.Position]state.State{}}
}

func (inv *Invariants) record(pos ast.Position, s state.State) {
	inv.byPosition[pos] = s
}

// At returns the recorded state at pos, if any was recorded there.
func (inv *Invariants) At(pos ast.Position) (state.State, bool) {
	s, ok := inv.byPosition[pos]
	return s, ok
}

// Final returns the program's post-state, recorded under
// ast.EndOfProgram.
func (inv *Invariants) Final() state.State {
	return inv.byPosition[ast.EndOfProgram]
}

// Positions returns every position with a recorded invariant, in source
// order (ast.EndOfProgram sorts last).
func (inv *Invariants) Positions() []ast.Position {
	positions := make([]ast.Position, 0, len(inv.byPosition))
	for p := range inv.byPosition {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Before(positions[j]) })
	return positions
}
