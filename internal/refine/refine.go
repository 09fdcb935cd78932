package refine

import (
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
	"github.com/LucaBru/abstract-interpreter/internal/state"
)

// maxLocalIterations bounds a single condition's forward/backward
// propagation loop. Each round only narrows (Meet), so the loop is
// monotonically decreasing in a lattice no deeper than the domain's
// configured window; this cap is a safety net against a pathological
// number of shared-variable rounds, not something well-formed guards are
// expected to hit.
const maxLocalIterations = 64

// maxAndIterations bounds the state-level fixpoint for an And guard:
// refining by the left conjunct can further narrow variables the right
// conjunct depends on, and vice versa, so the two are applied
// alternately until the state stops changing.
const maxAndIterations = 16

// Refine narrows s to only the variable bindings consistent with guard
// holding, soundly over-approximating when the domain cannot represent
// the guard exactly (e.g. "!=" against an interval).
func Refine(guard ast.BExpr, s state.State, family domain.Family) state.State {
	if s.IsBottom() {
		return s
	}
	switch g := guard.(type) {
	case *ast.BoolLit:
		if g.Value {
			return s
		}
		return state.Bottom(family)
	case *ast.Cond:
		return refineCond(g, s, family)
	case *ast.And:
		return refineAnd(g, s, family)
	case *ast.Or:
		left := Refine(g.Left, s, family)
		right := Refine(g.Right, s, family)
		return left.Join(right)
	default:
		panic("refine: unknown boolean expression node")
	}
}

func refineAnd(g *ast.And, s state.State, family domain.Family) state.State {
	prev := s
	for i := 0; i < maxAndIterations; i++ {
		next := Refine(g.Right, Refine(g.Left, prev, family), family)
		if next.IsBottom() || next.Equal(prev) {
			return next
		}
		prev = next
	}
	return prev
}

// targetFor returns the abstract value the normalized expression
// "Left - Right" must lie in for the condition's operator to hold.
// Comparisons are over integers, so strict "<" becomes "<= -1" and its
// negation "≥" becomes ">= 0"; "!=" cannot be represented exactly by an
// interval missing a single point, so it refines nothing (Top).
func targetFor(op ast.CondOp, family domain.Family) domain.Value {
	switch op {
	case ast.EQ:
		return family.Constant(domain.Finite(0))
	case ast.NEQ:
		return family.Top()
	case ast.LT:
		return family.Range(domain.NegInf, domain.Finite(-1))
	case ast.GEQ:
		return family.Range(domain.Finite(0), domain.PosInf)
	default:
		panic("refine: unknown condition operator")
	}
}

func refineCond(c *ast.Cond, s state.State, family domain.Family) state.State {
	a := newArena()
	lookup := s.Lookup
	leftIdx := a.build(c.Left, lookup)
	rightIdx := a.build(c.Right, lookup)
	rootIdx := a.addBinOp(domain.OpSub, leftIdx, rightIdx)
	target := targetFor(c.Op, family)

	for i := 0; i < maxLocalIterations; i++ {
		before := a.leafSnapshot()

		a.forward()
		a.values[rootIdx] = a.values[rootIdx].Meet(target)
		a.backward()

		if a.anyLeafBottom() {
			return state.Bottom(family)
		}
		if a.leafSnapshotEqual(before) {
			break
		}
	}

	out := s
	for name, idx := range a.cells {
		out = out.Bind(name, a.values[idx])
	}
	return out
}
