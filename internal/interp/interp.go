// Package interp evaluates a program's statements over an abstract
// domain, producing the invariant the program's variables satisfy at
// every loop head and at the end of the program.
package interp

import (
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/config"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
	"github.com/LucaBru/abstract-interpreter/internal/preanalysis"
	"github.com/LucaBru/abstract-interpreter/internal/refine"
	"github.com/LucaBru/abstract-interpreter/internal/state"
)

// Interpreter structurally evaluates an ast.Program over the interval
// domain configured by a config.Config. Bounds and narrowing-step count
// are carried as fields on the value the caller constructs, never as
// package globals, so nothing stops two Interpreters in the same
// process from analyzing different programs under different windows.
type Interpreter struct {
	family         domain.Family
	bounds         domain.Bounds
	narrowingSteps int
	thresholds     []domain.ExtInt
}

// New builds an Interpreter from cfg.
func New(cfg config.Config) *Interpreter {
	return &Interpreter{
		family:         domain.NewFamily(cfg.Bounds),
		bounds:         cfg.Bounds,
		narrowingSteps: cfg.NarrowingSteps,
	}
}

// Run evaluates prog from its assume bindings (every other mentioned
// variable starts at Top) and returns the final state together with the
// invariants recorded at each while loop and at the program's end.
func (in *Interpreter) Run(prog *ast.Program) (state.State, *Invariants) {
	in.thresholds = preanalysis.ExtractThresholds(prog)

	entry := state.New(in.family)
	assumed := preanalysis.ExtractAssume(prog, in.family)
	for _, name := range preanalysis.ExtractVars(prog) {
		if v, ok := assumed[name]; ok {
			entry = entry.Bind(name, v)
		} else {
			entry = entry.Bind(name, in.family.Top())
		}
	}

	inv := newInvariants()
	final := in.execBlock(prog.Body, entry, inv)
	inv.record(ast.EndOfProgram, final)
	return final, inv
}

func (in *Interpreter) execBlock(b *ast.Block, s state.State, inv *Invariants) state.State {
	for _, stmt := range b.Statements {
		if s.IsBottom() {
			return s
		}
		s = in.execStmt(stmt, s, inv)
	}
	return s
}

func (in *Interpreter) execStmt(stmt ast.Stmt, s state.State, inv *Invariants) state.State {
	switch st := stmt.(type) {
	case *ast.SkipStmt:
		return s
	case *ast.AssignStmt:
		return s.Bind(st.Name, in.evalArith(st.Value, s))
	case *ast.IfStmt:
		return in.execIf(st, s, inv)
	case *ast.WhileStmt:
		return in.execWhile(st, s, inv)
	default:
		panic("interp: unknown statement node")
	}
}

func (in *Interpreter) execIf(st *ast.IfStmt, s state.State, inv *Invariants) state.State {
	thenState := in.execBlock(st.Then, refine.Refine(st.Guard, s, in.family), inv)
	elseState := in.execBlock(st.Else, refine.Refine(ast.Negate(st.Guard), s, in.family), inv)
	return thenState.Join(elseState)
}

// execWhile computes the loop's invariant by Kleene iteration, applying
// widening-with-thresholds (in.thresholds, the syntactic constants
// collected from the whole program by preanalysis.ExtractThresholds)
// once the domain's configured window makes that iteration unbounded,
// then sharpens the result with a fixed number of narrowing steps. The
// invariant recorded for the loop is the state reaching the loop head
// (before the guard is tested); the state returned to the caller is
// what holds once the guard has become false.
func (in *Interpreter) execWhile(st *ast.WhileStmt, s state.State, inv *Invariants) state.State {
	prior := s
	needsWidening := in.bounds.NeedsWidening()

	for {
		guardTrue := refine.Refine(st.Guard, prior, in.family)
		bodyResult := in.execBlock(st.Body, guardTrue, inv)
		next := s.Join(bodyResult)

		var candidate state.State
		if needsWidening {
			candidate = prior.Widen(next, in.thresholds)
		} else {
			candidate = next
		}
		if candidate.Equal(prior) {
			prior = candidate
			break
		}
		prior = candidate
	}

	if needsWidening {
		for i := 0; i < in.narrowingSteps; i++ {
			guardTrue := refine.Refine(st.Guard, prior, in.family)
			bodyResult := in.execBlock(st.Body, guardTrue, inv)
			next := s.Join(bodyResult)
			narrowed := prior.Narrow(next)
			if narrowed.Equal(prior) {
				prior = narrowed
				break
			}
			prior = narrowed
		}
	}

	inv.record(st.Pos, prior)
	return refine.Refine(ast.Negate(st.Guard), prior, in.family)
}

func (in *Interpreter) evalArith(e ast.AExpr, s state.State) domain.Value {
	switch n := e.(type) {
	case *ast.IntLit:
		return in.family.Constant(domain.Finite(n.Value))
	case *ast.Var:
		return s.Lookup(n.Name)
	case *ast.BinOp:
		left := in.evalArith(n.Left, s)
		right := in.evalArith(n.Right, s)
		switch n.Op {
		case ast.Add:
			return left.Add(right)
		case ast.Sub:
			return left.Sub(right)
		case ast.Mul:
			return left.Mul(right)
		case ast.Div:
			return left.Div(right)
		default:
			panic("interp: unknown arithmetic operator")
		}
	default:
		panic("interp: unknown arithmetic expression node")
	}
}
