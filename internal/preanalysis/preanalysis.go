// Package preanalysis extracts static facts from a parsed program before
// the interpreter runs: the set of variables it mentions (so the initial
// state can bind all of them, not just the ones in an assume line) and
// the integer literals that appear in it (candidate widening thresholds,
// sharpening the otherwise blunt jump straight to infinity).
package preanalysis

import (
	"sort"

	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
)

// ExtractVars returns every variable name assigned or read anywhere in
// prog, sorted for deterministic iteration order.
func ExtractVars(prog *ast.Program) []string {
	seen := map[string]struct{}{}
	for _, b := range prog.Assume {
		seen[b.Name] = struct{}{}
	}
	walkBlock(prog.Body, func(name string) { seen[name] = struct{}{} })

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func walkBlock(b *ast.Block, record func(string)) {
	for _, s := range b.Statements {
		walkStmt(s, record)
	}
}

func walkStmt(s ast.Stmt, record func(string)) {
	switch st := s.(type) {
	case *ast.SkipStmt:
	case *ast.AssignStmt:
		record(st.Name)
		walkAExpr(st.Value, record)
	case *ast.IfStmt:
		walkBExpr(st.Guard, record)
		walkBlock(st.Then, record)
		walkBlock(st.Else, record)
	case *ast.WhileStmt:
		walkBExpr(st.Guard, record)
		walkBlock(st.Body, record)
	default:
		panic("preanalysis: unknown statement node")
	}
}

func walkAExpr(e ast.AExpr, record func(string)) {
	switch n := e.(type) {
	case *ast.IntLit:
	case *ast.Var:
		record(n.Name)
	case *ast.BinOp:
		walkAExpr(n.Left, record)
		walkAExpr(n.Right, record)
	default:
		panic("preanalysis: unknown arithmetic expression node")
	}
}

func walkBExpr(e ast.BExpr, record func(string)) {
	switch n := e.(type) {
	case *ast.BoolLit:
	case *ast.Cond:
		walkAExpr(n.Left, record)
		walkAExpr(n.Right, record)
	case *ast.And:
		walkBExpr(n.Left, record)
		walkBExpr(n.Right, record)
	case *ast.Or:
		walkBExpr(n.Left, record)
		walkBExpr(n.Right, record)
	default:
		panic("preanalysis: unknown boolean expression node")
	}
}

// ExtractThresholds collects every integer literal that appears in prog
// (assume bindings and arithmetic expressions alike) as an ExtInt, for
// use as a widening-with-thresholds jump set.
func ExtractThresholds(prog *ast.Program) []domain.ExtInt {
	seen := map[int64]struct{}{}
	for _, b := range prog.Assume {
		if !b.Low.Inf {
			seen[signedValue(b.Low)] = struct{}{}
		}
		if !b.High.Inf {
			seen[signedValue(b.High)] = struct{}{}
		}
	}
	walkBlockThresholds(prog.Body, seen)

	out := make([]domain.ExtInt, 0, len(seen))
	for n := range seen {
		out = append(out, domain.Finite(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func signedValue(lit ast.ExtIntLit) int64 {
	if lit.Neg {
		return -lit.Number
	}
	return lit.Number
}

func walkBlockThresholds(b *ast.Block, seen map[int64]struct{}) {
	for _, s := range b.Statements {
		walkStmtThresholds(s, seen)
	}
}

func walkStmtThresholds(s ast.Stmt, seen map[int64]struct{}) {
	switch st := s.(type) {
	case *ast.SkipStmt:
	case *ast.AssignStmt:
		walkAExprThresholds(st.Value, seen)
	case *ast.IfStmt:
		walkBExprThresholds(st.Guard, seen)
		walkBlockThresholds(st.Then, seen)
		walkBlockThresholds(st.Else, seen)
	case *ast.WhileStmt:
		walkBExprThresholds(st.Guard, seen)
		walkBlockThresholds(st.Body, seen)
	}
}

func walkAExprThresholds(e ast.AExpr, seen map[int64]struct{}) {
	switch n := e.(type) {
	case *ast.IntLit:
		seen[n.Value] = struct{}{}
	case *ast.Var:
	case *ast.BinOp:
		// Build lowers a negated literal "-n" to "0 - n"; record -n too.
		if zero, ok := n.Left.(*ast.IntLit); ok && n.Op == ast.Sub && zero.Value == 0 {
			if lit, ok := n.Right.(*ast.IntLit); ok {
				seen[-lit.Value] = struct{}{}
			}
		}
		walkAExprThresholds(n.Left, seen)
		walkAExprThresholds(n.Right, seen)
	}
}

func walkBExprThresholds(e ast.BExpr, seen map[int64]struct{}) {
	switch n := e.(type) {
	case *ast.Cond:
		walkAExprThresholds(n.Left, seen)
		walkAExprThresholds(n.Right, seen)
	case *ast.And:
		walkBExprThresholds(n.Left, seen)
		walkBExprThresholds(n.Right, seen)
	case *ast.Or:
		walkBExprThresholds(n.Left, seen)
		walkBExprThresholds(n.Right, seen)
	}
}

// ExtractAssume converts a program's assume bindings into initial
// variable ranges under bounds, ready to seed an interpreter's entry
// state.
func ExtractAssume(prog *ast.Program, family domain.Family) map[string]domain.Value {
	out := make(map[string]domain.Value, len(prog.Assume))
	for _, b := range prog.Assume {
		lo := extInt(b.Low)
		hi := extInt(b.High)
		out[b.Name] = family.Range(lo, hi)
	}
	return out
}

func extInt(lit ast.ExtIntLit) domain.ExtInt {
	switch {
	case lit.Inf && lit.Neg:
		return domain.NegInf
	case lit.Inf:
		return domain.PosInf
	case lit.Neg:
		return domain.Finite(-lit.Number)
	default:
		return domain.Finite(lit.Number)
	}
}
