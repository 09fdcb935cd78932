package ast

import (
	"fmt"

	"github.com/LucaBru/abstract-interpreter/grammar"
)

// Build lowers a parsed grammar.Program into the semantic tree: negations
// are pushed down to Cond leaves (De Morgan), conjunction/disjunction
// becomes explicit And/Or nodes, and every condition is rewritten to the
// normal form (e1 - e2) op 0 that the refinement engine consumes.
func Build(p *grammar.Program) *Program {
	out := &Program{Pos: fromGrammar(p.Pos), Body: buildBlock(p.Body)}
	if p.Assume != nil {
		for _, b := range p.Assume.Bindings {
			out.Assume = append(out.Assume, buildAssumeBinding(b))
		}
	}
	return out
}

func buildAssumeBinding(b *grammar.AssumeBinding) AssumeBinding {
	ab := AssumeBinding{Pos: fromGrammar(b.Pos), Name: b.Name}
	switch {
	case b.Value.Scalar != nil:
		lit := buildExtIntLit(b.Value.Scalar)
		ab.Low, ab.High = lit, lit
	case b.Value.Interval != nil:
		ab.Low = buildExtIntLit(b.Value.Interval.Low)
		ab.High = buildExtIntLit(b.Value.Interval.High)
	default:
		panic("assume binding has neither scalar nor interval value")
	}
	return ab
}

func buildExtIntLit(lit *grammar.ExtIntLiteral) ExtIntLit {
	out := ExtIntLit{Inf: lit.Inf, Neg: lit.Neg}
	if lit.Number != nil {
		var n int64
		fmt.Sscanf(*lit.Number, "%d", &n)
		out.Number = n
	}
	return out
}

func buildBlock(b *grammar.Block) *Block {
	out := &Block{Pos: fromGrammar(b.Pos)}
	for _, s := range b.Statements {
		out.Statements = append(out.Statements, buildStatement(s))
	}
	return out
}

func buildStatement(s *grammar.Statement) Stmt {
	switch {
	case s.Skip != nil:
		return &SkipStmt{Pos: fromGrammar(s.Skip.Pos)}
	case s.Assign != nil:
		return &AssignStmt{
			Pos:   fromGrammar(s.Assign.Pos),
			Name:  s.Assign.Name,
			Value: buildArithExpr(s.Assign.Value),
		}
	case s.If != nil:
		return &IfStmt{
			Pos:   fromGrammar(s.If.Pos),
			Guard: lowerBoolExpr(s.If.Guard, false),
			Then:  buildBlock(s.If.Then.Block),
			Else:  buildBlock(s.If.Else.Block),
		}
	case s.While != nil:
		return &WhileStmt{
			Pos:   fromGrammar(s.While.Pos),
			Guard: lowerBoolExpr(s.While.Guard, false),
			Body:  buildBlock(s.While.Body.Block),
		}
	default:
		panic("statement has no alternative set")
	}
}

func buildArithExpr(e *grammar.ArithExpr) AExpr {
	result := buildTerm(e.Left)
	if e.Neg {
		result = &BinOp{Pos: fromGrammar(e.Pos), Op: Sub, Left: &IntLit{Pos: fromGrammar(e.Pos), Value: 0}, Right: result}
	}
	for _, op := range e.Ops {
		arithOp := Add
		if op.Op == "-" {
			arithOp = Sub
		}
		result = &BinOp{Pos: fromGrammar(e.Pos), Op: arithOp, Left: result, Right: buildTerm(op.Right)}
	}
	return result
}

func buildTerm(t *grammar.Term) AExpr {
	result := buildFactor(t.Left)
	for _, op := range t.Ops {
		arithOp := Mul
		if op.Op == "/" {
			arithOp = Div
		}
		result = &BinOp{Pos: fromGrammar(t.Pos), Op: arithOp, Left: result, Right: buildFactor(op.Right)}
	}
	return result
}

func buildFactor(f *grammar.Factor) AExpr {
	switch {
	case f.Paren != nil:
		return buildArithExpr(f.Paren)
	case f.Number != nil:
		var n int64
		fmt.Sscanf(*f.Number, "%d", &n)
		return &IntLit{Pos: fromGrammar(f.Pos), Value: n}
	case f.Ident != nil:
		return &Var{Pos: fromGrammar(f.Pos), Name: *f.Ident}
	default:
		panic("factor has no alternative set")
	}
}

// lowerBoolExpr lowers a conjunction of boolean terms, applying De Morgan
// when negate is true: not(a & b & c) becomes (not a) | (not b) | (not c).
func lowerBoolExpr(e *grammar.BoolExpr, negate bool) BExpr {
	terms := make([]BExpr, 0, 1+len(e.Ops))
	terms = append(terms, lowerBoolTerm(e.Left, negate))
	for _, op := range e.Ops {
		terms = append(terms, lowerBoolTerm(op.Right, negate))
	}
	pos := fromGrammar(e.Pos)
	if negate {
		return foldOr(pos, terms)
	}
	return foldAnd(pos, terms)
}

func foldAnd(pos Position, terms []BExpr) BExpr {
	result := terms[0]
	for _, t := range terms[1:] {
		result = &And{Pos: pos, Left: result, Right: t}
	}
	return result
}

func foldOr(pos Position, terms []BExpr) BExpr {
	result := terms[0]
	for _, t := range terms[1:] {
		result = &Or{Pos: pos, Left: result, Right: t}
	}
	return result
}

func lowerBoolTerm(t *grammar.BoolTerm, negate bool) BExpr {
	return lowerBoolAtom(t.Atom, negate != t.Not)
}

func lowerBoolAtom(a *grammar.BoolAtom, negate bool) BExpr {
	pos := fromGrammar(a.Pos)
	switch {
	case a.True:
		return &BoolLit{Pos: pos, Value: !negate}
	case a.False:
		return &BoolLit{Pos: pos, Value: negate}
	case a.Paren != nil:
		return lowerBoolExpr(a.Paren, negate)
	case a.Cond != nil:
		return lowerCond(a.Cond, negate)
	default:
		panic("boolean atom has no alternative set")
	}
}

func lowerCond(c *grammar.Condition, negate bool) BExpr {
	op := EQ
	if c.Op == "<" {
		op = LT
	}
	if negate {
		op = op.Negate()
	}
	return &Cond{
		Pos:   fromGrammar(c.Pos),
		Left:  buildArithExpr(c.Left),
		Right: buildArithExpr(c.Right),
		Op:    op,
	}
}
