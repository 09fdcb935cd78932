package ast

// Negate returns the De Morgan negation of e, expressed directly over
// the semantic tree. Build already uses this same pushdown when
// lowering a parsed "!", but the interpreter needs it again at runtime
// to compute an if/while's else/exit guard from its then/loop guard.
func Negate(e BExpr) BExpr {
	switch n := e.(type) {
	case *BoolLit:
		return &BoolLit{Pos: n.Pos, Value: !n.Value}
	case *Cond:
		return &Cond{Pos: n.Pos, Left: n.Left, Right: n.Right, Op: n.Op.Negate()}
	case *And:
		return &Or{Pos: n.Pos, Left: Negate(n.Left), Right: Negate(n.Right)}
	case *Or:
		return &And{Pos: n.Pos, Left: Negate(n.Left), Right: Negate(n.Right)}
	default:
		panic("ast: unknown boolean expression node")
	}
}
