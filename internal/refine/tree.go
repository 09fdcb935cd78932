// Package refine implements guard refinement: narrowing the variables
// bound in a state so that it only describes executions where a given
// boolean guard holds (or, for its negation, where it fails).
package refine

import (
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/domain"
)

// nodeKind distinguishes the three shapes an arithmetic-expression arena
// node can take.
type nodeKind int

const (
	nodeConst nodeKind = iota
	nodeLeaf
	nodeBinOp
)

type node struct {
	kind        nodeKind
	op          domain.Operator
	left, right int // indices into arena.nodes, valid for nodeBinOp
}

// arena holds one atomic condition's arithmetic expression tree(s),
// flattened into a slice so that every occurrence of a given variable
// name shares a single leaf node (and therefore a single slot in
// values). Narrowing that slot during backward propagation is
// immediately visible to every occurrence of the variable, which is
// what lets a condition like "x + x < 10" refine x using both
// occurrences rather than just one.
type arena struct {
	nodes  []node
	values []domain.Value
	cells  map[string]int // variable name -> leaf node index
}

func newArena() *arena {
	return &arena{cells: map[string]int{}}
}

func (a *arena) addConst(v domain.Value) int {
	a.nodes = append(a.nodes, node{kind: nodeConst})
	a.values = append(a.values, v)
	return len(a.nodes) - 1
}

// leaf returns the (possibly pre-existing) node index for variable name,
// looking it up in s if this is the first time name is seen in this
// arena.
func (a *arena) leaf(name string, s lookupFn) int {
	if idx, ok := a.cells[name]; ok {
		return idx
	}
	a.nodes = append(a.nodes, node{kind: nodeLeaf})
	a.values = append(a.values, s(name))
	idx := len(a.nodes) - 1
	a.cells[name] = idx
	return idx
}

func (a *arena) addBinOp(op domain.Operator, left, right int) int {
	a.nodes = append(a.nodes, node{kind: nodeBinOp, op: op, left: left, right: right})
	a.values = append(a.values, nil)
	return len(a.nodes) - 1
}

type lookupFn func(name string) domain.Value

// build lowers an ast.AExpr into arena nodes, returning the root index.
func (a *arena) build(e ast.AExpr, lookup lookupFn) int {
	switch n := e.(type) {
	case *ast.IntLit:
		return a.addConst(domain.Finite(n.Value))
	case *ast.Var:
		return a.leaf(n.Name, lookup)
	case *ast.BinOp:
		left := a.build(n.Left, lookup)
		right := a.build(n.Right, lookup)
		return a.addBinOp(arithOp(n.Op), left, right)
	default:
		panic("refine: unknown arithmetic expression node")
	}
}

func arithOp(op ast.ArithOp) domain.Operator {
	switch op {
	case ast.Add:
		return domain.OpAdd
	case ast.Sub:
		return domain.OpSub
	case ast.Mul:
		return domain.OpMul
	case ast.Div:
		return domain.OpDiv
	default:
		panic("refine: unknown arithmetic operator")
	}
}

// forward recomputes every non-leaf node's value bottom-up from the
// current leaf/const values. Nodes are appended in post-order during
// build, so a single left-to-right pass always visits operands before
// the operator node that combines them.
func (a *arena) forward() {
	for i, n := range a.nodes {
		if n.kind == nodeBinOp {
			a.values[i] = apply(n.op, a.values[n.left], a.values[n.right])
		}
	}
}

func apply(op domain.Operator, left, right domain.Value) domain.Value {
	switch op {
	case domain.OpAdd:
		return left.Add(right)
	case domain.OpSub:
		return left.Sub(right)
	case domain.OpMul:
		return left.Mul(right)
	case domain.OpDiv:
		return left.Div(right)
	default:
		panic("refine: unknown arithmetic operator")
	}
}

// backward narrows every node's operands given its own (already
// narrowed) value, walking the arena in reverse: since build appends
// children before parents, the reverse order visits every parent before
// its children, which is the top-down order backward propagation needs.
func (a *arena) backward() {
	for i := len(a.nodes) - 1; i >= 0; i-- {
		n := a.nodes[i]
		if n.kind != nodeBinOp {
			continue
		}
		left, right, result := a.values[n.left], a.values[n.right], a.values[i]
		a.values[n.left] = domain.BackwardLeft(n.op, left, right, result)
		a.values[n.right] = domain.BackwardRight(n.op, left, right, result)
	}
}

// anyLeafBottom reports whether backward propagation emptied any
// variable's value, which makes the whole condition unsatisfiable.
func (a *arena) anyLeafBottom() bool {
	for idx := range a.cells {
		if a.values[idx].IsBottom() {
			return true
		}
	}
	return false
}

// leafSnapshot captures the current value of every shared variable cell,
// used to detect when local propagation has reached a fixpoint.
func (a *arena) leafSnapshot() map[string]domain.Value {
	snap := make(map[string]domain.Value, len(a.cells))
	for name, idx := range a.cells {
		snap[name] = a.values[idx]
	}
	return snap
}

func (a *arena) leafSnapshotEqual(snap map[string]domain.Value) bool {
	for name, idx := range a.cells {
		if !a.values[idx].Equal(snap[name]) {
			return false
		}
	}
	return true
}
