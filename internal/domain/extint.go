// Package domain implements the numeric abstract domain: extended
// integers, the interval lattice built over them, and the domain-generic
// backward arithmetic operator the refinement engine drives.
package domain

import "fmt"

// sign is the finite kind of an ExtInt.
type sign int

const (
	negInf sign = iota
	finite
	posInf
)

// ExtInt is an element of Z ∪ {-inf, +inf}, totally ordered with -inf at
// the bottom and +inf at the top. Arithmetic follows the usual extended
// conventions; the handful of genuinely undefined forms (+inf + -inf,
// +inf - +inf, 0 * inf, inf / inf) panic rather than silently returning a
// bogus finite value, since they can never arise from a well-formed
// interval whose bounds are already in normal form.
type ExtInt struct {
	kind  sign
	value int64
}

// NegInf and PosInf are the two infinite extended integers.
var (
	NegInf = ExtInt{kind: negInf}
	PosInf = ExtInt{kind: posInf}
)

// Finite builds the extended integer for a concrete value n.
func Finite(n int64) ExtInt { return ExtInt{kind: finite, value: n} }

func (x ExtInt) IsInf() bool    { return x.kind != finite }
func (x ExtInt) IsNegInf() bool { return x.kind == negInf }
func (x ExtInt) IsPosInf() bool { return x.kind == posInf }
func (x ExtInt) IsFinite() bool { return x.kind == finite }

// Int returns the finite value of x. It panics if x is infinite; callers
// must check IsFinite first.
func (x ExtInt) Int() int64 {
	if x.kind != finite {
		panic("domain: Int() called on an infinite ExtInt")
	}
	return x.value
}

func (x ExtInt) String() string {
	switch x.kind {
	case negInf:
		return "-inf"
	case posInf:
		return "+inf"
	default:
		return fmt.Sprintf("%d", x.value)
	}
}

// Neg negates x, swapping the two infinities and the sign of a finite
// value.
func (x ExtInt) Neg() ExtInt {
	switch x.kind {
	case negInf:
		return PosInf
	case posInf:
		return NegInf
	default:
		return Finite(-x.value)
	}
}

// Cmp returns -1, 0 or 1 as x is less than, equal to, or greater than y,
// under the total order -inf < ... < -1 < 0 < 1 < ... < +inf.
func (x ExtInt) Cmp(y ExtInt) int {
	if x.kind != y.kind {
		return int(x.kind) - int(y.kind)
	}
	switch x.kind {
	case finite:
		switch {
		case x.value < y.value:
			return -1
		case x.value > y.value:
			return 1
		default:
			return 0
		}
	default:
		return 0 // both -inf or both +inf
	}
}

func (x ExtInt) Equal(y ExtInt) bool { return x.Cmp(y) == 0 }
func (x ExtInt) Less(y ExtInt) bool  { return x.Cmp(y) < 0 }
func (x ExtInt) LessEq(y ExtInt) bool { return x.Cmp(y) <= 0 }

// Min and Max pick the lesser/greater of two extended integers.
func Min(x, y ExtInt) ExtInt {
	if x.Less(y) {
		return x
	}
	return y
}

func Max(x, y ExtInt) ExtInt {
	if x.Less(y) {
		return y
	}
	return x
}

// Add computes x + y. Panics on +inf + -inf (and its commute), the one
// undefined form for addition.
func (x ExtInt) Add(y ExtInt) ExtInt {
	if x.IsInf() && y.IsInf() {
		if x.kind != y.kind {
			panic("domain: +inf + -inf is undefined")
		}
		return x
	}
	if x.IsInf() {
		return x
	}
	if y.IsInf() {
		return y
	}
	return Finite(x.value + y.value)
}

// Sub computes x - y as x + (-y), so it inherits Add's undefined form
// (+inf - +inf, i.e. +inf + -(+inf)) rather than duplicating the case
// analysis.
func (x ExtInt) Sub(y ExtInt) ExtInt {
	return x.Add(y.Neg())
}

// Mul computes x * y. Panics on 0 * inf (and commutes), the one
// undefined form for multiplication.
func (x ExtInt) Mul(y ExtInt) ExtInt {
	if x.IsFinite() && x.value == 0 && y.IsInf() {
		panic("domain: 0 * inf is undefined")
	}
	if y.IsFinite() && y.value == 0 && x.IsInf() {
		panic("domain: inf * 0 is undefined")
	}
	if x.IsInf() || y.IsInf() {
		if signOf(x)*signOf(y) < 0 {
			return NegInf
		}
		return PosInf
	}
	return Finite(x.value * y.value)
}

// signOf returns the sign of x as -1, 0 or 1; infinities carry their own
// sign and a finite zero carries sign 0.
func signOf(x ExtInt) int {
	switch {
	case x.IsNegInf():
		return -1
	case x.IsPosInf():
		return 1
	case x.value < 0:
		return -1
	case x.value > 0:
		return 1
	default:
		return 0
	}
}

// Div computes x / y using total (rounding-toward-zero on the finite
// case) division extended to the infinities. Panics on inf / inf and on
// division by a finite zero; callers working over intervals are expected
// to special-case a zero divisor themselves (see Interval.Div) rather
// than relying on this panic as control flow.
func (x ExtInt) Div(y ExtInt) ExtInt {
	if x.IsInf() && y.IsInf() {
		panic("domain: inf / inf is undefined")
	}
	if y.IsFinite() && y.value == 0 {
		panic("domain: division by zero is undefined")
	}
	if y.IsInf() {
		return Finite(0)
	}
	if x.IsInf() {
		if signOf(y) < 0 {
			return x.Neg()
		}
		return x
	}
	return Finite(x.value / y.value)
}
