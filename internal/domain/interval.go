package domain

import "fmt"

// Bounds configures the interval domain's finite window. Values whose
// magnitude exceeds the window saturate to an infinity rather than being
// tracked exactly, which keeps the domain's lattice height finite.
//
// When M > N the domain collapses to the degenerate "constant" domain:
// every non-singleton interval is Top, so the only inhabitants are
// Bottom, Top, and exact singletons. This is used to model a process
// that wants no interval tracking at all, just constant propagation.
type Bounds struct {
	M, N ExtInt
}

// Collapsed reports whether M > N, the constant-domain configuration.
func (b Bounds) Collapsed() bool { return b.N.Less(b.M) }

// Bounded reports whether the domain configured by b has finite lattice
// height: either it is collapsed to the constant domain, or both M and N
// are finite so every chain of intervals strictly narrowing within
// [M, N] is finite.
func (b Bounds) Bounded() bool {
	return b.Collapsed() || (b.M.IsFinite() && b.N.IsFinite())
}

// NeedsWidening reports whether evaluating a loop under b requires
// widening/narrowing to guarantee termination. An unbounded domain (at
// least one of M, N infinite, and not collapsed) has infinite ascending
// chains, so Kleene iteration alone is not guaranteed to terminate.
func (b Bounds) NeedsWidening() bool { return !b.Bounded() }

// Interval is an abstract value: either Bottom (the empty set) or a
// closed range [lo, hi] over the extended integers, already normalized
// against a Bounds window.
type Interval struct {
	bounds Bounds
	bottom bool
	lo, hi ExtInt
}

// family adapts a Bounds into the domain.Family used by the evaluator
// and refinement engine to construct fresh values.
type family struct{ bounds Bounds }

// NewFamily returns the Family of interval values configured by bounds.
func NewFamily(bounds Bounds) Family { return family{bounds: bounds} }

func (f family) Top() Value                { return Top(f.bounds) }
func (f family) Bottom() Value             { return BottomInterval(f.bounds) }
func (f family) Range(lo, hi ExtInt) Value { return RangeOf(lo, hi, f.bounds) }
func (f family) Constant(n ExtInt) Value   { return RangeOf(n, n, f.bounds) }

// Top returns [-inf, +inf] under bounds.
func Top(bounds Bounds) Interval {
	return Interval{bounds: bounds, lo: NegInf, hi: PosInf}
}

// BottomInterval returns the empty interval under bounds.
func BottomInterval(bounds Bounds) Interval {
	return Interval{bounds: bounds, bottom: true}
}

// RangeOf builds the normalized interval [lo, hi] under bounds. If
// lo > hi the result is Bottom.
func RangeOf(lo, hi ExtInt, bounds Bounds) Interval {
	return normalize(lo, hi, bounds)
}

func normalize(lo, hi ExtInt, bounds Bounds) Interval {
	if hi.Less(lo) {
		return BottomInterval(bounds)
	}
	if bounds.Collapsed() {
		if lo.Equal(hi) {
			return Interval{bounds: bounds, lo: lo, hi: hi}
		}
		return Top(bounds)
	}
	return Interval{bounds: bounds, lo: saturateLower(lo, bounds), hi: saturateUpper(hi, bounds)}
}

func saturateLower(x ExtInt, bounds Bounds) ExtInt {
	if x.IsFinite() && x.Less(bounds.M) {
		return NegInf
	}
	return x
}

func saturateUpper(x ExtInt, bounds Bounds) ExtInt {
	if x.IsFinite() && bounds.N.Less(x) {
		return PosInf
	}
	return x
}

func (i Interval) IsBottom() bool { return i.bottom }
func (i Interval) IsTop() bool    { return !i.bottom && i.lo.IsNegInf() && i.hi.IsPosInf() }

// Bounds returns the window i was normalized against.
func (i Interval) Bounds() Bounds { return i.bounds }

// Endpoints returns i's lower and upper bound. Callers must not call
// this on a Bottom interval.
func (i Interval) Endpoints() (lo, hi ExtInt) {
	if i.bottom {
		panic("domain: Endpoints() called on Bottom")
	}
	return i.lo, i.hi
}

func (i Interval) String() string {
	if i.bottom {
		return "⊥"
	}
	if i.lo.Equal(i.hi) {
		return i.lo.String()
	}
	return fmt.Sprintf("[%s, %s]", i.lo, i.hi)
}

func asInterval(v Value) Interval {
	iv, ok := v.(Interval)
	if !ok {
		panic(fmt.Sprintf("domain: expected Interval, got %T", v))
	}
	return iv
}

func (i Interval) Join(other Value) Value {
	o := asInterval(other)
	if i.bottom {
		return o
	}
	if o.bottom {
		return i
	}
	return normalize(Min(i.lo, o.lo), Max(i.hi, o.hi), i.bounds)
}

func (i Interval) Meet(other Value) Value {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return BottomInterval(i.bounds)
	}
	return normalize(Max(i.lo, o.lo), Min(i.hi, o.hi), i.bounds)
}

func (i Interval) LessOrEqual(other Value) bool {
	o := asInterval(other)
	if i.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	return o.lo.LessEq(i.lo) && i.hi.LessEq(o.hi)
}

func (i Interval) Equal(other Value) bool {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return i.bottom == o.bottom
	}
	return i.lo.Equal(o.lo) && i.hi.Equal(o.hi)
}

func (i Interval) negate() Interval {
	if i.bottom {
		return i
	}
	return normalize(i.hi.Neg(), i.lo.Neg(), i.bounds)
}

func (i Interval) Add(other Value) Value {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return BottomInterval(i.bounds)
	}
	return normalize(i.lo.Add(o.lo), i.hi.Add(o.hi), i.bounds)
}

func (i Interval) Sub(other Value) Value {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return BottomInterval(i.bounds)
	}
	return normalize(i.lo.Sub(o.hi), i.hi.Sub(o.lo), i.bounds)
}

// safeMul treats 0 * inf as 0, the conventional extension used by
// interval arithmetic (a zero-width factor collapses the product to
// zero regardless of how unbounded the other factor is), rather than
// the panic ExtInt.Mul raises for that form in isolation.
func safeMul(a, b ExtInt) ExtInt {
	if (a.IsFinite() && a.Int() == 0) || (b.IsFinite() && b.Int() == 0) {
		return Finite(0)
	}
	return a.Mul(b)
}

func (i Interval) Mul(other Value) Value {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return BottomInterval(i.bounds)
	}
	corners := [4]ExtInt{
		safeMul(i.lo, o.lo), safeMul(i.lo, o.hi),
		safeMul(i.hi, o.lo), safeMul(i.hi, o.hi),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = Min(lo, c)
		hi = Max(hi, c)
	}
	return normalize(lo, hi, i.bounds)
}

// divTotal divides a by b, extending division to the two corner cases
// ExtInt.Div itself treats as undefined: a zero divisor (returns the
// signed infinity matching a's sign; 0/0 conventionally yields 0), and
// an infinite divisor (returns 0, regardless of a — including when a is
// also infinite, matching the reference implementation's own division
// table). This lets Div's corner formula evaluate a divisor range that
// contains 0 or is unbounded, such as Top / Top, without ever reaching
// ExtInt.Div's inf/inf panic.
func divTotal(a, b ExtInt) ExtInt {
	if b.IsInf() {
		return Finite(0)
	}
	if b.Int() == 0 {
		switch signOf(a) {
		case 1:
			return PosInf
		case -1:
			return NegInf
		default:
			return Finite(0)
		}
	}
	return a.Div(b)
}

func (i Interval) Div(other Value) Value {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return BottomInterval(i.bounds)
	}
	if o.lo.Equal(Finite(0)) && o.hi.Equal(Finite(0)) {
		return BottomInterval(i.bounds)
	}
	zero := Finite(0)
	switch {
	case zero.LessEq(o.lo):
		corners := [4]ExtInt{
			divTotal(i.lo, o.lo), divTotal(i.lo, o.hi),
			divTotal(i.hi, o.lo), divTotal(i.hi, o.hi),
		}
		lo, hi := corners[0], corners[0]
		for _, c := range corners[1:] {
			lo = Min(lo, c)
			hi = Max(hi, c)
		}
		return normalize(lo, hi, i.bounds)
	case o.hi.LessEq(zero):
		negated := o.negate()
		return asInterval(i.Div(negated)).negate()
	default:
		neg := normalize(o.lo, zero, i.bounds)
		pos := normalize(zero, o.hi, i.bounds)
		return i.Div(neg).(Interval).Join(i.Div(pos))
	}
}

func (i Interval) HasWidening() bool { return !i.bounds.Bounded() }

// Widen applies widening with thresholds (spec §4.2): a bound that grew
// unstable does not jump straight to infinity but to the nearest
// threshold that still encloses the new value — the greatest threshold
// at or below the new lower bound, or the least threshold at or above
// the new upper bound — falling back to the matching infinity when no
// threshold encloses it (the degenerate "no thresholds" case).
func (i Interval) Widen(other Value, thresholds []ExtInt) Value {
	o := asInterval(other)
	if i.bottom {
		return o
	}
	if o.bottom {
		return i
	}
	lo := i.lo
	if o.lo.Less(i.lo) {
		lo = greatestThresholdAtMost(o.lo, thresholds)
	}
	hi := i.hi
	if i.hi.Less(o.hi) {
		hi = leastThresholdAtLeast(o.hi, thresholds)
	}
	return normalize(lo, hi, i.bounds)
}

// greatestThresholdAtMost returns the greatest threshold <= x, or NegInf
// if no threshold qualifies.
func greatestThresholdAtMost(x ExtInt, thresholds []ExtInt) ExtInt {
	best := NegInf
	for _, t := range thresholds {
		if t.LessEq(x) && best.Less(t) {
			best = t
		}
	}
	return best
}

// leastThresholdAtLeast returns the least threshold >= x, or PosInf if
// no threshold qualifies.
func leastThresholdAtLeast(x ExtInt, thresholds []ExtInt) ExtInt {
	best := PosInf
	for _, t := range thresholds {
		if x.LessEq(t) && t.Less(best) {
			best = t
		}
	}
	return best
}

func (i Interval) Narrow(other Value) Value {
	o := asInterval(other)
	if i.bottom || o.bottom {
		return BottomInterval(i.bounds)
	}
	lo := i.lo
	if i.lo.IsNegInf() {
		lo = o.lo
	}
	hi := i.hi
	if i.hi.IsPosInf() {
		hi = o.hi
	}
	return normalize(lo, hi, i.bounds)
}
