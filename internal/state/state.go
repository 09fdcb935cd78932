// Package state holds the abstract program state an interpreter run
// threads through a statement: a mapping from variable name to abstract
// value. Per the domain's own convention, the bottom state (unreachable
// code) is represented by a nil map rather than a separate flag, so an
// unreachable branch carries no variable bindings at all.
package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LucaBru/abstract-interpreter/internal/domain"
)

// State maps variable names to their current abstract value. A State
// whose map is nil represents Bottom: unreachable program point.
type State struct {
	values map[string]domain.Value
	family domain.Family
}

// New returns an empty (non-bottom, zero-variable) state. Use Bind to
// populate it; a State that never gets a binding for a name treats that
// name as Top when looked up, per Lookup's contract.
func New(family domain.Family) State {
	return State{values: map[string]domain.Value{}, family: family}
}

// Bottom returns the unreachable state: a nil map, which IsBottom tells
// apart from the empty, non-nil map of a reachable State from New.
func Bottom(family domain.Family) State {
	return State{values: nil, family: family}
}

// IsBottom reports whether s is the unreachable state built by Bottom.
func (s State) IsBottom() bool { return s.values == nil }

// Bind returns a copy of s with name mapped to v.
func (s State) Bind(name string, v domain.Value) State {
	out := State{values: make(map[string]domain.Value, len(s.values)+1), family: s.family}
	for k, val := range s.values {
		out.values[k] = val
	}
	out.values[name] = v
	return out
}

// Lookup returns the abstract value bound to name, or Top if name has
// never been bound (an unassigned variable is unconstrained).
func (s State) Lookup(name string) domain.Value {
	if v, ok := s.values[name]; ok {
		return v
	}
	return s.family.Top()
}

// Names returns every variable name ever bound in s, bottom excluded
// since it carries none.
func (s State) Names() []string {
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Join computes the pointwise least upper bound of s and other. Binding
// a variable present in one state but not the other against Top is
// correct: an unbound variable is already treated as Top by Lookup.
func (s State) Join(other State) State {
	if s.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return s
	}
	out := New(s.family)
	for _, name := range unionNames(s, other) {
		out = out.Bind(name, s.Lookup(name).Join(other.Lookup(name)))
	}
	return out
}

// Meet computes the pointwise greatest lower bound of s and other.
func (s State) Meet(other State) State {
	if s.IsBottom() || other.IsBottom() {
		return Bottom(s.family)
	}
	out := New(s.family)
	for _, name := range unionNames(s, other) {
		v := s.Lookup(name).Meet(other.Lookup(name))
		if v.IsBottom() {
			return Bottom(s.family)
		}
		out = out.Bind(name, v)
	}
	return out
}

// Widen computes the pointwise widening of s (the prior iterate) against
// other (the latest iterate), using thresholds as the widening-with-
// thresholds jump set (domain.Value.Widen) for every variable.
func (s State) Widen(other State, thresholds []domain.ExtInt) State {
	if s.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return s
	}
	out := New(s.family)
	for _, name := range unionNames(s, other) {
		out = out.Bind(name, s.Lookup(name).Widen(other.Lookup(name), thresholds))
	}
	return out
}

// Narrow computes the pointwise narrowing of s (the widened iterate)
// against other (the next fixpoint iterate).
func (s State) Narrow(other State) State {
	if s.IsBottom() || other.IsBottom() {
		return Bottom(s.family)
	}
	out := New(s.family)
	for _, name := range unionNames(s, other) {
		out = out.Bind(name, s.Lookup(name).Narrow(other.Lookup(name)))
	}
	return out
}

// Equal reports whether s and other bind every variable to an equal
// abstract value.
func (s State) Equal(other State) bool {
	if s.IsBottom() || other.IsBottom() {
		return s.IsBottom() == other.IsBottom()
	}
	for _, name := range unionNames(s, other) {
		if !s.Lookup(name).Equal(other.Lookup(name)) {
			return false
		}
	}
	return true
}

func unionNames(a, b State) []string {
	seen := map[string]struct{}{}
	for k := range a.values {
		seen[k] = struct{}{}
	}
	for k := range b.values {
		seen[k] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String renders s as "{ x -> [0, 10], y -> 3 }", variables in
// alphabetical order so output is deterministic across runs.
func (s State) String() string {
	if s.IsBottom() {
		return "⊥"
	}
	names := s.Names()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s -> %s", name, s.values[name])
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
