// Package container holds small generic collection helpers shared across the
// generator packages: ordered string sets (used for FIRST/FOLLOW sets and
// grammar symbol sets) and a generic key set (used for sets of state ids
// during NFA/DFA construction).
package container

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a set of strings with deterministic, alphabetized iteration
// via Elements and String.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded from the given
// slices.
func NewStringSet(of ...[]string) StringSet {
	s := StringSet{}
	for _, sl := range of {
		for _, v := range sl {
			s.Add(v)
		}
	}
	return s
}

// Add adds value to the set. No-op if already present.
func (s StringSet) Add(value string) {
	s[value] = true
}

// AddAll adds every element of o to s.
func (s StringSet) AddAll(o StringSet) {
	for k := range o {
		s[k] = true
	}
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	return s[value]
}

// Remove removes value from the set. No-op if not present.
func (s StringSet) Remove(value string) {
	delete(s, value)
}

// Len returns the number of elements in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Copy returns a shallow duplicate of s.
func (s StringSet) Copy() StringSet {
	newS := NewStringSet()
	newS.AddAll(s)
	return newS
}

// Elements returns the alphabetized contents of the set.
func (s StringSet) Elements() []string {
	els := make([]string, 0, len(s))
	for k := range s {
		els = append(els, k)
	}
	sort.Strings(els)
	return els
}

// String renders the set alphabetized, e.g. "{a, b, c}".
func (s StringSet) String() string {
	var sb strings.Builder
	els := s.Elements()

	sb.WriteRune('{')
	for i, e := range els {
		sb.WriteString(e)
		if i+1 < len(els) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// Equal reports whether s and o contain exactly the same elements.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o[k] {
			return false
		}
	}
	return true
}

// KeySet is a set of comparable keys, used for sets of NFA/DFA state ids
// during automaton construction where the element type is int.
type KeySet[E comparable] map[E]bool

// NewKeySet returns an empty KeySet, optionally seeded from the given slices.
func NewKeySet[E comparable](of ...[]E) KeySet[E] {
	s := KeySet[E]{}
	for _, sl := range of {
		for _, v := range sl {
			s[v] = true
		}
	}
	return s
}

// Add adds value to the set.
func (s KeySet[E]) Add(value E) {
	s[value] = true
}

// AddAll adds every element of o to s.
func (s KeySet[E]) AddAll(o KeySet[E]) {
	for k := range o {
		s[k] = true
	}
}

// Has returns whether value is in the set.
func (s KeySet[E]) Has(value E) bool {
	return s[value]
}

// Len returns the number of elements in the set.
func (s KeySet[E]) Len() int {
	return len(s)
}

// Elements returns the set's contents in unspecified order.
func (s KeySet[E]) Elements() []E {
	els := make([]E, 0, len(s))
	for k := range s {
		els = append(els, k)
	}
	return els
}

// SortedKey renders a canonical string key for the set, suitable for use as a
// map key when deduplicating sets-of-sets (e.g. subset construction's
// NFA-state-set -> DFA-state lookup). Two KeySets with the same elements
// always produce the same SortedKey regardless of insertion order.
func SortedKey[E interface {
	comparable
	fmt.Stringer
}](s KeySet[E]) string {
	els := s.Elements()
	strs := make([]string, len(els))
	for i, e := range els {
		strs[i] = e.String()
	}
	sort.Strings(strs)
	return strings.Join(strs, ",")
}

// SortedIntKey is SortedKey specialized for int-keyed sets, since plain ints
// do not implement fmt.Stringer and boxing them would be wasteful given how
// often subset construction calls this.
func SortedIntKey(s KeySet[int]) string {
	els := s.Elements()
	sort.Ints(els)

	var sb strings.Builder
	for i, e := range els {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", e)
	}
	return sb.String()
}
