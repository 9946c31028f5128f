package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a map[string]bool with set-style methods added. It is the
// concrete type used throughout internal/blocks for label sets: the movable
// set, the relatable set, and every resolver candidate set.
type StringSet map[string]bool

// NewStringSet creates a StringSet, optionally seeded from one or more
// existing string-keyed maps.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// StringSetOf builds a StringSet from a slice of strings. Duplicate entries
// collapse, as with any set.
func StringSetOf(sl []string) StringSet {
	if sl == nil {
		return nil
	}

	s := StringSet{}
	for _, v := range sl {
		s.Add(v)
	}
	return s
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) Empty() bool {
	return s.Len() == 0
}

func (s StringSet) Copy() StringSet {
	return NewStringSet(s)
}

func (s StringSet) AddAll(o StringSet) {
	for k := range o {
		s.Add(k)
	}
}

// Union returns a new StringSet containing every element of s or o.
func (s StringSet) Union(o StringSet) StringSet {
	newSet := NewStringSet()
	newSet.AddAll(s)
	newSet.AddAll(o)
	return newSet
}

// Intersection returns a new StringSet containing only elements in both s
// and o. Used by the relative-clause resolver to narrow a candidate set by
// successive neighborhood checks.
func (s StringSet) Intersection(o StringSet) StringSet {
	newSet := NewStringSet()
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Difference returns a new StringSet containing elements of s not in o.
func (s StringSet) Difference(o StringSet) StringSet {
	newSet := NewStringSet(s)
	for k := range o {
		newSet.Remove(k)
	}
	return newSet
}

// DisjointWith returns whether s and o share no elements.
func (s StringSet) DisjointWith(o StringSet) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

// Any returns whether any element of s satisfies predicate.
func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Elements returns the members of s. No particular order is guaranteed.
func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}

	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

// Sorted returns the members of s sorted alphabetically. Used anywhere output
// must be deterministic, such as ambiguity prompt generation.
func (s StringSet) Sorted() []string {
	sl := s.Elements()
	sort.Strings(sl)
	return sl
}

// Equal returns whether s and o have the same members.
func (s StringSet) Equal(o StringSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// String shows the contents of the set in alphabetized order so that output
// is reproducible across runs.
func (s StringSet) String() string {
	convs := s.Sorted()

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(fmt.Sprintf("%v", convs[i]))
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}
