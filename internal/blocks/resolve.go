package blocks

import (
	"github.com/dekarrin/shrdlite/internal/planerr"
	"github.com/dekarrin/shrdlite/internal/util"
)

// File resolve.go implements the Reference Resolver: turning a (possibly
// nested) Object parse node into the set of labels matching it in the
// current world, given a candidate universe to search within.

// ResolveObject resolves obj against universe, returning the matching
// labels. universe is typically every label currently in play plus the
// literal Floor (see AllLabels and the Floor constant).
func ResolveObject(w *World, obj Object, universe []string) ([]string, error) {
	switch obj.Kind {
	case ObjectLeaf:
		return resolveLeaf(w, obj, universe)
	case ObjectRelative:
		return resolveRelative(w, obj, universe)
	default:
		return nil, planerr.New(planerr.MsgParseFailure)
	}
}

// ResolveEntity resolves ent's Object against universe. The quantifier does
// not narrow the resolved set; it governs how the result is consumed
// upstream (Ambiguity Manager, Goal Compiler).
func ResolveEntity(w *World, ent Entity, universe []string) ([]string, error) {
	return ResolveObject(w, ent.Object, universe)
}

func resolveLeaf(w *World, obj Object, universe []string) ([]string, error) {
	var matches []string
	for _, label := range universe {
		if label == Floor {
			if obj.Form == FormFloor {
				matches = append(matches, label)
			}
			continue
		}

		def := w.Def(label)
		if obj.Size != SizeAny && def.Size != obj.Size {
			continue
		}
		if obj.Color != ColorAny && def.Color != obj.Color {
			continue
		}
		if obj.Form != FormAny && def.Form != obj.Form {
			continue
		}
		matches = append(matches, label)
	}

	if len(matches) == 0 {
		return nil, planerr.Newf("There is no %s.", Describe(obj.Size, obj.Color, obj.Form))
	}
	return matches, nil
}

func resolveRelative(w *World, obj Object, universe []string) ([]string, error) {
	innerSet, err := ResolveObject(w, *obj.Inner, universe)
	if err != nil {
		return nil, err
	}

	referent := obj.Relative.Entity
	referentSet, err := ResolveEntity(w, referent, universe)
	if err != nil {
		return nil, err
	}
	referentLookup := util.StringSetOf(referentSet)

	relation := obj.Relative.Relation

	var qualifying []string
	for _, candidate := range innerSet {
		if candidate == Floor {
			continue
		}
		c, h := w.Locate(candidate)
		if c < 0 {
			continue
		}

		neigh := neighborhood(w, c, h, relation)
		matched := false
		for _, n := range neigh {
			if referentLookup.Has(n) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		if referent.Quantifier == QuantAll {
			if anyContradicts(w, c, h, relation, referentLookup) {
				continue
			}
		}

		qualifying = append(qualifying, candidate)
	}

	if len(qualifying) == 0 {
		return nil, planerr.Newf("There is no %s.", leafDescription(*obj.Inner))
	}
	return qualifying, nil
}

// neighborhood returns the labels in the match zone for relation, searched
// from a candidate at column c, height h.
func neighborhood(w *World, c, h int, relation Relation) []string {
	switch relation {
	case RelLeftOf:
		return labelsInCols(w, func(col int) bool { return col > c })
	case RelRightOf:
		return labelsInCols(w, func(col int) bool { return col < c })
	case RelBeside:
		return labelsInCols(w, func(col int) bool { return col == c-1 || col == c+1 })
	case RelAbove:
		return labelsAtHeights(w, c, func(height int) bool { return height > h })
	case RelUnder:
		return labelsAtHeights(w, c, func(height int) bool { return height < h })
	case RelInside:
		if h == 0 {
			return nil
		}
		below := w.Stacks[c][h-1]
		if w.Def(below).Form == FormBox {
			return []string{below}
		}
		return nil
	case RelOnTop:
		if h == 0 {
			return []string{Floor}
		}
		return []string{w.Stacks[c][h-1]}
	default:
		return nil
	}
}

// anyContradicts reports whether the exclusion region for relation (the
// "all" quantifier's universal semantics) contains a label that matches
// referentLookup, which would contradict a universal claim ("leftof all
// balls" is broken by finding a matching ball in the exclusion zone).
func anyContradicts(w *World, c, h int, relation Relation, referentLookup util.StringSet) bool {
	var exclZone []string
	switch relation {
	case RelLeftOf:
		exclZone = labelsInCols(w, func(col int) bool { return col <= c })
	case RelRightOf:
		exclZone = labelsInCols(w, func(col int) bool { return col >= c })
	case RelAbove:
		exclZone = labelsAtHeights(w, c, func(height int) bool { return height <= h })
	case RelUnder:
		exclZone = labelsAtHeights(w, c, func(height int) bool { return height >= h })
	default:
		return false
	}

	for _, l := range exclZone {
		if referentLookup.Has(l) {
			return true
		}
	}
	return false
}

func labelsInCols(w *World, keep func(col int) bool) []string {
	var out []string
	for col, stack := range w.Stacks {
		if keep(col) {
			out = append(out, stack...)
		}
	}
	return out
}

func labelsAtHeights(w *World, col int, keep func(height int) bool) []string {
	var out []string
	for h, label := range w.Stacks[col] {
		if keep(h) {
			out = append(out, label)
		}
	}
	return out
}

// leafDescription walks down through relative clauses to the innermost leaf
// and renders it, for use in error messages about a relative clause that
// could not be satisfied.
func leafDescription(obj Object) string {
	leaf := obj.Leaf()
	return Describe(leaf.Size, leaf.Color, leaf.Form)
}
