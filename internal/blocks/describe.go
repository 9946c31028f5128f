package blocks

import "strings"

// File describe.go computes minimal distinguishing descriptions: the
// shortest attribute tuple that uniquely identifies a label among a set of
// candidates. Shared by the Reference Resolver's empty-result errors, the
// Ambiguity Manager's clarification prompts, and the Narrator's pickup
// descriptions.

// comboKind enumerates the four attribute tuples tried in order, shortest
// first.
type comboKind int

const (
	comboForm comboKind = iota
	comboColorForm
	comboSizeForm
	comboSizeColorForm
)

var allCombos = []comboKind{comboForm, comboColorForm, comboSizeForm, comboSizeColorForm}

// key extracts the comparison tuple for def under this combo, and reports
// whether every attribute in the tuple is actually specified (unspecified
// attributes can never disambiguate, so such a combo is skipped).
func (k comboKind) key(def ObjectDef) (tuple [3]string, complete bool) {
	switch k {
	case comboForm:
		if def.Form == FormAny {
			return tuple, false
		}
		return [3]string{string(def.Form)}, true
	case comboColorForm:
		if def.Color == ColorAny || def.Form == FormAny {
			return tuple, false
		}
		return [3]string{string(def.Color), string(def.Form)}, true
	case comboSizeForm:
		if def.Size == SizeAny || def.Form == FormAny {
			return tuple, false
		}
		return [3]string{string(def.Size), string(def.Form)}, true
	case comboSizeColorForm:
		if def.Size == SizeAny || def.Color == ColorAny || def.Form == FormAny {
			return tuple, false
		}
		return [3]string{string(def.Size), string(def.Color), string(def.Form)}, true
	}
	return tuple, false
}

func (k comboKind) words(tuple [3]string) []string {
	switch k {
	case comboForm:
		return []string{tuple[0]}
	case comboColorForm, comboSizeForm:
		return []string{tuple[0], tuple[1]}
	default:
		return []string{tuple[0], tuple[1], tuple[2]}
	}
}

// MinimalDescription returns the shortest attribute tuple (rendered as
// prose, e.g. "white ball") that uniquely identifies label among
// candidates, using the label's own definition in w. If candidates has
// only one member, the form-only combination is returned without checking
// uniqueness.
func MinimalDescription(w *World, label string, candidates []string) string {
	def := w.Def(label)

	if len(candidates) <= 1 {
		return Describe(def.Size, def.Color, def.Form)
	}

	for _, combo := range allCombos {
		tuple, complete := combo.key(def)
		if !complete {
			continue
		}
		if uniqueAmong(w, label, combo, tuple, candidates) {
			return strings.Join(combo.words(tuple), " ")
		}
	}

	// no combination disambiguates (identical objects); fall back to the
	// fullest description available.
	return Describe(def.Size, def.Color, def.Form)
}

// uniqueAmong reports whether label is the only candidate whose definition
// produces the same tuple under combo.
func uniqueAmong(w *World, label string, combo comboKind, tuple [3]string, candidates []string) bool {
	for _, c := range candidates {
		if c == label {
			continue
		}
		otherTuple, complete := combo.key(w.Def(c))
		if complete && otherTuple == tuple {
			return false
		}
	}
	return true
}

// Describe renders an object's known attributes as prose, e.g. "large
// white ball" or just "ball" if size/color are unspecified. Used wherever
// there is no candidate set to minimize against, only a single description.
func Describe(size Size, color Color, form Form) string {
	var parts []string
	if size != SizeAny {
		parts = append(parts, string(size))
	}
	if color != ColorAny {
		parts = append(parts, string(color))
	}
	if form != FormAny {
		parts = append(parts, string(form))
	} else {
		parts = append(parts, "object")
	}
	return strings.Join(parts, " ")
}
