package blocks

import "github.com/dekarrin/shrdlite/internal/planerr"

// File physics.go implements the physics oracle: a pure predicate over
// (upper, lower, relation, world) encoding the stacking/containment rules.
// Both the goal compiler's pre-filters and the successor's move-legality
// check consult it; it never mutates anything.

// Permits reports whether upper may be placed in the given relation to
// lower in the given world. w is consulted only for object definitions; it
// is never mutated.
func Permits(w *World, upper, lower string, relation Relation) bool {
	if upper == lower {
		return false
	}

	u := w.Def(upper)
	l := w.Def(lower)

	switch relation {
	case RelInside:
		return permitsInside(u, l)
	case RelOnTop:
		return permitsOnTop(u, l)
	case RelAbove:
		return permitsAbove(u, l)
	case RelUnder:
		return permitsUnder(u)
	case RelLeftOf, RelRightOf, RelBeside:
		// structurally permitted; satisfaction is positional
		return true
	default:
		return false
	}
}

func permitsInside(upper, lower ObjectDef) bool {
	if lower.Form != FormBox {
		return false
	}

	if lower.Size == SizeSmall && upper.Size == SizeLarge {
		return false
	}
	if upper.Size == lower.Size && (upper.Form == FormBox || upper.Form == FormPyramid || upper.Form == FormPlank) {
		return false
	}
	return true
}

func permitsOnTop(upper, lower ObjectDef) bool {
	if lower.Form == FormBox {
		return false
	}
	if lower.Form == FormBall {
		return false
	}
	if upper.Form == FormBall && lower.Form != FormFloor && lower.Form != FormBox {
		return false
	}
	if upper.Size == SizeLarge && lower.Size == SizeSmall {
		return false
	}
	if upper.Form == FormBox && upper.Size == SizeSmall && lower.Size == SizeSmall &&
		(lower.Form == FormBrick || lower.Form == FormPyramid) {
		return false
	}
	if upper.Form == FormBox && upper.Size == SizeLarge && lower.Size == SizeLarge && lower.Form == FormPyramid {
		return false
	}
	return true
}

func permitsAbove(upper, lower ObjectDef) bool {
	if lower.Form == FormBall {
		return false
	}
	if upper.Size == SizeLarge && lower.Size == SizeSmall {
		return false
	}
	return true
}

func permitsUnder(upper ObjectDef) bool {
	return upper.Form != FormBall
}

// violationMessage returns the fixed-wording explanation for why a relation
// can never hold between any pair of objects with the given forms, or "" if
// the relation is always structurally possible for some pairing. Used by
// the Goal Compiler's static pre-filters, which must reject before
// attempting construction rather than after failing to find a goal.
func violationMessage(relation Relation, destForm Form) string {
	if relation == RelInside && destForm != FormBox {
		return planerr.MsgOnlyInsideBoxes
	}
	if relation == RelOnTop && destForm == FormBall {
		return planerr.MsgBallsCannotSupport
	}
	return ""
}
