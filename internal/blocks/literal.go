package blocks

import "fmt"

// File literal.go defines Literal, Conjunction, and the DNF goal shape
// produced by the Goal Compiler and consumed by the Heuristic and A* Search.

// Literal is a single relation claim. All literals produced by this package
// have Polarity true; the DNF shape has no use for negation.
type Literal struct {
	Polarity bool
	Relation Relation
	Args     []string
}

func (l Literal) String() string {
	if len(l.Args) == 1 {
		return fmt.Sprintf("%s(%s)", l.Relation, l.Args[0])
	}
	return fmt.Sprintf("%s(%s, %s)", l.Relation, l.Args[0], l.Args[1])
}

// Holding builds a holding(x) literal.
func Holding(x string) Literal {
	return Literal{Polarity: true, Relation: RelHolding, Args: []string{x}}
}

// Rel builds a binary relation(x, y) literal.
func Rel(relation Relation, x, y string) Literal {
	return Literal{Polarity: true, Relation: relation, Args: []string{x, y}}
}

// Conjunction is a set of literals that must all hold simultaneously.
type Conjunction []Literal

// Goal is a disjunction of conjunctions in DNF. An empty Goal is not used to
// represent "already true" - that case is instead detected by IsGoalTrue
// returning true for some disjunct, handled upstream by the pipeline before
// search ever starts.
type Goal []Conjunction

// IsLiteralTrue reports whether literal currently holds in w.
func IsLiteralTrue(lit Literal, w *World) bool {
	switch lit.Relation {
	case RelHolding:
		return w.Holding == lit.Args[0]
	case RelOnTop:
		return isOnTop(w, lit.Args[0], lit.Args[1])
	case RelInside:
		// inside is represented identically to ontop: the support
		// relation in the stack is "x sits directly above y" regardless
		// of whether y is a box.
		return isOnTop(w, lit.Args[0], lit.Args[1])
	case RelLeftOf:
		cx, cy := colOf(w, lit.Args[0]), colOf(w, lit.Args[1])
		return cx >= 0 && cy >= 0 && cx < cy
	case RelRightOf:
		cx, cy := colOf(w, lit.Args[0]), colOf(w, lit.Args[1])
		return cx >= 0 && cy >= 0 && cx > cy
	case RelBeside:
		cx, cy := colOf(w, lit.Args[0]), colOf(w, lit.Args[1])
		if cx < 0 || cy < 0 {
			return false
		}
		d := cx - cy
		return d == 1 || d == -1
	case RelAbove:
		return isAbove(w, lit.Args[0], lit.Args[1])
	case RelUnder:
		return isAbove(w, lit.Args[1], lit.Args[0])
	default:
		return false
	}
}

// isOnTop reports whether x sits directly atop y: either y is Floor and x
// is at height 0 of some column, or y is immediately below x in a stack.
func isOnTop(w *World, x, y string) bool {
	if y == Floor {
		c, h := w.Locate(x)
		return c >= 0 && h == 0
	}
	cx, hx := w.Locate(x)
	cy, hy := w.Locate(y)
	if cx < 0 || cy < 0 {
		return false
	}
	return cx == cy && hx == hy+1
}

// isAbove reports whether x is anywhere above y in the same column (not
// necessarily directly).
func isAbove(w *World, x, y string) bool {
	if y == Floor {
		c, h := w.Locate(x)
		return c >= 0 && h >= 0
	}
	cx, hx := w.Locate(x)
	cy, hy := w.Locate(y)
	if cx < 0 || cy < 0 {
		return false
	}
	return cx == cy && hx > hy
}

// colOf returns the column of a label, or -1 for Floor/unknown/held labels,
// which have no single column.
func colOf(w *World, label string) int {
	if label == Floor {
		return -1
	}
	c, _ := w.Locate(label)
	return c
}

// IsConjunctionTrue reports whether every literal in c holds in w.
func IsConjunctionTrue(c Conjunction, w *World) bool {
	for _, lit := range c {
		if !IsLiteralTrue(lit, w) {
			return false
		}
	}
	return true
}

// IsGoalTrue reports whether any conjunction of g holds in w - i.e. whether
// the goal is already satisfied and no planning is required.
func IsGoalTrue(g Goal, w *World) bool {
	for _, c := range g {
		if IsConjunctionTrue(c, w) {
			return true
		}
	}
	return false
}
