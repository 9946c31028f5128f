package blocks

// File heuristic.go implements the admissible heuristic consulted by A*
// Search: a per-literal cost estimate that never overestimates the true
// number of primitive actions remaining.

// moveTo estimates the cost for the arm to be in position to act on x: the
// column distance, or 0 if x is already held.
func moveTo(w *World, x string) int {
	if x != "" && x == w.Holding {
		return 0
	}
	return abs(w.Arm - colFor(w, x))
}

// expose estimates the cost to clear whatever sits above x so it can be
// picked up: 4 actions (pick, move, drop, move) per object above, minus 1
// since the last clearing trip need not return, plus 1 more if the arm is
// currently holding something and must set it down first. For x == Floor,
// the column cleared is whichever floorCol judges cheapest.
func expose(w *World, x string) int {
	var n int
	if x == Floor {
		n = len(w.Stacks[floorCol(w)])
	} else if c, h := w.Locate(x); c >= 0 {
		n = len(w.Stacks[c]) - h - 1
	}

	cost := 0
	if n > 0 {
		cost = 4*n - 1
	}
	if w.Holding != "" {
		cost++
	}
	return cost
}

// floorCol picks the column cheapest to clear all the way down to bare
// floor: the one minimizing arm-travel-distance plus 4 times its height.
func floorCol(w *World) int {
	best := 0
	bestScore := 0
	for i := range w.Stacks {
		score := abs(w.Arm-i) + 4*len(w.Stacks[i]) - 1
		if i == 0 || score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// stepsBetween is the column distance between x and y, with Floor resolved
// via floorCol.
func stepsBetween(w *World, x, y string) int {
	return abs(colFor(w, x) - colFor(w, y))
}

func colFor(w *World, label string) int {
	if label == Floor {
		return floorCol(w)
	}
	if c, _ := w.Locate(label); c >= 0 {
		return c
	}
	// label is held (or unknown): treat the arm's own column as its
	// location, so moveTo/stepsBetween against it contribute no travel.
	return w.Arm
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Heuristic estimates the remaining action cost to satisfy lit in w. It is
// 0 whenever lit already holds.
func Heuristic(lit Literal, w *World) int {
	if IsLiteralTrue(lit, w) {
		return 0
	}

	switch lit.Relation {
	case RelHolding:
		x := lit.Args[0]
		return expose(w, x) + moveTo(w, x) + 1

	case RelLeftOf, RelRightOf:
		x, y := lit.Args[0], lit.Args[1]
		return stepsBetween(w, x, y) + 1 + min(expose(w, x)+moveTo(w, x), expose(w, y)+moveTo(w, y))

	case RelInside, RelOnTop:
		x, y := lit.Args[0], lit.Args[1]
		shared := 0
		if colFor(w, x) == colFor(w, y) {
			shared = max(expose(w, x), expose(w, y))
		} else {
			shared = expose(w, x) + expose(w, y)
		}
		return min(moveTo(w, x), moveTo(w, y)) + stepsBetween(w, x, y) + 1 + shared

	case RelBeside:
		x, y := lit.Args[0], lit.Args[1]
		return max(0, min(moveTo(w, x)+expose(w, x), moveTo(w, y)+expose(w, y))+stepsBetween(w, x, y)-1)

	case RelUnder:
		x, y := lit.Args[0], lit.Args[1]
		return moveTo(w, y) + expose(w, y) + stepsBetween(w, y, x)

	case RelAbove:
		x, y := lit.Args[0], lit.Args[1]
		return moveTo(w, x) + expose(w, x) + stepsBetween(w, x, y)

	default:
		return 0
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// HeuristicConjunction is the maximum heuristic over c's literals: each
// literal's cost is a lower bound on moves that would satisfy all of them,
// so the maximum remains admissible.
func HeuristicConjunction(c Conjunction, w *World) int {
	best := 0
	for i, lit := range c {
		h := Heuristic(lit, w)
		if i == 0 || h > best {
			best = h
		}
	}
	return best
}

// HeuristicGoal is the minimum heuristic over g's conjunctions: the planner
// will pursue whichever disjunct turns out cheapest.
func HeuristicGoal(g Goal, w *World) int {
	best := 0
	for i, c := range g {
		h := HeuristicConjunction(c, w)
		if i == 0 || h < best {
			best = h
		}
	}
	return best
}
