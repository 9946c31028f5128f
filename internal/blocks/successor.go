package blocks

// File successor.go implements the World Successor: enumerating the legal
// primitive actions from a world state and the resulting states.

// Action is one primitive arm action token.
type Action byte

const (
	ActionLeft  Action = 'l'
	ActionRight Action = 'r'
	ActionPick  Action = 'p'
	ActionDrop  Action = 'd'
)

// Edge is one outgoing transition from a world state: the action taken and
// the resulting state. Every edge has cost 1.
type Edge struct {
	Action Action
	Next   *World
}

// Successors enumerates the legal outgoing edges from w. Each successor is
// an independent clone; w itself is never mutated.
func Successors(w *World) []Edge {
	var edges []Edge

	if w.Arm > 0 {
		next := w.Clone()
		next.Arm--
		edges = append(edges, Edge{ActionLeft, next})
	}
	if w.Arm < len(w.Stacks)-1 {
		next := w.Clone()
		next.Arm++
		edges = append(edges, Edge{ActionRight, next})
	}
	if w.Holding == "" && len(w.Stacks[w.Arm]) > 0 {
		next := w.Clone()
		col := next.Stacks[next.Arm]
		next.Holding = col[len(col)-1]
		next.Stacks[next.Arm] = col[:len(col)-1]
		edges = append(edges, Edge{ActionPick, next})
	}
	if w.Holding != "" && canDrop(w) {
		next := w.Clone()
		next.Stacks[next.Arm] = append(next.Stacks[next.Arm], next.Holding)
		next.Holding = ""
		edges = append(edges, Edge{ActionDrop, next})
	}

	return edges
}

// canDrop reports whether the held object may be released onto the top of
// the arm's current column, either resting ontop of whatever is there (or
// the floor, if the column is empty) or inside it if that top is a box.
func canDrop(w *World) bool {
	top := w.TopOf(w.Arm)
	if top == "" {
		return Permits(w, w.Holding, Floor, RelOnTop)
	}
	return Permits(w, w.Holding, top, RelOnTop) || Permits(w, w.Holding, top, RelInside)
}
