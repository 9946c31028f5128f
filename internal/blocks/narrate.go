package blocks

import "github.com/dekarrin/shrdlite/internal/planerr"

// File narrate.go implements the Narrator: annotating an action sequence
// with minimally distinguishing descriptions of each pickup.

// Narrate walks actions (as produced by Search, run from start) and returns
// the lines a host should print: "Moving the <description>" just before
// every pickup, with the action tokens themselves interleaved in order. An
// empty plan narrates as "That is already true!".
//
// Descriptions are computed against the starting state's full label set
// (including whatever was already held, if anything) rather than being
// recomputed as the plan progresses, so an object picked up and set back
// down mid-plan doesn't change another object's description partway
// through.
func Narrate(start *World, actions []Action) []string {
	if len(actions) == 0 {
		return []string{planerr.MsgAlreadyTrue}
	}

	candidates := start.AllLabels()

	lines := make([]string, 0, len(actions)+1)
	w := start.Clone()
	for _, a := range actions {
		if a == ActionPick {
			label := w.TopOf(w.Arm)
			lines = append(lines, "Moving the "+MinimalDescription(start, label, candidates))
		}
		lines = append(lines, string(a))
		w = applyAction(w, a)
	}
	return lines
}

// applyAction produces the state resulting from performing a on w, for the
// Narrator's forward simulation. It assumes a was legal when produced by
// Search and does not re-validate it.
func applyAction(w *World, a Action) *World {
	next := w.Clone()
	switch a {
	case ActionLeft:
		next.Arm--
	case ActionRight:
		next.Arm++
	case ActionPick:
		col := next.Stacks[next.Arm]
		next.Holding = col[len(col)-1]
		next.Stacks[next.Arm] = col[:len(col)-1]
	case ActionDrop:
		next.Stacks[next.Arm] = append(next.Stacks[next.Arm], next.Holding)
		next.Holding = ""
	}
	return next
}
