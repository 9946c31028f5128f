package blocks

import (
	"github.com/dekarrin/shrdlite/internal/planerr"
	"github.com/dekarrin/shrdlite/internal/util"
)

// File goal.go implements the Goal Compiler: combining a movable label set,
// a relatable label set, a relation, and their quantifiers into a DNF goal
// formula, enforcing quantifier feasibility before construction is
// attempted.

// GoalInput bundles everything the Goal Compiler needs: the resolved label
// sets from the Reference Resolver, the quantifiers that produced them, and
// the raw parsed descriptors (needed for the self-reference and
// destination-form pre-filters, which look at what the user said rather
// than what it resolved to).
type GoalInput struct {
	Movable      []string
	MovableQ     Quantifier
	MovableObj   Object
	Relatable    []string
	RelatableQ   Quantifier
	RelatableObj *Object // nil when Relation == RelHolding
	Relation     Relation
}

// CompileGoal turns in into a DNF Goal, or a descriptive error if no
// feasible goal can be built.
func CompileGoal(w *World, in GoalInput) (Goal, error) {
	if in.Relation == RelHolding {
		return compileHolding(in.MovableQ, in.Movable)
	}

	if in.RelatableObj != nil {
		if msg := violationMessage(in.Relation, in.RelatableObj.Leaf().Form); msg != "" {
			return nil, planerr.New(msg)
		}
	}

	if err := checkSelfReferenceDescriptors(in); err != nil {
		return nil, err
	}

	M, R, err := checkOverlapExclusion(in)
	if err != nil {
		return nil, err
	}

	if isCapacityRelation(in.Relation) {
		destIsFloor := in.RelatableObj != nil && in.RelatableObj.Leaf().Form == FormFloor

		if in.MovableQ == QuantAll && !destIsFloor {
			switch {
			case in.RelatableQ == QuantAll:
				return nil, planerr.New(planerr.MsgCannotDoThat)
			case len(R) < len(M):
				return nil, planerr.New(capacityMessage(in.Relation))
			}
		}

		if in.RelatableQ == QuantAll && len(M) < len(R) {
			return nil, planerr.New(planerr.MsgCannotDoThat)
		}
	}

	return compileByQuantifiers(w, in.MovableQ, in.RelatableQ, M, R, in.Relation)
}

// isCapacityRelation reports whether relation involves a single physical
// support slot, making target-count feasibility checks meaningful.
func isCapacityRelation(relation Relation) bool {
	return relation == RelOnTop || relation == RelInside
}

func capacityMessage(relation Relation) string {
	if relation == RelInside {
		return planerr.MsgOneObjectFitsInBox
	}
	return planerr.MsgCannotDoThat
}

// checkSelfReferenceDescriptors rejects quantifier combinations that would
// require an object to be related to itself, detected by the movable and
// relatable descriptors sharing a defined attribute.
func checkSelfReferenceDescriptors(in GoalInput) error {
	if in.RelatableObj == nil {
		return nil
	}

	combo := in.MovableQ == QuantAll && (in.RelatableQ == QuantAll || in.RelatableQ == QuantThe)
	combo = combo || (in.MovableQ == QuantThe && in.RelatableQ == QuantAll)
	if !combo {
		return nil
	}

	if sharesAttribute(in.MovableObj, *in.RelatableObj) {
		return planerr.New(planerr.MsgCannotDoThat)
	}
	return nil
}

func sharesAttribute(a, b Object) bool {
	la, lb := a.Leaf(), b.Leaf()
	if la.Form != FormAny && la.Form == lb.Form {
		return true
	}
	if la.Size != SizeAny && la.Size == lb.Size {
		return true
	}
	if la.Color != ColorAny && la.Color == lb.Color {
		return true
	}
	return false
}

// checkOverlapExclusion implements the "differing all/any quantifiers over
// an overlapping set" pre-filter: when one side is "all" and the other
// "any" and they share labels, the shared labels are removed from the "any"
// side (it has the freedom to pick something else); if that empties the
// side, the command is infeasible.
func checkOverlapExclusion(in GoalInput) (movable, relatable []string, err error) {
	movable, relatable = in.Movable, in.Relatable

	mixedAllAny := (in.MovableQ == QuantAll && in.RelatableQ == QuantAny) ||
		(in.MovableQ == QuantAny && in.RelatableQ == QuantAll)
	if !mixedAllAny || len(relatable) == 0 {
		return movable, relatable, nil
	}

	overlap := util.StringSetOf(movable).Intersection(util.StringSetOf(relatable))
	if overlap.Empty() {
		return movable, relatable, nil
	}

	if in.MovableQ == QuantAny {
		movable = subtract(movable, overlap)
		if len(movable) == 0 {
			return nil, nil, planerr.Newf("There is no %s.", leafDescription(in.MovableObj))
		}
	} else {
		relatable = subtract(relatable, overlap)
		if len(relatable) == 0 {
			return nil, nil, planerr.Newf("There is no %s.", leafDescription(*in.RelatableObj))
		}
	}
	return movable, relatable, nil
}

func subtract(labels []string, remove util.StringSet) []string {
	var out []string
	for _, l := range labels {
		if !remove.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

func compileHolding(qM Quantifier, M []string) (Goal, error) {
	if qM == QuantAll {
		if len(M) > 1 {
			return nil, planerr.New(planerr.MsgCanOnlyHoldOne)
		}
		if len(M) == 0 {
			return nil, planerr.New(planerr.MsgCannotDoThat)
		}
		return Goal{Conjunction{Holding(M[0])}}, nil
	}

	var goal Goal
	for _, m := range M {
		goal = append(goal, Conjunction{Holding(m)})
	}
	if len(goal) == 0 {
		return nil, planerr.New(planerr.MsgCannotDoThat)
	}
	return goal, nil
}

func compileByQuantifiers(w *World, qM, qR Quantifier, M, R []string, relation Relation) (Goal, error) {
	switch {
	case qM == QuantAll && qR == QuantAny:
		return buildPerMDisjunction(w, M, R, relation)
	case qM == QuantAll && (qR == QuantThe || qR == QuantAll):
		return buildSingleConjunction(w, M, R, relation)
	case (qM == QuantAny || qM == QuantThe) && qR == QuantAll:
		return buildPerRDisjunction(w, M, R, relation)
	default:
		// (any,any), (the,any), (any,the), and the degenerate (the,the)
		// case all reduce to a flat disjunction of singleton conjunctions.
		return buildFlatDisjunction(w, M, R, relation)
	}
}

func buildSingleConjunction(w *World, M, R []string, relation Relation) (Goal, error) {
	var conj Conjunction
	for _, m := range M {
		for _, r := range R {
			if Permits(w, m, r, relation) {
				conj = append(conj, Rel(relation, m, r))
			}
		}
	}
	if len(conj) == 0 {
		return nil, planerr.New(planerr.MsgCannotDoThat)
	}
	return Goal{conj}, nil
}

func buildFlatDisjunction(w *World, M, R []string, relation Relation) (Goal, error) {
	var goal Goal
	for _, m := range M {
		for _, r := range R {
			if Permits(w, m, r, relation) {
				goal = append(goal, Conjunction{Rel(relation, m, r)})
			}
		}
	}
	if len(goal) == 0 {
		return nil, planerr.New(planerr.MsgCannotDoThat)
	}
	return goal, nil
}

// buildPerMDisjunction builds one conjunct slot per m in M, each slot a
// disjunction of physics-permitted (m, r) literals over r in R, then
// expands the product into DNF.
func buildPerMDisjunction(w *World, M, R []string, relation Relation) (Goal, error) {
	slots := make([][]Literal, 0, len(M))
	for _, m := range M {
		var opts []Literal
		for _, r := range R {
			if Permits(w, m, r, relation) {
				opts = append(opts, Rel(relation, m, r))
			}
		}
		if len(opts) == 0 {
			return nil, planerr.New(planerr.MsgCannotDoThat)
		}
		slots = append(slots, opts)
	}
	return expandDNF(slots, relation)
}

// buildPerRDisjunction is the dual: one conjunct slot per r in R, each a
// disjunction over m in M.
func buildPerRDisjunction(w *World, M, R []string, relation Relation) (Goal, error) {
	slots := make([][]Literal, 0, len(R))
	for _, r := range R {
		var opts []Literal
		for _, m := range M {
			if Permits(w, m, r, relation) {
				opts = append(opts, Rel(relation, m, r))
			}
		}
		if len(opts) == 0 {
			return nil, planerr.New(planerr.MsgCannotDoThat)
		}
		slots = append(slots, opts)
	}
	return expandDNF(slots, relation)
}

// expandDNF depth-first enumerates the product of the conjunct slots,
// materializing each complete assignment as a Conjunction. For ontop/inside
// relations, an assignment is discarded if two of its literals share the
// same second argument (two movables can't occupy the same support).
// Finite by construction: the product of the slot widths.
func expandDNF(slots [][]Literal, relation Relation) (Goal, error) {
	assignments := [][]Literal{{}}
	for _, opts := range slots {
		var next [][]Literal
		for _, partial := range assignments {
			for _, lit := range opts {
				cp := make([]Literal, len(partial), len(partial)+1)
				copy(cp, partial)
				cp = append(cp, lit)
				next = append(next, cp)
			}
		}
		assignments = next
	}

	guard := relation == RelOnTop || relation == RelInside

	var goal Goal
	for _, assignment := range assignments {
		if guard && hasDuplicateSecondArg(assignment) {
			continue
		}
		goal = append(goal, Conjunction(assignment))
	}
	if len(goal) == 0 {
		return nil, planerr.New(planerr.MsgCannotDoThat)
	}
	return goal, nil
}

func hasDuplicateSecondArg(lits []Literal) bool {
	seen := make(map[string]bool, len(lits))
	for _, l := range lits {
		if len(l.Args) < 2 {
			continue
		}
		if seen[l.Args[1]] {
			return true
		}
		seen[l.Args[1]] = true
	}
	return false
}
