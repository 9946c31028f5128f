package blocks

import (
	"time"

	"github.com/dekarrin/shrdlite/internal/planerr"
)

// File pipeline.go is the top-level orchestrator: it wires the Reference
// Resolver, Ambiguity Manager, Goal Compiler, A* Search, and Narrator
// together into the single utterance-to-plan flow, and owns the live world
// state plus the Ambiguity Manager's Session across utterances.

// Pipeline is a planning session: the live world state, the Ambiguity
// Manager's pending slots, and the search time budget.
type Pipeline struct {
	World   *World
	Session *Session
	Budget  time.Duration
}

// NewPipeline starts a fresh session over w with the given search time
// budget.
func NewPipeline(w *World, budget time.Duration) *Pipeline {
	return &Pipeline{World: w, Session: NewSession(), Budget: budget}
}

// outcome is the result of successfully planning one candidate parse,
// before it has been committed to the live world/session.
type outcome struct {
	lines   []string
	actions []Action
	prompt  string
	pending *PendingResolution
}

// HandleParses is the entry point for a fresh utterance that has one or
// more candidate parses. Each parse is planned independently; if more than
// one reaches a usable outcome, that is parse-level ambiguity and the
// session suspends with a numbered prompt. If exactly one does, its
// outcome is committed (applied to the live world, or stored as a pending
// referent clarification). If none do, the first parse's error is
// reported.
func (p *Pipeline) HandleParses(parses []Command) ([]string, error) {
	if len(parses) == 0 {
		return nil, planerr.New(planerr.MsgParseFailure)
	}

	type success struct {
		cmd Command
		out outcome
	}

	var successes []success
	var firstErr error
	for _, cmd := range parses {
		out, err := p.planOne(cmd)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		successes = append(successes, success{cmd, out})
	}

	if len(successes) == 0 {
		p.Session.Clear()
		return nil, firstErr
	}

	if len(successes) == 1 {
		return p.commit(successes[0].out), nil
	}

	cmds := make([]Command, len(successes))
	for i, s := range successes {
		cmds[i] = s.cmd
	}
	prompt := BuildParsePrompt(cmds)
	p.Session.SuspendForParses(cmds, prompt)
	return []string{prompt}, nil
}

// HandleParseReply attempts to resolve a raw reply against a pending
// parse-selection prompt. ok is false when the reply doesn't look like a
// selection (not a number, or out of range), meaning the caller should
// discard the pending parses and treat the reply as a fresh utterance.
func (p *Pipeline) HandleParseReply(raw string) (lines []string, ok bool, err error) {
	cmd, matched := ResumeParse(raw, p.Session.PendingParses)
	if !matched {
		p.Session.Clear()
		return nil, false, nil
	}

	out, err := p.planOne(cmd)
	if err != nil {
		p.Session.Clear()
		return nil, true, err
	}
	return p.commit(out), true, nil
}

// HandleReferentReply attempts to resolve reply against a pending referent
// ambiguity.
func (p *Pipeline) HandleReferentReply(reply Object) ([]string, error) {
	pr := p.Session.PendingResolution
	if pr == nil {
		return nil, planerr.New(planerr.MsgParseFailure)
	}

	label, ok := ResumeReferent(p.World, pr, reply)
	if !ok {
		prompt := p.Session.PromptText
		p.Session.Clear()
		return nil, planerr.Newf("%s %s", planerr.MsgNotOneOfTheOptions, prompt)
	}

	var out outcome
	var err error
	switch pr.Side {
	case SideMovable:
		out, err = p.resumeMovableSide(pr, label, reply)
	case SideRelatable:
		out, err = p.resumeRelatableSide(pr, label, reply)
	default:
		err = planerr.New(planerr.MsgParseFailure)
	}
	if err != nil {
		p.Session.Clear()
		return nil, err
	}
	if out.prompt != "" {
		p.Session.SuspendForReferent(out.pending, out.prompt)
		return []string{out.prompt}, nil
	}
	return p.commit(out), nil
}

func (p *Pipeline) resumeMovableSide(pr *PendingResolution, label string, reply Object) (outcome, error) {
	relation, _, relatableEnt, err := relationAndEntities(p.World, pr.Cmd)
	if err != nil {
		return outcome{}, err
	}

	if relatableEnt == nil {
		return p.finish([]string{label}, QuantThe, reply, nil, "", nil, relation)
	}

	universe := universeLabels(p.World)
	rLabels, rPrompt, err := ResolveEntityOrAmbiguous(p.World, *relatableEnt, universe)
	if err != nil {
		return outcome{}, err
	}
	if rPrompt != "" {
		pending := &PendingResolution{
			Cmd:       pr.Cmd,
			Movable:   []string{label},
			Relatable: rLabels,
			Relation:  relation,
			QM:        QuantThe,
			QR:        relatableEnt.Quantifier,
			Side:      SideRelatable,
		}
		return outcome{prompt: rPrompt, pending: pending}, nil
	}

	obj := relatableEnt.Object
	return p.finish([]string{label}, QuantThe, reply, rLabels, relatableEnt.Quantifier, &obj, relation)
}

func (p *Pipeline) resumeRelatableSide(pr *PendingResolution, label string, reply Object) (outcome, error) {
	_, movableEnt, _, err := relationAndEntities(p.World, pr.Cmd)
	if err != nil {
		return outcome{}, err
	}
	return p.finish(pr.Movable, pr.QM, movableEnt.Object, []string{label}, QuantThe, &reply, pr.Relation)
}

// commit applies a resolved outcome to the live world and clears the
// session. Outcomes carrying a pending suspension never reach commit - that
// is handled by the caller inspecting out.prompt before calling this.
func (p *Pipeline) commit(out outcome) []string {
	if out.prompt != "" {
		p.Session.SuspendForReferent(out.pending, out.prompt)
		return []string{out.prompt}
	}
	for _, a := range out.actions {
		p.World = applyAction(p.World, a)
	}
	p.Session.Clear()
	return out.lines
}

// planOne runs the full pipeline for a single candidate parse: resolving
// both sides (suspending if either is a "the"-quantified referent with
// multiple matches), compiling the goal, and searching.
func (p *Pipeline) planOne(cmd Command) (outcome, error) {
	relation, movableEnt, relatableEnt, err := relationAndEntities(p.World, cmd)
	if err != nil {
		return outcome{}, err
	}

	universe := universeLabels(p.World)

	mLabels, mPrompt, err := ResolveEntityOrAmbiguous(p.World, movableEnt, universe)
	if err != nil {
		return outcome{}, err
	}
	if mPrompt != "" {
		pending := &PendingResolution{Cmd: cmd, Movable: mLabels, Relation: relation, QM: movableEnt.Quantifier, Side: SideMovable}
		if relatableEnt != nil {
			pending.QR = relatableEnt.Quantifier
		}
		return outcome{prompt: mPrompt, pending: pending}, nil
	}

	if relatableEnt == nil {
		return p.finish(mLabels, movableEnt.Quantifier, movableEnt.Object, nil, "", nil, relation)
	}

	rLabels, rPrompt, err := ResolveEntityOrAmbiguous(p.World, *relatableEnt, universe)
	if err != nil {
		return outcome{}, err
	}
	if rPrompt != "" {
		pending := &PendingResolution{
			Cmd:       cmd,
			Movable:   mLabels,
			Relatable: rLabels,
			Relation:  relation,
			QM:        movableEnt.Quantifier,
			QR:        relatableEnt.Quantifier,
			Side:      SideRelatable,
		}
		return outcome{prompt: rPrompt, pending: pending}, nil
	}

	obj := relatableEnt.Object
	return p.finish(mLabels, movableEnt.Quantifier, movableEnt.Object, rLabels, relatableEnt.Quantifier, &obj, relation)
}

// finish compiles the goal from already-resolved sides, checks idempotence,
// and searches.
func (p *Pipeline) finish(mLabels []string, mQ Quantifier, mObj Object, rLabels []string, rQ Quantifier, rObj *Object, relation Relation) (outcome, error) {
	in := GoalInput{
		Movable:      mLabels,
		MovableQ:     mQ,
		MovableObj:   mObj,
		Relatable:    rLabels,
		RelatableQ:   rQ,
		RelatableObj: rObj,
		Relation:     relation,
	}

	goal, err := CompileGoal(p.World, in)
	if err != nil {
		return outcome{}, err
	}

	if IsGoalTrue(goal, p.World) {
		return outcome{lines: Narrate(p.World, nil)}, nil
	}

	actions, err := Search(p.World, goal, p.Budget)
	if err != nil {
		return outcome{}, err
	}

	return outcome{lines: Narrate(p.World, actions), actions: actions}, nil
}

// relationAndEntities reads the verb/entity/location shape of cmd into a
// relation and its movable/relatable entities. A command with no entity at
// all ("put it down") falls back to whatever the arm is currently holding.
func relationAndEntities(w *World, cmd Command) (relation Relation, movableEnt Entity, relatableEnt *Entity, err error) {
	relation = RelHolding
	if cmd.Location != nil {
		if cmd.Verb == VerbTake && cmd.Entity != nil {
			// "take the ball on the floor": the goal is still to hold the
			// ball; the trailing PP only narrows which ball is meant.
			narrowed := Entity{
				Quantifier: cmd.Entity.Quantifier,
				Object:     NewRelative(cmd.Entity.Object, cmd.Location.Relation, cmd.Location.Entity),
			}
			return RelHolding, narrowed, nil, nil
		}
		relation = cmd.Location.Relation
		relatableEnt = &cmd.Location.Entity
	}

	if cmd.Entity != nil {
		return relation, *cmd.Entity, relatableEnt, nil
	}

	if w.Holding == "" {
		return "", Entity{}, nil, planerr.New(planerr.MsgCannotDoThat)
	}
	def := w.Def(w.Holding)
	return relation, Entity{Quantifier: QuantThe, Object: NewLeaf(def.Size, def.Color, def.Form)}, relatableEnt, nil
}

func universeLabels(w *World) []string {
	return append(w.AllLabels(), Floor)
}
