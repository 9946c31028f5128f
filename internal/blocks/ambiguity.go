package blocks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/shrdlite/internal/util"
)

// File ambiguity.go implements the Ambiguity Manager: the two clarification
// regimes (parse-level and referent-level), the prompts they generate, and
// the three persistent state slots a Session carries between utterances.

// AmbiguousSide names which half of a relation (movable or relatable) is
// awaiting clarification.
type AmbiguousSide int

const (
	SideNone AmbiguousSide = iota
	SideMovable
	SideRelatable
)

// PendingResolution is the context saved when a "the"-quantified noun
// phrase resolved to more than one label. It holds everything the Goal
// Compiler needs to resume once the ambiguous side narrows to one label.
type PendingResolution struct {
	Cmd       Command
	Movable   []string
	Relatable []string
	Relation  Relation
	QM        Quantifier
	QR        Quantifier
	Side      AmbiguousSide
}

// Session holds the Ambiguity Manager's three persistent slots. A successful
// plan clears all three; a fresh command that doesn't consume the pending
// state also clears them.
type Session struct {
	PendingParses     []Command
	PendingResolution *PendingResolution
	PromptText        string
}

// NewSession returns an empty Session, nothing pending.
func NewSession() *Session {
	return &Session{}
}

// Pending reports whether this session is waiting on a clarifying reply.
func (s *Session) Pending() bool {
	return len(s.PendingParses) > 0 || s.PendingResolution != nil
}

// Clear discards all pending state.
func (s *Session) Clear() {
	s.PendingParses = nil
	s.PendingResolution = nil
	s.PromptText = ""
}

// SuspendForParses stores multiple candidate parses and the prompt asking
// the user to pick one.
func (s *Session) SuspendForParses(parses []Command, prompt string) {
	s.Clear()
	s.PendingParses = parses
	s.PromptText = prompt
}

// SuspendForReferent stores a pending referent resolution and its prompt.
func (s *Session) SuspendForReferent(pr *PendingResolution, prompt string) {
	s.Clear()
	s.PendingResolution = pr
	s.PromptText = prompt
}

// ResolveEntityOrAmbiguous resolves ent against universe. If ent is
// "the"-quantified and resolves to more than one label, it returns the
// resolved set alongside a non-empty clarification prompt; the caller is
// responsible for suspending the session rather than proceeding to goal
// compilation.
func ResolveEntityOrAmbiguous(w *World, ent Entity, universe []string) (labels []string, prompt string, err error) {
	labels, err = ResolveEntity(w, ent, universe)
	if err != nil {
		return nil, "", err
	}
	if ent.Quantifier == QuantThe && len(labels) > 1 {
		return labels, BuildReferentPrompt(w, labels), nil
	}
	return labels, "", nil
}

// BuildReferentPrompt renders the clarification question for an ambiguous
// "the"-quantified reference among candidates.
func BuildReferentPrompt(w *World, candidates []string) string {
	if len(candidates) <= 2 {
		descs := make([]string, len(candidates))
		for i, c := range candidates {
			descs[i] = "the " + MinimalDescription(w, c, candidates)
		}
		return "Do you mean " + util.MakeTextListOr(descs) + "?"
	}

	shared := sharedAttrs(w, candidates)
	desc := Describe(shared.Size, shared.Color, shared.Form)
	return fmt.Sprintf("There are %d %s, which one do you mean?", len(candidates), pluralizeLastWord(desc))
}

// sharedAttrs returns the ObjectDef of the attributes common to every
// candidate; an attribute that differs across candidates comes back as its
// "any" value.
func sharedAttrs(w *World, candidates []string) ObjectDef {
	result := w.Def(candidates[0])
	for _, c := range candidates[1:] {
		d := w.Def(c)
		if d.Form != result.Form {
			result.Form = FormAny
		}
		if d.Size != result.Size {
			result.Size = SizeAny
		}
		if d.Color != result.Color {
			result.Color = ColorAny
		}
	}
	return result
}

func pluralizeLastWord(desc string) string {
	words := strings.Fields(desc)
	if len(words) == 0 {
		return desc
	}
	last := words[len(words)-1]
	words[len(words)-1] = pluralize(last)
	return strings.Join(words, " ")
}

func pluralize(word string) string {
	if word == "" {
		return word
	}
	switch {
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"), strings.HasSuffix(word, "z"),
		strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// ResumeReferent matches a clarifying reply's parsed Object against the
// preselected candidate set named by pr.Side. It reports ok=false if the
// reply doesn't resolve to exactly one of those candidates.
func ResumeReferent(w *World, pr *PendingResolution, reply Object) (label string, ok bool) {
	var candidates []string
	switch pr.Side {
	case SideMovable:
		candidates = pr.Movable
	case SideRelatable:
		candidates = pr.Relatable
	default:
		return "", false
	}

	resolved, err := ResolveObject(w, reply, candidates)
	if err != nil || len(resolved) != 1 {
		return "", false
	}
	return resolved[0], true
}

// BuildParsePrompt renders the numbered list of candidate parses.
func BuildParsePrompt(parses []Command) string {
	var sb strings.Builder
	sb.WriteString("I am not sure which you mean:\n")
	for i, p := range parses {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, RenderCommand(p))
	}
	sb.WriteString("Please reply with the number.")
	return sb.String()
}

// ResumeParse matches a clarifying reply against a pending parse list: the
// reply's first whitespace-delimited token must parse as a positive integer
// no greater than len(pending). Any other reply is treated as a fresh
// command, signaled by ok=false.
func ResumeParse(reply string, pending []Command) (cmd Command, ok bool) {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return Command{}, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > len(pending) {
		return Command{}, false
	}
	return pending[n-1], true
}

// RenderCommand gives a canonical English rendering of a parsed command,
// used to distinguish candidate parses in a clarification prompt.
func RenderCommand(cmd Command) string {
	parts := []string{string(cmd.Verb)}
	if cmd.Entity != nil {
		parts = append(parts, describeEntity(*cmd.Entity))
	}
	if cmd.Location != nil {
		parts = append(parts, englishRelation(cmd.Location.Relation), describeEntity(cmd.Location.Entity))
	}
	return strings.Join(parts, " ")
}

// englishRelation renders a relation name the way a person would say it in
// a prompt ("on top of" rather than the internal "ontop").
func englishRelation(rel Relation) string {
	switch rel {
	case RelLeftOf:
		return "to the left of"
	case RelRightOf:
		return "to the right of"
	case RelOnTop:
		return "on top of"
	default:
		return string(rel)
	}
}

func describeEntity(ent Entity) string {
	article := "the"
	switch ent.Quantifier {
	case QuantAny:
		article = "a"
	case QuantAll:
		article = "all"
	}
	return article + " " + describeObject(ent.Object)
}

func describeObject(obj Object) string {
	if obj.Kind == ObjectLeaf {
		return Describe(obj.Size, obj.Color, obj.Form)
	}
	return describeObject(*obj.Inner) + " that is " + englishRelation(obj.Relative.Relation) + " " + describeEntity(obj.Relative.Entity)
}
