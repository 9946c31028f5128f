package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ambiguityTestWorld() *World {
	return &World{
		Stacks: [][]string{{"whiteBall"}, {"blackBall"}, {"redBox", "blueBox", "greenBox"}},
		Arm:    0,
		Objects: map[string]ObjectDef{
			"whiteBall": {Form: FormBall, Color: "white"},
			"blackBall": {Form: FormBall, Color: "black"},
			"redBox":    {Form: FormBox, Color: "red", Size: SizeLarge},
			"blueBox":   {Form: FormBox, Color: "blue", Size: SizeLarge},
			"greenBox":  {Form: FormBox, Color: "green", Size: SizeLarge},
		},
	}
}

func TestBuildReferentPrompt_TwoCandidates(t *testing.T) {
	assert := assert.New(t)
	w := ambiguityTestWorld()

	prompt := BuildReferentPrompt(w, []string{"whiteBall", "blackBall"})
	assert.Equal("Do you mean the white ball or the black ball?", prompt)
}

func TestBuildReferentPrompt_ManyCandidatesGroupsSharedAttributes(t *testing.T) {
	assert := assert.New(t)
	w := ambiguityTestWorld()

	prompt := BuildReferentPrompt(w, []string{"redBox", "blueBox", "greenBox"})
	assert.Equal("There are 3 large boxes, which one do you mean?", prompt)
}

func TestResolveEntityOrAmbiguous_TheWithMultipleMatchesPrompts(t *testing.T) {
	assert := assert.New(t)
	w := ambiguityTestWorld()
	universe := append(w.AllLabels(), Floor)

	ent := Entity{Quantifier: QuantThe, Object: NewLeaf(SizeAny, ColorAny, FormBall)}
	labels, prompt, err := ResolveEntityOrAmbiguous(w, ent, universe)
	require.NoError(t, err)
	assert.ElementsMatch([]string{"whiteBall", "blackBall"}, labels)
	assert.NotEmpty(prompt)

	// "any" over the same matches never prompts.
	ent.Quantifier = QuantAny
	_, prompt, err = ResolveEntityOrAmbiguous(w, ent, universe)
	require.NoError(t, err)
	assert.Empty(prompt)
}

func TestResumeReferent_MatchesOnlyPreselectedCandidates(t *testing.T) {
	assert := assert.New(t)
	w := ambiguityTestWorld()

	pr := &PendingResolution{
		Movable: []string{"whiteBall", "blackBall"},
		Side:    SideMovable,
	}

	label, ok := ResumeReferent(w, pr, NewLeaf(SizeAny, "black", FormAny))
	assert.True(ok)
	assert.Equal("blackBall", label)

	// a reply outside the preselected set is rejected even though it names a
	// real object.
	_, ok = ResumeReferent(w, pr, NewLeaf(SizeAny, ColorAny, FormBox))
	assert.False(ok)

	// a reply that still matches more than one candidate is rejected too.
	_, ok = ResumeReferent(w, pr, NewLeaf(SizeAny, ColorAny, FormBall))
	assert.False(ok)
}

func TestResumeParse(t *testing.T) {
	assert := assert.New(t)
	pending := []Command{{Verb: VerbTake}, {Verb: VerbPut}}

	cmd, ok := ResumeParse("2", pending)
	assert.True(ok)
	assert.Equal(VerbPut, cmd.Verb)

	cmd, ok = ResumeParse("1 please", pending)
	assert.True(ok)
	assert.Equal(VerbTake, cmd.Verb)

	_, ok = ResumeParse("3", pending)
	assert.False(ok)
	_, ok = ResumeParse("take the other one", pending)
	assert.False(ok)
	_, ok = ResumeParse("", pending)
	assert.False(ok)
}

func TestSessionClearOnSuspend(t *testing.T) {
	assert := assert.New(t)
	s := NewSession()
	assert.False(s.Pending())

	s.SuspendForParses([]Command{{Verb: VerbTake}}, "which?")
	assert.True(s.Pending())

	// suspending for a referent replaces the parse slot, never stacks on it.
	s.SuspendForReferent(&PendingResolution{Side: SideMovable}, "which one?")
	assert.True(s.Pending())
	assert.Empty(s.PendingParses)
	assert.NotNil(s.PendingResolution)

	s.Clear()
	assert.False(s.Pending())
	assert.Empty(s.PromptText)
}
