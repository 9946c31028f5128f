package blocks

import (
	"strings"

	"github.com/dekarrin/shrdlite/internal/planerr"
)

// File miniparse.go is a small fixed-grammar parser that stands in for a
// full English grammar and tokenizer: real deployments feed this package a
// Command tree produced by their own parser, and this one exists only to
// drive the CLI and the tests with literal English input.
//
// It covers the utterance shapes VERB (QUANTIFIER SIZE? COLOR? FORM
// (RELATION QUANTIFIER ...)?)? (RELATION QUANTIFIER SIZE? COLOR? FORM
// (RELATION ...)?)?, returning more than one parse when a trailing
// prepositional phrase could attach either to the command's own location or
// as a relative clause on the entity (the "box on the floor" attachment
// ambiguity).

var verbWords = map[string]Verb{
	"take": VerbTake, "get": VerbTake, "pick": VerbTake, "grab": VerbTake,
	"put": VerbPut, "drop": VerbPut, "place": VerbPut,
	"move": VerbMove,
}

var quantifierWords = map[string]Quantifier{
	"the": QuantThe,
	"a": QuantAny, "an": QuantAny, "any": QuantAny,
	"all": QuantAll, "every": QuantAll,
}

var formWords = map[string]Form{
	"ball": FormBall, "balls": FormBall,
	"box": FormBox, "boxes": FormBox,
	"brick": FormBrick, "bricks": FormBrick,
	"pyramid": FormPyramid, "pyramids": FormPyramid,
	"plank": FormPlank, "planks": FormPlank,
	"table": FormTable, "tables": FormTable,
	"floor": FormFloor,
	"thing": FormAny, "things": FormAny, "object": FormAny, "objects": FormAny,
	"one": FormAny,
}

var sizeWords = map[string]Size{
	"small": SizeSmall, "little": SizeSmall,
	"large": SizeLarge, "big": SizeLarge,
}

// colorWords is the fixed palette miniparse recognizes.
var colorWords = map[string]Color{
	"red": "red", "black": "black", "white": "white", "blue": "blue",
	"green": "green", "yellow": "yellow",
}

// relationPhrases is checked longest-match-first against the remaining
// token stream so multi-word relations ("on top of", "left of") are
// recognized before their single-word prefixes.
var relationPhrases = []struct {
	words []string
	rel   Relation
}{
	{[]string{"on", "top", "of"}, RelOnTop},
	{[]string{"to", "the", "left", "of"}, RelLeftOf},
	{[]string{"to", "the", "right", "of"}, RelRightOf},
	{[]string{"left", "of"}, RelLeftOf},
	{[]string{"right", "of"}, RelRightOf},
	{[]string{"next", "to"}, RelBeside},
	{[]string{"inside", "of"}, RelInside},
	{[]string{"inside"}, RelInside},
	{[]string{"in"}, RelInside},
	{[]string{"into"}, RelInside},
	{[]string{"on"}, RelOnTop},
	{[]string{"onto"}, RelOnTop},
	{[]string{"under"}, RelUnder},
	{[]string{"beneath"}, RelUnder},
	{[]string{"above"}, RelAbove},
	{[]string{"over"}, RelAbove},
	{[]string{"beside"}, RelBeside},
}

type tokenStream struct {
	toks []string
	pos  int
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(".", "", ",", "", "?", "", "!", "").Replace(s)
	return strings.Fields(s)
}

func (ts *tokenStream) peek() (string, bool) {
	if ts.pos >= len(ts.toks) {
		return "", false
	}
	return ts.toks[ts.pos], true
}

func (ts *tokenStream) next() (string, bool) {
	t, ok := ts.peek()
	if ok {
		ts.pos++
	}
	return t, ok
}

func (ts *tokenStream) remaining() int {
	return len(ts.toks) - ts.pos
}

// tryRelation consumes a relation phrase at the current position, returning
// ok=false (and not advancing) if none matches.
func (ts *tokenStream) tryRelation() (Relation, bool) {
	for _, rp := range relationPhrases {
		if ts.matchesAt(rp.words) {
			ts.pos += len(rp.words)
			return rp.rel, true
		}
	}
	return "", false
}

func (ts *tokenStream) matchesAt(words []string) bool {
	if ts.pos+len(words) > len(ts.toks) {
		return false
	}
	for i, w := range words {
		if ts.toks[ts.pos+i] != w {
			return false
		}
	}
	return true
}

// ParseUtterance parses raw English text into one or more candidate Command
// parses. It returns planerr.MsgParseFailure if no parse is possible at
// all.
func ParseUtterance(raw string) ([]Command, error) {
	toks := tokenize(raw)
	if len(toks) == 0 {
		return nil, planerr.New(planerr.MsgParseFailure)
	}

	ts := &tokenStream{toks: toks}
	verbTok, _ := ts.next()
	verb, ok := verbWords[verbTok]
	if !ok {
		return nil, planerr.New(planerr.MsgParseFailure)
	}

	if ts.remaining() == 0 {
		return []Command{{Verb: verb}}, nil
	}

	ent, err := parseEntity(ts)
	if err != nil {
		return nil, err
	}

	if ts.remaining() == 0 {
		return []Command{{Verb: verb, Entity: &ent}}, nil
	}

	loc1, err := parseLocation(ts)
	if err != nil {
		return nil, err
	}

	if ts.remaining() == 0 {
		return []Command{{Verb: verb, Entity: &ent, Location: &loc1}}, nil
	}

	// A second trailing PP is attachment-ambiguous: it can modify loc1's
	// entity (reading A: "put the ball in [a box that is on the floor]")
	// or it can be read as a clause on the command's own entity, with loc1
	// promoted to the sole top-level location (reading B: "put [the ball
	// that is on the floor] in a box").
	loc2, err := parseLocation(ts)
	if err != nil || ts.remaining() != 0 {
		// can't consume the rest as a second PP; treat as a single parse
		// with trailing tokens ignored rather than failing outright.
		return []Command{{Verb: verb, Entity: &ent, Location: &loc1}}, nil
	}

	readingA := Command{
		Verb:   verb,
		Entity: &ent,
		Location: &Location{
			Relation: loc1.Relation,
			Entity: Entity{
				Quantifier: loc1.Entity.Quantifier,
				Object:     NewRelative(loc1.Entity.Object, loc2.Relation, loc2.Entity),
			},
		},
	}
	readingB := Command{
		Verb: verb,
		Entity: &Entity{
			Quantifier: ent.Quantifier,
			Object:     NewRelative(ent.Object, loc2.Relation, loc2.Entity),
		},
		Location: &loc1,
	}

	return []Command{readingA, readingB}, nil
}

func parseEntity(ts *tokenStream) (Entity, error) {
	word, ok := ts.next()
	if !ok {
		return Entity{}, planerr.New(planerr.MsgParseFailure)
	}
	q, ok := quantifierWords[word]
	if !ok {
		return Entity{}, planerr.New(planerr.MsgParseFailure)
	}

	obj, err := parseObjectLeaf(ts)
	if err != nil {
		return Entity{}, err
	}

	ent := Entity{Quantifier: q, Object: obj}

	// A relative clause is only bound here when explicitly marked with
	// "that is" ("the box that is on the floor"). A bare trailing PP is
	// deliberately left unconsumed: it is either the command's own
	// top-level location or, when a second PP follows it, one leg of the
	// attachment ambiguity ParseUtterance resolves into two readings. If
	// this function claimed it eagerly instead, that top-level decision
	// could never be reached.
	if ts.matchesAt([]string{"that", "is"}) {
		ts.pos += 2
		loc, err := parseLocation(ts)
		if err != nil {
			return Entity{}, err
		}
		ent.Object = NewRelative(ent.Object, loc.Relation, loc.Entity)
	}

	return ent, nil
}

func parseObjectLeaf(ts *tokenStream) (Object, error) {
	var size Size
	var color Color

	for {
		word, ok := ts.peek()
		if !ok {
			return Object{}, planerr.New(planerr.MsgParseFailure)
		}
		if s, isSize := sizeWords[word]; isSize {
			size = s
			ts.next()
			continue
		}
		if c, isColor := colorWords[word]; isColor {
			color = c
			ts.next()
			continue
		}
		break
	}

	word, ok := ts.next()
	if !ok {
		return Object{}, planerr.New(planerr.MsgParseFailure)
	}
	form, ok := formWords[word]
	if !ok {
		return Object{}, planerr.New(planerr.MsgParseFailure)
	}
	return NewLeaf(size, color, form), nil
}

func parseLocation(ts *tokenStream) (Location, error) {
	rel, ok := ts.tryRelation()
	if !ok {
		return Location{}, planerr.New(planerr.MsgParseFailure)
	}
	ent, err := parseEntity(ts)
	if err != nil {
		return Location{}, err
	}
	return Location{Relation: rel, Entity: ent}, nil
}

// ParseReferentReply parses a short clarifying reply ("the black one", "a
// large box") into a bare Object, for consumption by ResumeReferent. Unlike
// ParseUtterance it accepts input with no verb.
func ParseReferentReply(raw string) (Object, bool) {
	toks := tokenize(raw)
	if len(toks) == 0 {
		return Object{}, false
	}
	ts := &tokenStream{toks: toks}

	// an optional leading quantifier is accepted but ignored: the resolver
	// for a clarifying reply only needs the descriptive leaf.
	if _, ok := quantifierWords[toks[0]]; ok {
		ts.next()
	}
	obj, err := parseObjectLeaf(ts)
	if err != nil {
		return Object{}, false
	}
	return obj, true
}
