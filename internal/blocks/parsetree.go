package blocks

// File parsetree.go defines the parse-tree types this package consumes but
// does not produce. The English grammar and its tokenization front-end are
// out of scope; callers (or internal/blocks/miniparse.go, a small
// fixed-grammar stand-in used for tests and the CLI) are responsible for
// delivering one of these per utterance.

// Quantifier is how many of the matching objects a noun phrase refers to.
type Quantifier string

const (
	// QuantThe means a unique referent; more than one match triggers the
	// ambiguity dialogue.
	QuantThe Quantifier = "the"

	// QuantAny means an existential: any one matching object will do.
	QuantAny Quantifier = "any"

	// QuantAll means every matching object, universally quantified.
	QuantAll Quantifier = "all"
)

// Relation names a spatial relation between two objects, or the unary
// "holding" relation between the arm and one object.
type Relation string

const (
	RelLeftOf  Relation = "leftof"
	RelRightOf Relation = "rightof"
	RelInside  Relation = "inside"
	RelOnTop   Relation = "ontop"
	RelUnder   Relation = "under"
	RelAbove   Relation = "above"
	RelBeside  Relation = "beside"
	RelHolding Relation = "holding"
)

// Verb names the command being invoked.
type Verb string

const (
	VerbTake Verb = "take"
	VerbPut  Verb = "put"
	VerbMove Verb = "move"
)

// Command is the root parse node: a verb plus an optional entity (what to
// act on) and an optional location (where to put it).
type Command struct {
	Verb     Verb
	Entity   *Entity
	Location *Location
}

// Entity is a quantified noun phrase.
type Entity struct {
	Quantifier Quantifier
	Object     Object
}

// Object is a sum type: either a leaf description (size/color/form) or a
// relative clause pairing an inner Object with a Location ("the box that is
// on the floor"). Exactly one of Inner or Relative is non-nil; use Kind to
// discriminate instead of nil-checking both.
type ObjectKind int

const (
	ObjectLeaf ObjectKind = iota
	ObjectRelative
)

type Object struct {
	Kind ObjectKind

	// Leaf fields, valid when Kind == ObjectLeaf.
	Size  Size
	Color Color
	Form  Form

	// Relative fields, valid when Kind == ObjectRelative.
	Inner    *Object
	Relative *Location
}

// Leaf walks down through any relative clauses and returns the innermost
// leaf Object, the one actually carrying size/color/form.
func (o Object) Leaf() Object {
	for o.Kind == ObjectRelative {
		o = *o.Inner
	}
	return o
}

// NewLeaf builds a leaf Object node.
func NewLeaf(size Size, color Color, form Form) Object {
	return Object{Kind: ObjectLeaf, Size: size, Color: color, Form: form}
}

// NewRelative builds a relative-clause Object node: inner, which is relation
// to the entity described by loc.
func NewRelative(inner Object, relation Relation, referent Entity) Object {
	return Object{
		Kind:     ObjectRelative,
		Inner:    &inner,
		Relative: &Location{Relation: relation, Entity: referent},
	}
}

// Location wraps a relation and the entity it relates to ("on the floor",
// "inside a box").
type Location struct {
	Relation Relation
	Entity   Entity
}
