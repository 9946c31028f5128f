package blocks

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rezi"
)

// File marshaling.go implements binary marshaling for the session-persisted
// types: World, Session, and the parse-tree nodes a suspended Session
// carries. The server's persistence layer stores these with rezi so a
// planning session can resume across a restart, pending clarifications
// included.

func (o ObjectDef) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(string(o.Form))...)
	data = append(data, rezi.EncString(string(o.Size))...)
	data = append(data, rezi.EncString(string(o.Color))...)

	return data, nil
}

func (o *ObjectDef) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var s string

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	o.Form = Form(s)
	data = data[readBytes:]

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("size: %w", err)
	}
	o.Size = Size(s)
	data = data[readBytes:]

	s, _, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("color: %w", err)
	}
	o.Color = Color(s)

	return nil
}

func (w World) MarshalBinary() ([]byte, error) {
	var data []byte

	// stacks
	data = append(data, rezi.EncInt(len(w.Stacks))...)
	for i := range w.Stacks {
		data = append(data, encStringSlice(w.Stacks[i])...)
	}

	data = append(data, rezi.EncInt(w.Arm)...)
	data = append(data, rezi.EncString(w.Holding)...)

	// object table, in sorted label order so equal worlds encode equally
	labels := make([]string, 0, len(w.Objects))
	for label := range w.Objects {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data = append(data, rezi.EncInt(len(labels))...)
	for _, label := range labels {
		data = append(data, rezi.EncString(label)...)
		data = append(data, rezi.EncBinary(w.Objects[label])...)
	}

	return data, nil
}

func (w *World) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var count int

	count, readBytes, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("stacks count: %w", err)
	}
	data = data[readBytes:]

	w.Stacks = make([][]string, count)
	for i := 0; i < count; i++ {
		w.Stacks[i], readBytes, err = decStringSlice(data)
		if err != nil {
			return fmt.Errorf("stack %d: %w", i, err)
		}
		data = data[readBytes:]
	}

	w.Arm, readBytes, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("arm: %w", err)
	}
	data = data[readBytes:]

	w.Holding, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("holding: %w", err)
	}
	data = data[readBytes:]

	count, readBytes, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("objects count: %w", err)
	}
	data = data[readBytes:]

	w.Objects = make(map[string]ObjectDef, count)
	for i := 0; i < count; i++ {
		var label string
		label, readBytes, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("object %d label: %w", i, err)
		}
		data = data[readBytes:]

		var def ObjectDef
		readBytes, err = rezi.DecBinary(data, &def)
		if err != nil {
			return fmt.Errorf("object %q: %w", label, err)
		}
		data = data[readBytes:]

		w.Objects[label] = def
	}

	return nil
}

func (o Object) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(int(o.Kind))...)

	if o.Kind == ObjectRelative {
		data = append(data, rezi.EncBinary(*o.Inner)...)
		data = append(data, rezi.EncBinary(*o.Relative)...)
		return data, nil
	}

	data = append(data, rezi.EncString(string(o.Size))...)
	data = append(data, rezi.EncString(string(o.Color))...)
	data = append(data, rezi.EncString(string(o.Form))...)

	return data, nil
}

func (o *Object) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var kindVal int

	kindVal, readBytes, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("kind: %w", err)
	}
	o.Kind = ObjectKind(kindVal)
	data = data[readBytes:]

	if o.Kind == ObjectRelative {
		o.Inner = &Object{}
		readBytes, err = rezi.DecBinary(data, o.Inner)
		if err != nil {
			return fmt.Errorf("inner object: %w", err)
		}
		data = data[readBytes:]

		o.Relative = &Location{}
		_, err = rezi.DecBinary(data, o.Relative)
		if err != nil {
			return fmt.Errorf("relative clause: %w", err)
		}
		return nil
	}
	if o.Kind != ObjectLeaf {
		return fmt.Errorf("unknown object node kind %d", kindVal)
	}

	var s string
	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("size: %w", err)
	}
	o.Size = Size(s)
	data = data[readBytes:]

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("color: %w", err)
	}
	o.Color = Color(s)
	data = data[readBytes:]

	s, _, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	o.Form = Form(s)

	return nil
}

func (ent Entity) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(string(ent.Quantifier))...)
	data = append(data, rezi.EncBinary(ent.Object)...)

	return data, nil
}

func (ent *Entity) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var s string

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("quantifier: %w", err)
	}
	ent.Quantifier = Quantifier(s)
	data = data[readBytes:]

	_, err = rezi.DecBinary(data, &ent.Object)
	if err != nil {
		return fmt.Errorf("object: %w", err)
	}

	return nil
}

func (loc Location) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(string(loc.Relation))...)
	data = append(data, rezi.EncBinary(loc.Entity)...)

	return data, nil
}

func (loc *Location) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var s string

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("relation: %w", err)
	}
	loc.Relation = Relation(s)
	data = data[readBytes:]

	_, err = rezi.DecBinary(data, &loc.Entity)
	if err != nil {
		return fmt.Errorf("entity: %w", err)
	}

	return nil
}

func (cmd Command) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(string(cmd.Verb))...)

	data = append(data, rezi.EncBool(cmd.Entity != nil)...)
	if cmd.Entity != nil {
		data = append(data, rezi.EncBinary(*cmd.Entity)...)
	}

	data = append(data, rezi.EncBool(cmd.Location != nil)...)
	if cmd.Location != nil {
		data = append(data, rezi.EncBinary(*cmd.Location)...)
	}

	return data, nil
}

func (cmd *Command) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var present bool
	var s string

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("verb: %w", err)
	}
	cmd.Verb = Verb(s)
	data = data[readBytes:]

	present, readBytes, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("entity flag: %w", err)
	}
	data = data[readBytes:]
	if present {
		cmd.Entity = &Entity{}
		readBytes, err = rezi.DecBinary(data, cmd.Entity)
		if err != nil {
			return fmt.Errorf("entity: %w", err)
		}
		data = data[readBytes:]
	}

	present, readBytes, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("location flag: %w", err)
	}
	data = data[readBytes:]
	if present {
		cmd.Location = &Location{}
		_, err = rezi.DecBinary(data, cmd.Location)
		if err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}

	return nil
}

func (pr PendingResolution) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncBinary(pr.Cmd)...)
	data = append(data, encStringSlice(pr.Movable)...)
	data = append(data, encStringSlice(pr.Relatable)...)
	data = append(data, rezi.EncString(string(pr.Relation))...)
	data = append(data, rezi.EncString(string(pr.QM))...)
	data = append(data, rezi.EncString(string(pr.QR))...)
	data = append(data, rezi.EncInt(int(pr.Side))...)

	return data, nil
}

func (pr *PendingResolution) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var s string
	var sideVal int

	readBytes, err = rezi.DecBinary(data, &pr.Cmd)
	if err != nil {
		return fmt.Errorf("command: %w", err)
	}
	data = data[readBytes:]

	pr.Movable, readBytes, err = decStringSlice(data)
	if err != nil {
		return fmt.Errorf("movable set: %w", err)
	}
	data = data[readBytes:]

	pr.Relatable, readBytes, err = decStringSlice(data)
	if err != nil {
		return fmt.Errorf("relatable set: %w", err)
	}
	data = data[readBytes:]

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("relation: %w", err)
	}
	pr.Relation = Relation(s)
	data = data[readBytes:]

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("movable quantifier: %w", err)
	}
	pr.QM = Quantifier(s)
	data = data[readBytes:]

	s, readBytes, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("relatable quantifier: %w", err)
	}
	pr.QR = Quantifier(s)
	data = data[readBytes:]

	sideVal, _, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("side: %w", err)
	}
	pr.Side = AmbiguousSide(sideVal)

	return nil
}

func (s Session) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(len(s.PendingParses))...)
	for i := range s.PendingParses {
		data = append(data, rezi.EncBinary(s.PendingParses[i])...)
	}

	data = append(data, rezi.EncBool(s.PendingResolution != nil)...)
	if s.PendingResolution != nil {
		data = append(data, rezi.EncBinary(*s.PendingResolution)...)
	}

	data = append(data, rezi.EncString(s.PromptText)...)

	return data, nil
}

func (s *Session) UnmarshalBinary(data []byte) error {
	var err error
	var readBytes int
	var count int
	var present bool

	count, readBytes, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("pending parse count: %w", err)
	}
	data = data[readBytes:]

	s.PendingParses = nil
	for i := 0; i < count; i++ {
		var cmd Command
		readBytes, err = rezi.DecBinary(data, &cmd)
		if err != nil {
			return fmt.Errorf("pending parse %d: %w", i, err)
		}
		data = data[readBytes:]
		s.PendingParses = append(s.PendingParses, cmd)
	}

	present, readBytes, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("pending resolution flag: %w", err)
	}
	data = data[readBytes:]
	s.PendingResolution = nil
	if present {
		s.PendingResolution = &PendingResolution{}
		readBytes, err = rezi.DecBinary(data, s.PendingResolution)
		if err != nil {
			return fmt.Errorf("pending resolution: %w", err)
		}
		data = data[readBytes:]
	}

	s.PromptText, _, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("prompt text: %w", err)
	}

	return nil
}

func encStringSlice(sl []string) []byte {
	data := rezi.EncInt(len(sl))
	for _, s := range sl {
		data = append(data, rezi.EncString(s)...)
	}
	return data
}

func decStringSlice(data []byte) ([]string, int, error) {
	var total int

	count, readBytes, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	data = data[readBytes:]
	total += readBytes

	sl := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var s string
		s, readBytes, err = rezi.DecString(data)
		if err != nil {
			return nil, total, fmt.Errorf("element %d: %w", i, err)
		}
		data = data[readBytes:]
		total += readBytes
		sl = append(sl, s)
	}

	return sl, total, nil
}
