// Package worldfixture loads a blocks-world starting state from an SWW
// (Shrdlite World) TOML file: a format/type header followed by the data
// proper, decoded with github.com/BurntSushi/toml and converted into the
// planning core's own types rather than parsed ad hoc.
package worldfixture

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/shrdlite/internal/blocks"
)

// FileInfo is the minimal header every SWW file must carry, read on its own
// before the body so the file's kind can be rejected early.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

const (
	expectedFormat = "SWW"
	expectedType   = "DATA"
)

// object is the TOML shape of one entry in the world's object table.
type object struct {
	Label string `toml:"label"`
	Form  string `toml:"form"`
	Size  string `toml:"size"`
	Color string `toml:"color"`
}

// stack is the TOML shape of one column, bottom-to-top.
type stack struct {
	Objects []string `toml:"objects"`
}

// topLevelWorld is the full decoded shape of an SWW DATA file.
type topLevelWorld struct {
	Format  string   `toml:"format"`
	Type    string   `toml:"type"`
	Arm     int      `toml:"arm"`
	Holding string   `toml:"holding"`
	Objects []object `toml:"object"`
	Stacks  []stack  `toml:"stack"`
}

// Load reads an SWW file from path and builds the starting blocks.World it
// describes. An empty Stacks list, a Holding label not present in Objects,
// or an Arm outside [0, len(Stacks)) are all rejected before the world is
// handed back, since those would violate the invariants World depends on
// throughout the planning core.
func Load(path string) (*blocks.World, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world fixture: %w", err)
	}
	return Parse(raw)
}

// Parse decodes raw SWW TOML bytes into a starting blocks.World.
func Parse(raw []byte) (*blocks.World, error) {
	var info FileInfo
	if _, err := toml.Decode(string(raw), &info); err != nil {
		return nil, fmt.Errorf("parse world fixture header: %w", err)
	}
	if info.Format != expectedFormat {
		return nil, fmt.Errorf("world fixture: unsupported format %q (want %q)", info.Format, expectedFormat)
	}
	if info.Type != expectedType {
		return nil, fmt.Errorf("world fixture: unsupported type %q (want %q)", info.Type, expectedType)
	}

	var top topLevelWorld
	if _, err := toml.Decode(string(raw), &top); err != nil {
		return nil, fmt.Errorf("parse world fixture body: %w", err)
	}

	return build(top)
}

func build(top topLevelWorld) (*blocks.World, error) {
	if len(top.Stacks) == 0 {
		return nil, fmt.Errorf("world fixture: must define at least one stack")
	}

	objects := make(map[string]blocks.ObjectDef, len(top.Objects))
	for _, o := range top.Objects {
		if o.Label == "" {
			return nil, fmt.Errorf("world fixture: object with no label")
		}
		if o.Label == blocks.Floor {
			return nil, fmt.Errorf("world fixture: %q is a reserved label and cannot be defined as an object", blocks.Floor)
		}
		def, err := toObjectDef(o)
		if err != nil {
			return nil, fmt.Errorf("world fixture: object %q: %w", o.Label, err)
		}
		objects[o.Label] = def
	}

	placed := map[string]bool{}
	stacks := make([][]string, len(top.Stacks))
	for i, s := range top.Stacks {
		stacks[i] = append([]string(nil), s.Objects...)
		for _, label := range s.Objects {
			if _, ok := objects[label]; !ok {
				return nil, fmt.Errorf("world fixture: stack %d references undefined object %q", i, label)
			}
			if placed[label] {
				return nil, fmt.Errorf("world fixture: object %q placed more than once", label)
			}
			placed[label] = true
		}
	}

	if top.Holding != "" {
		if _, ok := objects[top.Holding]; !ok {
			return nil, fmt.Errorf("world fixture: holding references undefined object %q", top.Holding)
		}
		if placed[top.Holding] {
			return nil, fmt.Errorf("world fixture: held object %q is also placed in a stack", top.Holding)
		}
	}

	if top.Arm < 0 || top.Arm >= len(stacks) {
		return nil, fmt.Errorf("world fixture: arm position %d out of range [0, %d)", top.Arm, len(stacks))
	}

	return &blocks.World{
		Stacks:  stacks,
		Arm:     top.Arm,
		Holding: top.Holding,
		Objects: objects,
	}, nil
}

func toObjectDef(o object) (blocks.ObjectDef, error) {
	form, err := parseForm(o.Form)
	if err != nil {
		return blocks.ObjectDef{}, err
	}
	size, err := parseSize(o.Size)
	if err != nil {
		return blocks.ObjectDef{}, err
	}
	return blocks.ObjectDef{Form: form, Size: size, Color: blocks.Color(o.Color)}, nil
}

func parseForm(s string) (blocks.Form, error) {
	switch blocks.Form(s) {
	case blocks.FormBall, blocks.FormBox, blocks.FormBrick, blocks.FormPyramid, blocks.FormPlank, blocks.FormTable:
		return blocks.Form(s), nil
	default:
		return "", fmt.Errorf("unrecognized form %q", s)
	}
}

func parseSize(s string) (blocks.Size, error) {
	switch blocks.Size(s) {
	case blocks.SizeSmall, blocks.SizeLarge, blocks.SizeAny:
		return blocks.Size(s), nil
	default:
		return "", fmt.Errorf("unrecognized size %q", s)
	}
}
