package lsys

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// Preset is a named parameter set as stored in a TOML file:
//
//	name = "koch"
//	axiom = "F"
//	iterations = 4
//	angle = 60
//	length = 2
//	branch_color = "#8b5a2b"
//
//	[rules]
//	F = "F-F++F-F"
//
// Rule keys must be single symbols; quote keys such as "+" and "[".
type Preset struct {
	Name        string            `toml:"name"`
	Axiom       string            `toml:"axiom"`
	Rules       map[string]string `toml:"rules"`
	Iterations  int               `toml:"iterations"`
	Angle       float64           `toml:"angle"`
	Length      float64           `toml:"length"`
	Twist       float64           `toml:"twist"`
	BranchColor string            `toml:"branch_color"`
	LeafColor   string            `toml:"leaf_color"`
}

// LoadPreset reads and decodes a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lsys: cannot read preset %s: %w", path, err)
	}
	p, err := DecodePreset(data)
	if err != nil {
		return nil, fmt.Errorf("lsys: preset %s: %w", path, err)
	}
	return p, nil
}

// DecodePreset decodes a preset document. Missing length and colors take
// defaults; an explicit length is kept as written so Params.Validate can
// reject it.
func DecodePreset(data []byte) (*Preset, error) {
	var p Preset
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if !md.IsDefined("length") {
		p.Length = 1
	}
	if p.BranchColor == "" {
		p.BranchColor = DefaultBranchColor.Hex()
	}
	if p.LeafColor == "" {
		p.LeafColor = DefaultLeafColor.Hex()
	}
	return &p, nil
}

// Params converts the preset, validating rule keys and colors. The result
// still needs Params.Validate before use.
func (p *Preset) Params() (Params, error) {
	rules := make(Rules, len(p.Rules))
	for k, v := range p.Rules {
		if len(k) != 1 {
			return Params{}, fmt.Errorf("%w: key %q must be a single symbol", ErrInvalidRule, k)
		}
		rules[k[0]] = v
	}
	branch, err := ParseColor(p.BranchColor)
	if err != nil {
		return Params{}, fmt.Errorf("branch_color: %w", err)
	}
	leaf, err := ParseColor(p.LeafColor)
	if err != nil {
		return Params{}, fmt.Errorf("leaf_color: %w", err)
	}

	return Params{
		Axiom:       p.Axiom,
		Rules:       rules,
		Iterations:  p.Iterations,
		Angle:       p.Angle,
		Length:      p.Length,
		Twist:       p.Twist,
		BranchColor: branch,
		LeafColor:   leaf,
	}, nil
}

// Built-in presets.
var builtinPresets = []Preset{
	{
		Name: "koch", Axiom: "F", Iterations: 4, Angle: 60, Length: 2,
		Rules: map[string]string{"F": "F-F++F-F"},
	},
	{
		Name: "sierpinski", Axiom: "A", Iterations: 6, Angle: 60, Length: 1,
		Rules: map[string]string{"A": "+B-A-B+", "B": "-A+B+A-"},
	},
	{
		Name: "dragon", Axiom: "FX", Iterations: 10, Angle: 90, Length: 1,
		Rules: map[string]string{"X": "X+YF+", "Y": "-FX-Y"},
	},
	{
		Name: "plant", Axiom: "X", Iterations: 5, Angle: 25, Length: 1,
		Rules: map[string]string{"X": "F+[[X]-X]-F[-FX]+X", "F": "FF"},
	},
	{
		Name: "bush3d", Axiom: "A", Iterations: 5, Angle: 22.5, Length: 1, Twist: 0.2,
		Rules: map[string]string{"A": "[&FXA]/////[&FXA]///////[&FXA]", "F": "S/////F", "S": "FX"},
	},
	{
		Name: "tree3d", Axiom: "F", Iterations: 4, Angle: 28, Length: 1, Twist: 0.3,
		Rules: map[string]string{"F": "F[&+FX][&-FX][^\\FX]F"},
	},
}

// Presets returns the built-in presets sorted by name, with default
// colors filled in. The returned slice is a copy.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	for i, p := range builtinPresets {
		p.Rules = cloneRules(p.Rules)
		p.BranchColor = DefaultBranchColor.Hex()
		p.LeafColor = DefaultLeafColor.Hex()
		out[i] = p
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupPreset returns the built-in preset with the given name.
func LookupPreset(name string) (*Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return &p, true
		}
	}
	return nil, false
}

func cloneRules(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
