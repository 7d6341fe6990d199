package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// EffectSpec is one shader effect prefab: the binder settings of its
// material and the sequencer animating it.
type EffectSpec struct {
	Name      string        `yaml:"name"`
	Shader    string        `yaml:"shader"`
	Binder    BinderSpec    `yaml:"binder"`
	Sequencer SequencerSpec `yaml:"sequencer"`
}

type BinderSpec struct {
	UpdateType string `yaml:"update_type"`
}

type SequencerSpec struct {
	StartMode         string         `yaml:"start_mode"`
	PlayOrder         string         `yaml:"play_order"`
	InitialDelay      float32        `yaml:"initial_delay"`
	PlayMode          string         `yaml:"play_mode"`
	PlayForever       bool           `yaml:"play_forever"`
	NumberOfPlays     int            `yaml:"number_of_plays"`
	DelayBetweenPlays float32        `yaml:"delay_between_plays"`
	Debugging         bool           `yaml:"debugging"`
	Animators         []AnimatorSpec `yaml:"animators"`
}

// AnimatorSpec describes one property animator. From and To are decoded
// according to Kind; omitted sides keep the animator defaults.
type AnimatorSpec struct {
	Property string    `yaml:"property"`
	Kind     string    `yaml:"kind"`
	Active   *bool     `yaml:"active"`
	Speed    *float32  `yaml:"speed"`
	Curve    CurveSpec `yaml:"curve"`
	From     yaml.Node `yaml:"from"`
	To       yaml.Node `yaml:"to"`
	// Script names a tengo file under scripts/ used as custom evaluation.
	Script string `yaml:"script"`
}

// CurveSpec is either a named ease or a list of keys. Keys win.
type CurveSpec struct {
	Ease string    `yaml:"ease"`
	Keys []KeySpec `yaml:"keys"`
}

type KeySpec struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
	In    float32 `yaml:"in"`
	Out   float32 `yaml:"out"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadEffectSpec(filename string) (*EffectSpec, error) {
	spec, err := LoadSpec[EffectSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(filename), ".yaml")
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if !strings.HasPrefix(value.Value, "#") {
		named, ok := colornames.Map[strings.ToLower(value.Value)]
		if !ok {
			return fmt.Errorf("unknown color name: %s", value.Value)
		}
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
