package prefabs

import (
	"fmt"

	"github.com/milk9111/ssu/script"
	"github.com/milk9111/ssu/ssu"
	"gopkg.in/yaml.v3"
)

// BuildSequencer creates a sequencer drawing into r. Animator scripts are
// loaded and compiled here.
func BuildSequencer(spec SequencerSpec, r ssu.Renderer) (*ssu.Sequencer, error) {
	startMode, err := ssu.ParseStartMode(spec.StartMode)
	if err != nil {
		return nil, err
	}
	order, err := ssu.ParsePlayOrder(spec.PlayOrder)
	if err != nil {
		return nil, err
	}
	mode, err := ssu.ParsePlayMode(spec.PlayMode)
	if err != nil {
		return nil, err
	}
	if spec.InitialDelay < 0 || spec.DelayBetweenPlays < 0 {
		return nil, fmt.Errorf("%w: negative delay", ssu.ErrInvalidConfiguration)
	}

	animators := make([]*ssu.PropertyAnimator, 0, len(spec.Animators))
	for i, as := range spec.Animators {
		anim, err := BuildAnimator(as)
		if err != nil {
			return nil, fmt.Errorf("animator %d (%s): %w", i, as.Property, err)
		}
		animators = append(animators, anim)
	}

	seq := ssu.NewSequencer(r, animators...)
	seq.StartMode = startMode
	seq.PlayOrder = order
	seq.InitialDelay = spec.InitialDelay
	seq.PlayMode = mode
	seq.PlayForever = spec.PlayForever
	seq.NumberOfPlays = spec.NumberOfPlays
	seq.DelayBetweenPlays = spec.DelayBetweenPlays
	seq.Debugging = spec.Debugging
	seq.Init()
	return seq, nil
}

// BuildAnimator creates one animator. An empty property name is allowed;
// the sequencer skips such animators with a diagnostic.
func BuildAnimator(spec AnimatorSpec) (*ssu.PropertyAnimator, error) {
	kind, err := ssu.ParsePropertyKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	anim := ssu.NewPropertyAnimator(spec.Property, kind)
	if spec.Active != nil {
		anim.Active = *spec.Active
	}
	if spec.Speed != nil {
		anim.Speed = *spec.Speed
	}
	curve, err := BuildCurve(spec.Curve)
	if err != nil {
		return nil, err
	}
	if curve != nil {
		anim.Curve = curve
	}

	if err := decodeSide(anim, kind, &spec.From, true); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := decodeSide(anim, kind, &spec.To, false); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	if spec.Script != "" {
		src, err := LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("prefabs: load script %s: %w", spec.Script, err)
		}
		ev, err := script.Compile(spec.Script, src, kind)
		if err != nil {
			return nil, err
		}
		anim.Custom = ev.Func()
	}
	return anim, nil
}

// BuildCurve returns nil when spec is empty so the animator keeps Linear.
func BuildCurve(spec CurveSpec) (ssu.Curve, error) {
	if len(spec.Keys) > 0 {
		keys := make([]ssu.Keyframe, len(spec.Keys))
		for i, k := range spec.Keys {
			keys[i] = ssu.Keyframe{Time: k.Time, Value: k.Value, InTangent: k.In, OutTangent: k.Out}
		}
		return ssu.NewKeyframeCurve(keys...), nil
	}
	if spec.Ease == "" {
		return nil, nil
	}
	return ssu.EaseByName(spec.Ease)
}

// BuildBinder binds table to m with the spec's update type.
func BuildBinder(spec BinderSpec, m ssu.Material, table *ssu.BindingTable) (*ssu.Binder, error) {
	updateType, err := ssu.ParseUpdateType(spec.UpdateType)
	if err != nil {
		return nil, err
	}
	b := ssu.NewBinder(m, table)
	b.UpdateType = updateType
	return b, nil
}

func isUnset(node *yaml.Node) bool {
	return node == nil || node.Kind == 0
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

// decodeSide writes node into the A (from) or B (to) side of anim. A null
// vector or texture clears that side.
func decodeSide(anim *ssu.PropertyAnimator, kind ssu.PropertyKind, node *yaml.Node, from bool) error {
	if isUnset(node) {
		return nil
	}
	switch kind {
	case ssu.KindFloat:
		var f float32
		if err := node.Decode(&f); err != nil {
			return err
		}
		if from {
			anim.FloatA = f
		} else {
			anim.FloatB = f
		}
	case ssu.KindInt:
		var i int
		if err := node.Decode(&i); err != nil {
			return err
		}
		if from {
			anim.IntA = i
		} else {
			anim.IntB = i
		}
	case ssu.KindColor:
		c, err := decodeColor(node)
		if err != nil {
			return err
		}
		if from {
			anim.ColorA = c
		} else {
			anim.ColorB = c
		}
	case ssu.KindVector:
		var v *ssu.Vec4
		if !isNull(node) {
			vec, err := decodeVector(node)
			if err != nil {
				return err
			}
			v = &vec
		}
		if from {
			anim.VectorA = v
		} else {
			anim.VectorB = v
		}
	case ssu.KindTexture:
		var id string
		if !isNull(node) {
			if err := node.Decode(&id); err != nil {
				return err
			}
		}
		if from {
			anim.TextureA = ssu.TextureID(id)
		} else {
			anim.TextureB = ssu.TextureID(id)
		}
	default:
		return fmt.Errorf("%w: %v", ssu.ErrUnsupportedValueType, kind)
	}
	return nil
}

func decodeColor(node *yaml.Node) (ssu.Color, error) {
	if node.Kind == yaml.SequenceNode {
		comps, err := decodeFloats(node, 3)
		if err != nil {
			return ssu.Color{}, err
		}
		return ssu.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
	}
	var c YAMLColor
	if err := node.Decode(&c); err != nil {
		return ssu.Color{}, err
	}
	return ssu.ColorFrom(c.Color), nil
}

func decodeVector(node *yaml.Node) (ssu.Vec4, error) {
	if node.Kind == yaml.ScalarNode {
		var f float32
		if err := node.Decode(&f); err != nil {
			return ssu.Vec4{}, err
		}
		return ssu.Vec4{X: f, Y: f, Z: f, W: f}, nil
	}
	comps, err := decodeFloats(node, 1)
	if err != nil {
		return ssu.Vec4{}, err
	}
	if len(node.Content) < 4 {
		comps[3] = 0
	}
	return ssu.Vec4{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}, nil
}

// decodeFloats reads between least and 4 floats. A missing fourth is 1.
func decodeFloats(node *yaml.Node, least int) ([4]float32, error) {
	out := [4]float32{0, 0, 0, 1}
	var comps []float32
	if err := node.Decode(&comps); err != nil {
		return out, err
	}
	if len(comps) < least || len(comps) > 4 {
		return out, fmt.Errorf("%w: expected %d to 4 components, got %d", ssu.ErrUnsupportedValueType, least, len(comps))
	}
	copy(out[:], comps)
	return out, nil
}
