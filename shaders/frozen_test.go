package shaders

import (
	"bytes"
	"testing"

	"github.com/milk9111/ssu/ssu"
)

func TestFrozenBindingNames(t *testing.T) {
	var f Frozen
	table := f.Bindings()
	bindings := table.Bindings()
	if len(bindings) != 15 {
		t.Fatalf("expected 15 bindings, got %d", len(bindings))
	}
	defaults := FrozenDefaults()
	for _, b := range bindings {
		if _, ok := defaults[b.Name]; !ok {
			t.Fatalf("binding %q has no shader property", b.Name)
		}
		if !bytes.Contains(FrozenSource, []byte("var "+b.Name+" ")) {
			t.Fatalf("binding %q is not a uniform of frozen.kage", b.Name)
		}
	}
	for _, kw := range table.Keywords() {
		if !bytes.Contains(FrozenSource, []byte("var Keyword"+kw.Name+" float")) {
			t.Fatalf("keyword %q has no uniform", kw.Name)
		}
	}
}

func TestFrozenBinderRoundTrip(t *testing.T) {
	mat := ssu.NewMapMaterial(FrozenDefaults())
	var f Frozen
	b := NewFrozenBinder(mat, &f)
	b.Start()

	if f.SnowDensity != 0.5 || f.HighlightScale != (ssu.Vec2{X: 1, Y: 1}) {
		t.Fatalf("fields not read from the material: %+v", f)
	}
	if mat.IsKeywordEnabled(KeywordSnow) {
		t.Fatalf("keyword follows its field, which is false")
	}

	f.Fade = 1
	f.Snow = true
	b.SynchronizeToMaterial()
	if mat.Float("FrozenFade") != 1 || !mat.IsKeywordEnabled(KeywordSnow) {
		t.Fatalf("sync did not reach the material")
	}
	if v := mat.Vector("FrozenSnowScale"); v != (ssu.Vec4{X: 1, Y: 1}) {
		t.Fatalf("vec2 written as %v", v)
	}
}

func TestNewFrozenEnablesKeywords(t *testing.T) {
	mat := ssu.NewMapMaterial(FrozenDefaults())
	f := NewFrozen()
	b := NewFrozenBinder(mat, &f)
	b.Start()

	for _, kw := range []string{KeywordSnow, KeywordHighlight} {
		if !mat.IsKeywordEnabled(kw) {
			t.Fatalf("keyword %s should start enabled", kw)
		}
	}

	f.Highlight = false
	b.SynchronizeToMaterial()
	if mat.IsKeywordEnabled(KeywordHighlight) || !mat.IsKeywordEnabled(KeywordSnow) {
		t.Fatalf("keywords should follow their fields after sync")
	}
}
