package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ssu/ecs"
	"github.com/milk9111/ssu/ecs/component"
	"github.com/milk9111/ssu/ecs/system"
	"github.com/milk9111/ssu/prefabs"
	"github.com/milk9111/ssu/render"
	"github.com/milk9111/ssu/shaders"
	"github.com/milk9111/ssu/ssu"
	"golang.design/x/clipboard"
)

const (
	screenWidth  = 480
	screenHeight = 270
)

var shaderSources = map[string][]byte{
	"frozen": shaders.FrozenSource,
}

type Options struct {
	Effect    string
	ImagePath string
	Watch     bool
	Debug     bool
	Scale     float64
}

// Game previews one effect: a sprite entity with a sequencer and a binder.
type Game struct {
	opts Options

	world   *ecs.World
	renders *render.RenderSystem
	entity  ecs.Entity
	sprite  *ebiten.Image
	shaders map[string]*ebiten.Shader

	material *render.ShaderMaterial
	renderer *render.SpriteRenderer
	seq      *ssu.Sequencer
	binder   *ssu.Binder
	frozen   shaders.Frozen

	watcher     *prefabs.Watcher
	ui          *ebitenui.UI
	hud         *hud
	clipboardOK bool
	elapsed     float32
	status      string
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:    opts,
		renders: render.NewRenderSystem(),
		shaders: map[string]*ebiten.Shader{},
	}

	if opts.ImagePath != "" {
		img, err := render.LoadImage(opts.ImagePath)
		if err != nil {
			return nil, err
		}
		g.sprite = img
	} else {
		g.sprite = generateSprite(64, 64)
	}
	registerNoise(g.sprite.Bounds().Dx(), g.sprite.Bounds().Dy())

	if err := clipboard.Init(); err != nil {
		log.Printf("ssuplay: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if err := g.load(); err != nil {
		return nil, err
	}

	if opts.Watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("ssuplay: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.hud = newHUD(g)
	g.ui = g.hud.ui
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// load builds a fresh world for the effect prefab.
func (g *Game) load() error {
	spec, err := prefabs.LoadEffectSpec(g.opts.Effect)
	if err != nil {
		return err
	}
	shader, err := g.shader(spec.Shader)
	if err != nil {
		return err
	}

	uniforms := make([]render.Uniform, 0)
	for _, p := range shaders.FrozenProperties() {
		uniforms = append(uniforms, render.Uniform{Name: p.Name, Default: p.Default, Components: p.Components})
	}
	material, err := render.NewShaderMaterial(shader, uniforms...)
	if err != nil {
		return fmt.Errorf("prefabs: build %s: %w", spec.Name, err)
	}
	renderer := render.NewSpriteRenderer(g.sprite, material)

	seq, err := prefabs.BuildSequencer(spec.Sequencer, renderer)
	if err != nil {
		return fmt.Errorf("prefabs: build %s: %w", spec.Name, err)
	}
	seq.Debugging = seq.Debugging || g.opts.Debug

	g.frozen = shaders.NewFrozen()
	binder, err := prefabs.BuildBinder(spec.Binder, material, g.frozen.Bindings())
	if err != nil {
		return fmt.Errorf("prefabs: build %s: %w", spec.Name, err)
	}

	world := ecs.NewWorld()
	world.AddSystem(ecs.PhaseUpdate, system.NewSequencerSystem())
	update := system.NewBinderSystem(ecs.PhaseUpdate)
	update.PublishChanges = g.opts.Debug
	world.AddSystem(ecs.PhaseUpdate, update)
	world.AddSystem(ecs.PhaseLateUpdate, system.NewBinderSystem(ecs.PhaseLateUpdate))
	world.AddSystem(ecs.PhaseLateUpdate, &system.PropertyEventSystem{Handle: func(evt system.PropertyChangedEvent) {
		log.Printf("ssuplay: entity %v %s: %v -> %v", evt.Entity, evt.Change.Name, evt.Change.Previous, evt.Change.Current)
	}})

	e := ecs.CreateEntity(world)
	t := component.Identity()
	t.ScaleX, t.ScaleY = g.opts.Scale, g.opts.Scale
	sw, sh := g.sprite.Bounds().Dx(), g.sprite.Bounds().Dy()
	t.X = (screenWidth - float64(sw)*g.opts.Scale) / 2
	t.Y = (screenHeight - float64(sh)*g.opts.Scale) / 2
	if err := ecs.Add(world, e, component.TransformComponent, t); err != nil {
		return err
	}
	if err := ecs.Add(world, e, render.SpriteComponent, renderer); err != nil {
		return err
	}
	if err := ecs.Add(world, e, component.SequencerComponent, seq); err != nil {
		return err
	}
	if err := ecs.Add(world, e, component.BinderComponent, binder); err != nil {
		return err
	}

	g.world, g.entity = world, e
	g.material, g.renderer, g.seq, g.binder = material, renderer, seq, binder
	g.status = "loaded " + spec.Name
	return nil
}

func (g *Game) shader(name string) (*ebiten.Shader, error) {
	if name == "" {
		name = "frozen"
	}
	if s, ok := g.shaders[name]; ok {
		return s, nil
	}
	src, ok := shaderSources[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown shader %q", ssu.ErrInvalidConfiguration, name)
	}
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("ssuplay: compile shader %s: %w", name, err)
	}
	g.shaders[name] = s
	return s, nil
}

func (g *Game) reload() {
	if err := g.load(); err != nil {
		log.Printf("ssuplay: reload failed: %v", err)
		g.status = "reload failed"
		return
	}
	log.Printf("ssuplay: reloaded %s", g.opts.Effect)
}

func (g *Game) play() {
	g.seq.Play()
}

func (g *Game) stop() {
	g.seq.Stop()
}

// copyBlock puts the committed property block on the clipboard as YAML.
func (g *Game) copyBlock() {
	data, err := prefabs.MarshalBlock(g.renderer.PropertyBlock())
	if err != nil {
		log.Printf("ssuplay: marshal block: %v", err)
		return
	}
	if !g.clipboardOK {
		log.Printf("ssuplay: property block:\n%s", data)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "block copied"
}

func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.elapsed += dt

	if g.watcher != nil {
		changed, err := g.watcher.Poll()
		if err != nil {
			log.Printf("ssuplay: watch: %v", err)
		}
		if len(changed) > 0 {
			g.reload()
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyBlock()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		life, _ := ecs.Get(g.world, g.entity, component.LifecycleComponent)
		system.SetEnabled(g.world, g.entity, life == nil || !life.Enabled)
	}

	g.material.SetFloat("Time", g.elapsed)
	g.world.Update(dt)
	g.hud.refresh()
	g.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renders.Draw(g.world, screen)
	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
