// Command ssuinspect runs an effect prefab headless and shows its property
// block in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/ssu/prefabs"
	"github.com/milk9111/ssu/shaders"
	"github.com/milk9111/ssu/ssu"
)

const frameTime = 16 * time.Millisecond

// blockView keeps a copy of the last committed block.
type blockView struct {
	block   *ssu.PropertyBlock
	commits int
}

func (v *blockView) SetPropertyBlock(b *ssu.PropertyBlock) {
	v.block = b.Clone()
	v.commits++
}

type Inspector struct {
	screen tcell.Screen
	effect string

	material *ssu.MapMaterial
	view     *blockView
	seq      *ssu.Sequencer
	spec     *prefabs.EffectSpec

	timeScale float32
	err       error
}

func NewInspector(effect string) (*Inspector, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	in := &Inspector{screen: screen, effect: effect, timeScale: 1}
	in.load()
	return in, nil
}

func (in *Inspector) load() {
	in.err = nil
	spec, err := prefabs.LoadEffectSpec(in.effect)
	if err != nil {
		in.err = err
		return
	}
	view := &blockView{block: ssu.NewPropertyBlock()}
	seq, err := prefabs.BuildSequencer(spec.Sequencer, view)
	if err != nil {
		in.err = err
		return
	}
	seq.Logger = log.New(io.Discard, "", 0)
	in.spec, in.view, in.seq = spec, view, seq
	in.material = ssu.NewMapMaterial(shaders.FrozenDefaults())
	seq.Enable()
	seq.Start()
}

func (in *Inspector) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune || in.seq == nil && ev.Rune() != 'r' && ev.Rune() != 'q' {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			in.seq.Play()
		case 's':
			in.seq.Stop()
		case 'r':
			in.load()
		case '+':
			in.timeScale *= 2
		case '-':
			in.timeScale /= 2
		}
	case *tcell.EventResize:
		in.screen.Sync()
	}
	return true
}

func (in *Inspector) draw() {
	in.screen.Clear()
	title := tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	plain := tcell.StyleDefault
	override := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	in.print(0, 0, title, "ssuinspect "+in.effect)
	if in.err != nil {
		in.print(0, 2, tcell.StyleDefault.Foreground(tcell.ColorRed), in.err.Error())
		in.print(0, 4, dim, "r reload  q quit")
		in.screen.Show()
		return
	}

	s := in.seq
	in.print(0, 1, plain, fmt.Sprintf("%s  t=%.2f  plays=%d  reverse=%v  speed=x%g  commits=%d",
		s.State(), s.CurrentPlayTime(), s.PlaysLeft(), s.ReverseDirection(), in.timeScale, in.view.commits))

	y := 3
	for _, anim := range s.Animators {
		bar := progressBar(anim.Progress(), 20)
		style := plain
		if !anim.Active {
			style = dim
		}
		in.print(0, y, style, fmt.Sprintf("%-32s %s %5.1f%%", anim.DisplayName(), bar, anim.Progress()))
		y++
	}

	y++
	for _, name := range in.material.Names() {
		v, _ := in.material.Get(name)
		style := dim
		if o, ok := in.view.block.Get(name); ok {
			v, style = o, override
		}
		in.print(0, y, style, fmt.Sprintf("%-32s %s", name, v))
		y++
	}

	in.print(0, y+1, dim, "space play  s stop  r reload  +/- time scale  q quit")
	in.screen.Show()
}

func (in *Inspector) print(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		in.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func progressBar(percent float32, width int) string {
	filled := int(percent / 100 * float32(width))
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '·'
		}
	}
	return string(bar)
}

func (in *Inspector) run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- in.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !in.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds()) * in.timeScale
			last = now
			if in.seq != nil {
				in.seq.Tick(dt)
			}
			in.draw()
		}
	}
}

func main() {
	effect := flag.String("effect", "frozen_in.yaml", "effect prefab in prefabs/")
	flag.Parse()

	in, err := NewInspector(*effect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer in.screen.Fini()

	in.run()
}
