package ssu

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"
)

type recordingRenderer struct {
	commits []*PropertyBlock
}

func (r *recordingRenderer) SetPropertyBlock(b *PropertyBlock) {
	r.commits = append(r.commits, b.Clone())
}

func (r *recordingRenderer) last() *PropertyBlock {
	if len(r.commits) == 0 {
		return nil
	}
	return r.commits[len(r.commits)-1]
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestSequencer(mode PlayMode, animators ...*PropertyAnimator) (*Sequencer, *recordingRenderer) {
	r := &recordingRenderer{}
	s := NewSequencer(r, animators...)
	s.PlayMode = mode
	s.Logger = quietLogger()
	s.Init()
	return s, r
}

func TestSequencerOneTime(t *testing.T) {
	fade := floatAnimator(0, 1)
	glow := NewPropertyAnimator("Glow", KindFloat)
	glow.Speed = 0.5
	s, r := newTestSequencer(PlayOneTime, fade, glow)

	s.Play()
	if !s.IsPlaying() || s.State() != StateDelaying {
		t.Fatalf("expected delaying after Play, got %v", s.State())
	}

	s.Tick(0.5)
	if s.State() != StateRunning {
		t.Fatalf("expected running, got %v", s.State())
	}
	if v, _ := r.last().Get("Fade"); v.Float != 0.5 {
		t.Fatalf("expected Fade 0.5, got %v", v)
	}

	s.Tick(0.5)
	if fade.Active {
		t.Fatalf("fade should be inactive once complete")
	}
	if !s.IsPlaying() {
		t.Fatalf("glow is still running")
	}

	s.Tick(1)
	if s.IsPlaying() {
		t.Fatalf("expected playback finished, state %v", s.State())
	}
	if s.PlaysLeft() != 0 {
		t.Fatalf("expected no plays left, got %d", s.PlaysLeft())
	}
	final := r.last()
	if v, _ := final.Get("Fade"); v.Float != 1 {
		t.Fatalf("expected Fade held at 1, got %v", v)
	}
	if v, _ := final.Get("Glow"); v.Float != 1 {
		t.Fatalf("expected Glow 1, got %v", v)
	}

	commits := len(r.commits)
	for i := 0; i < 10; i++ {
		s.Tick(0.1)
	}
	if len(r.commits) != commits {
		t.Fatalf("no writes expected after finishing, got %d more", len(r.commits)-commits)
	}

	s.Play()
	if !s.IsPlaying() {
		t.Fatalf("a finished one-time sequencer should replay")
	}
}

func TestSequencerInitialDelay(t *testing.T) {
	s, r := newTestSequencer(PlayOneTime, floatAnimator(0, 1))
	s.InitialDelay = 1

	s.Play()
	s.Tick(0.5)
	if len(r.commits) != 0 || s.State() != StateDelaying {
		t.Fatalf("nothing should be written during the delay")
	}
	s.Tick(0.75)
	if s.State() != StateRunning {
		t.Fatalf("expected running after delay, got %v", s.State())
	}
	if got := s.CurrentPlayTime(); !near(got, 0.25) {
		t.Fatalf("expected leftover 0.25 carried into play time, got %v", got)
	}
}

func TestSequencerBackAndForth(t *testing.T) {
	s, _ := newTestSequencer(PlayBackAndForth, floatAnimator(0, 1))
	s.NumberOfPlays = 3
	s.DelayBetweenPlays = 0.5
	s.Init()

	s.Play()
	s.Tick(1)
	if !s.ReverseDirection() {
		t.Fatalf("expected reverse after first cycle")
	}
	if s.State() != StateCyclePause || s.PlaysLeft() != 2 {
		t.Fatalf("expected pause with 2 plays left, got %v/%d", s.State(), s.PlaysLeft())
	}

	s.Tick(0.25)
	if s.State() != StateCyclePause {
		t.Fatalf("still pausing, got %v", s.State())
	}
	s.Tick(0.25)
	if s.State() != StateRunning {
		t.Fatalf("expected running after pause, got %v", s.State())
	}
	if s.CurrentPlayTime() != 0 {
		t.Fatalf("a new cycle starts at zero, got %v", s.CurrentPlayTime())
	}

	s.Tick(1)
	if s.ReverseDirection() {
		t.Fatalf("expected direction restored after second cycle")
	}
	s.Tick(0.5)
	s.Tick(1)
	if s.IsPlaying() {
		t.Fatalf("expected finished after three plays, got %v", s.State())
	}
	if !s.ReverseDirection() {
		t.Fatalf("three cycles toggle direction three times")
	}
}

func TestSequencerOrder(t *testing.T) {
	first := floatAnimator(0, 1)
	first.PropertyName = "Shared"
	second := floatAnimator(10, 20)
	second.PropertyName = "Shared"

	cases := []struct {
		name  string
		order PlayOrder
		want  float32
	}{
		{"ascending_last_writer_wins", OrderAscending, 15},
		{"descending_first_declared_wins", OrderDescending, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, r := newTestSequencer(PlayOneTime, first, second)
			s.PlayOrder = c.order
			s.Play()
			s.Tick(0.5)
			if v, _ := r.last().Get("Shared"); v.Float != c.want {
				t.Fatalf("expected %v, got %v", c.want, v.Float)
			}
		})
	}
}

func TestSequencerLoopedForever(t *testing.T) {
	s, _ := newTestSequencer(PlayLooped, floatAnimator(0, 1))
	s.PlayForever = true
	s.Init()

	s.Play()
	for cycle := 0; cycle < 20; cycle++ {
		s.Tick(1)
		if !s.IsPlaying() {
			t.Fatalf("looped forever stopped after %d cycles", cycle)
		}
		s.Tick(0)
	}
}

func TestSequencerLoopedFiniteNeverPlays(t *testing.T) {
	s, r := newTestSequencer(PlayLooped, floatAnimator(0, 1))
	s.NumberOfPlays = 3
	s.Init()

	s.Play()
	s.Tick(0.5)
	if s.IsPlaying() || len(r.commits) != 0 {
		t.Fatalf("finite looped mode is refused by the play policy")
	}
}

func TestSequencerStopThenPlay(t *testing.T) {
	fade := floatAnimator(0, 1)
	glow := floatAnimator(0, 1)
	glow.PropertyName = "Glow"
	glow.Speed = 0.25
	s, r := newTestSequencer(PlayOneTime, fade, glow)

	s.Play()
	s.Tick(1)
	if fade.Active {
		t.Fatalf("fade should have completed")
	}

	s.Stop()
	if s.IsPlaying() || s.State() != StateStopped {
		t.Fatalf("expected stopped, got %v", s.State())
	}
	if !r.last().IsEmpty() {
		t.Fatalf("stop must commit a cleared block")
	}
	if s.CurrentPlayTime() != 0 {
		t.Fatalf("stop must rewind play time")
	}

	s.Play()
	if s.CurrentPlayTime() != 0 {
		t.Fatalf("expected play time 0 after replay, got %v", s.CurrentPlayTime())
	}
	for _, anim := range s.Animators {
		if !anim.Active {
			t.Fatalf("animator %s not reactivated", anim.PropertyName)
		}
	}

	commits := len(r.commits)
	s.Tick(0)
	if len(r.commits) != commits+1 {
		t.Fatalf("expected one commit for the restarted run")
	}
}

func TestSequencerPartialFailure(t *testing.T) {
	var buf bytes.Buffer
	broken := floatAnimator(1, 1)
	broken.PropertyName = "Broken"
	unnamed := floatAnimator(0, 1)
	unnamed.PropertyName = ""
	good := floatAnimator(0, 1)

	s, r := newTestSequencer(PlayOneTime, broken, unnamed, good)
	s.Logger = log.New(&buf, "", 0)

	s.Play()
	s.Tick(0.5)
	if v, ok := r.last().Get("Fade"); !ok || v.Float != 0.5 {
		t.Fatalf("healthy animator must still update, got %v ok=%v", v, ok)
	}
	if _, ok := r.last().Get("Broken"); ok {
		t.Fatalf("broken animator must not write")
	}
	if !strings.Contains(buf.String(), "Broken") {
		t.Fatalf("expected a diagnostic for the broken animator, log: %q", buf.String())
	}
	if unnamed.Active {
		t.Fatalf("unnamed animator is skipped for the cycle")
	}

	s.Tick(0.5)
	if !strings.Contains(buf.String(), "failed to evaluate") || strings.Count(buf.String(), "Broken") < 2 {
		t.Fatalf("broken animator should fail every tick, log: %q", buf.String())
	}
}

func TestSequencerUnnamedAnimatorDoesNotStallCycle(t *testing.T) {
	unnamed := floatAnimator(0, 1)
	unnamed.PropertyName = ""
	s, _ := newTestSequencer(PlayOneTime, unnamed, floatAnimator(0, 1))

	s.Play()
	s.Tick(1)
	if s.IsPlaying() || s.State() != StateStopped {
		t.Fatalf("one-time run should finish despite an unnamed animator, state %v", s.State())
	}
}

func TestSequencerNoRenderer(t *testing.T) {
	s := NewSequencer(nil, floatAnimator(0, 1))
	s.Logger = quietLogger()
	s.Play()
	if s.IsPlaying() {
		t.Fatalf("a sequencer without renderer must not play")
	}
}

func TestSequencerStartModes(t *testing.T) {
	cases := []struct {
		name    string
		mode    StartMode
		enable  bool
		start   bool
		playing bool
	}{
		{"on_enable_enabled", StartOnEnable, true, false, true},
		{"on_enable_started", StartOnEnable, false, true, false},
		{"on_start_started", StartOnStart, false, true, true},
		{"disabled", StartDisabled, true, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _ := newTestSequencer(PlayOneTime, floatAnimator(0, 1))
			s.StartMode = c.mode
			if c.enable {
				s.Enable()
			}
			if c.start {
				s.Start()
			}
			if s.IsPlaying() != c.playing {
				t.Fatalf("IsPlaying() = %v, want %v", s.IsPlaying(), c.playing)
			}
			s.Disable()
			if s.IsPlaying() {
				t.Fatalf("disable should stop playback")
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	if m, err := ParsePlayMode("back_and_forth"); err != nil || m != PlayBackAndForth {
		t.Fatalf("ParsePlayMode: %v %v", m, err)
	}
	if o, err := ParsePlayOrder("Descending"); err != nil || o != OrderDescending {
		t.Fatalf("ParsePlayOrder: %v %v", o, err)
	}
	if m, err := ParseStartMode("on_start"); err != nil || m != StartOnStart {
		t.Fatalf("ParseStartMode: %v %v", m, err)
	}
	if u, err := ParseUpdateType("late_update"); err != nil || u != UpdatePostFrame {
		t.Fatalf("ParseUpdateType: %v %v", u, err)
	}
	if _, err := ParsePlayMode("sideways"); err == nil {
		t.Fatalf("expected error for unknown play mode")
	}
}
