package ssu

import (
	"fmt"
	"log"
	"slices"
	"strings"
)

type StartMode int

const (
	StartDisabled StartMode = iota
	StartOnEnable
	StartOnStart
)

// PlayOrder is the order animators write into the block. Ascending is FIFO.
type PlayOrder int

const (
	OrderAscending PlayOrder = iota
	OrderDescending
)

type PlayMode int

const (
	PlayOneTime PlayMode = iota
	PlayBackAndForth
	PlayLooped
)

// State is the sequencer's playback state.
type State int

const (
	StateIdle State = iota
	StateDelaying
	StateRunning
	StateCyclePause
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDelaying:
		return "delaying"
	case StateRunning:
		return "running"
	case StateCyclePause:
		return "cycle_pause"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func ParseStartMode(s string) (StartMode, error) {
	switch normalizeEnum(s) {
	case "", "onenable":
		return StartOnEnable, nil
	case "disabled":
		return StartDisabled, nil
	case "onstart":
		return StartOnStart, nil
	}
	return 0, fmt.Errorf("ssu: unknown start mode %q", s)
}

func ParsePlayOrder(s string) (PlayOrder, error) {
	switch normalizeEnum(s) {
	case "", "ascending", "asc":
		return OrderAscending, nil
	case "descending", "desc":
		return OrderDescending, nil
	}
	return 0, fmt.Errorf("ssu: unknown play order %q", s)
}

func ParsePlayMode(s string) (PlayMode, error) {
	switch normalizeEnum(s) {
	case "", "onetime", "once":
		return PlayOneTime, nil
	case "backandforth", "pingpong":
		return PlayBackAndForth, nil
	case "looped", "loop":
		return PlayLooped, nil
	}
	return 0, fmt.Errorf("ssu: unknown play mode %q", s)
}

func normalizeEnum(s string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// Sequencer plays an ordered list of animators into one property block and
// commits the block to its renderer once per tick. It is driven by Tick and
// never blocks.
type Sequencer struct {
	StartMode         StartMode
	PlayOrder         PlayOrder
	InitialDelay      float32
	PlayMode          PlayMode
	PlayForever       bool
	NumberOfPlays     int
	DelayBetweenPlays float32

	Animators []*PropertyAnimator
	Renderer  Renderer

	// Debugging logs every animator write.
	Debugging bool
	Logger    *log.Logger

	block       *PropertyBlock
	state       State
	elapsed     float32
	playTime    float32
	playsLeft   int
	reverse     bool
	finished    bool
	initialized bool
}

// NewSequencer creates a one-time sequencer that starts on enable.
func NewSequencer(r Renderer, animators ...*PropertyAnimator) *Sequencer {
	s := &Sequencer{
		StartMode: StartOnEnable,
		PlayMode:  PlayOneTime,
		Animators: animators,
		Renderer:  r,
	}
	s.Init()
	return s
}

// Init recomputes the remaining plays from the configuration. Call it after
// changing PlayMode, PlayForever or NumberOfPlays.
func (s *Sequencer) Init() {
	if s.block == nil {
		s.block = NewPropertyBlock()
	}
	if !s.PlayForever {
		if s.PlayMode == PlayOneTime {
			s.playsLeft = 1
		} else {
			s.playsLeft = s.NumberOfPlays
		}
	}
	s.finished = false
	s.initialized = true
}

func (s *Sequencer) State() State {
	return s.state
}

// IsPlaying reports whether a playback run is active, including its delays.
func (s *Sequencer) IsPlaying() bool {
	switch s.state {
	case StateDelaying, StateRunning, StateCyclePause:
		return true
	}
	return false
}

// CurrentPlayTime is the elapsed time of the current cycle.
func (s *Sequencer) CurrentPlayTime() float32 {
	return s.playTime
}

func (s *Sequencer) PlaysLeft() int {
	return s.playsLeft
}

// ReverseDirection flips after every completed back-and-forth cycle.
func (s *Sequencer) ReverseDirection() bool {
	return s.reverse
}

// Block is the shared property block. It belongs to the sequencer.
func (s *Sequencer) Block() *PropertyBlock {
	if s.block == nil {
		s.block = NewPropertyBlock()
	}
	return s.block
}

// Enable is the host's enable hook.
func (s *Sequencer) Enable() {
	if s.StartMode == StartOnEnable {
		s.Play()
	}
}

// Start is the host's first-frame hook.
func (s *Sequencer) Start() {
	if s.StartMode == StartOnStart {
		s.Play()
	}
}

// Disable is the host's disable hook; it stops playback.
func (s *Sequencer) Disable() {
	s.Stop()
}

// CanPlay applies the per-mode play policy. Looped mode only plays forever:
// a finite looped sequencer never has PlaysLeft below zero.
func (s *Sequencer) CanPlay() bool {
	switch s.PlayMode {
	case PlayOneTime:
		return s.playsLeft > 0
	case PlayBackAndForth:
		return s.PlayForever || s.playsLeft > 0
	case PlayLooped:
		return s.PlayForever || s.playsLeft < 0
	}
	return false
}

// Play starts a playback run. It is a no-op while playing, when the play
// policy refuses, or without a renderer.
func (s *Sequencer) Play() {
	if s.IsPlaying() {
		return
	}
	if !s.initialized || s.finished {
		s.Init()
	}
	if s.Renderer == nil {
		s.logger().Printf("ssu: sequencer has no renderer, not playing")
		return
	}
	if !s.CanPlay() {
		if s.Debugging {
			s.logger().Printf("ssu: sequencer cannot play (mode=%d plays_left=%d)", s.PlayMode, s.playsLeft)
		}
		return
	}

	s.playTime = 0
	s.elapsed = 0
	s.resetAnimators()
	s.state = StateDelaying
}

// Stop cancels playback, clears and commits the block and rewinds play time.
func (s *Sequencer) Stop() {
	s.state = StateStopped
	s.elapsed = 0
	s.playTime = 0
	s.Block().Clear()
	if s.Renderer != nil {
		s.Renderer.SetPropertyBlock(s.block)
	}
}

// Tick advances playback by dt seconds.
func (s *Sequencer) Tick(dt float32) {
	if dt < 0 {
		dt = 0
	}
	switch s.state {
	case StateDelaying:
		s.elapsed += dt
		if s.elapsed < s.InitialDelay {
			return
		}
		carry := s.elapsed - s.InitialDelay
		s.elapsed = 0
		s.state = StateRunning
		s.run(carry)
	case StateCyclePause:
		s.elapsed += dt
		if s.elapsed < s.DelayBetweenPlays {
			return
		}
		carry := s.elapsed - s.DelayBetweenPlays
		s.elapsed = 0
		s.playTime = 0
		s.state = StateRunning
		s.run(carry)
	case StateRunning:
		s.run(dt)
	}
}

func (s *Sequencer) run(dt float32) {
	if !s.CanPlay() {
		s.finish()
		return
	}
	s.playTime += dt

	block := s.Block()
	for _, anim := range s.ordered() {
		if anim == nil || !anim.Active {
			continue
		}
		if anim.PropertyName == "" {
			if s.Debugging {
				s.logger().Printf("ssu: skipped animator: %v", ErrMissingPropertyName)
			}
			anim.Active = false
			continue
		}
		s.execute(anim)
		if anim.IsComplete() {
			anim.Active = false
		}
	}
	if s.Renderer != nil {
		s.Renderer.SetPropertyBlock(block)
	}

	if !s.allInactive() {
		return
	}

	if !s.PlayForever && s.playsLeft > 0 {
		s.playsLeft--
	}
	if s.PlayMode == PlayBackAndForth {
		s.reverse = !s.reverse
	}
	s.resetAnimators()

	if !s.CanPlay() {
		s.finish()
		return
	}
	s.state = StateCyclePause
	s.elapsed = 0
}

func (s *Sequencer) finish() {
	s.state = StateStopped
	s.finished = true
}

// execute evaluates one animator and writes its value. Failures are logged
// and contained to that animator.
func (s *Sequencer) execute(anim *PropertyAnimator) {
	if anim.IsComplete() {
		return
	}

	value, err := anim.Evaluate(s.playTime)
	if err != nil {
		s.logger().Printf("ssu: failed to evaluate %q: %v", anim.PropertyName, err)
		return
	}
	if value.Kind == KindTexture && value.Texture == "" {
		s.logger().Printf("ssu: animator %q returned no texture", anim.PropertyName)
		return
	}
	if err := s.block.Set(anim.PropertyName, value); err != nil {
		s.logger().Printf("ssu: skipped write: %v", err)
		return
	}

	if s.Debugging {
		s.logger().Printf("ssu: %s = %v (%.1f%%)", anim.DisplayName(), value, anim.Progress())
	}
}

func (s *Sequencer) ordered() []*PropertyAnimator {
	descending := s.PlayOrder == OrderDescending
	if s.reverse {
		descending = !descending
	}
	if !descending {
		return s.Animators
	}
	out := slices.Clone(s.Animators)
	slices.Reverse(out)
	return out
}

func (s *Sequencer) allInactive() bool {
	for _, anim := range s.Animators {
		if anim != nil && anim.Active {
			return false
		}
	}
	return true
}

func (s *Sequencer) resetAnimators() {
	for _, anim := range s.Animators {
		if anim != nil {
			anim.Reset()
		}
	}
}

func (s *Sequencer) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
