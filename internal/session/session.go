package session

import (
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

// State is the lifecycle of one practice run.
type State uint8

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateWaitingForInput
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateWaitingForInput:
		return "waitingForInput"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// PlayMode selects between scored practice and free play.
type PlayMode uint8

const (
	PlayAssisted PlayMode = iota
	PlayFree
)

var (
	ErrEmptyScore  = errors.New("score has no notes")
	ErrInvalidNote = errors.New("invalid note")
)

const (
	DefaultWindow = 200 * time.Millisecond
	DefaultSpeed  = 180.0 // pixels per second
	DefaultHeight = 720.0 // pixels
)

type Option func(*Session)

func WithMode(m Mode) Option {
	return func(s *Session) { s.mode = m }
}

func WithWindow(d time.Duration) Option {
	return func(s *Session) { s.window = d }
}

func WithProjection(speed, height float64) Option {
	return func(s *Session) { s.proj = Projector{Speed: speed, Height: height} }
}

func WithFreePlay() Option {
	return func(s *Session) { s.play = PlayFree }
}

// Frame is the per-tick projection consumed by renderers.
type Frame struct {
	Notes   []game.Note
	State   State
	Score   game.Score
	Elapsed time.Duration
}

// Session composes the clock, timeline, matching strategy and score
// tracker into one state machine. All methods take explicit
// timestamps; the session never reads the wall clock itself, and all
// of its state is owned by the single caller goroutine.
type Session struct {
	mode   Mode
	play   PlayMode
	window time.Duration
	proj   Projector

	state    State
	clock    Clock
	timeline *Timeline
	tracker  ScoreTracker
	strategy Strategy

	// Physically held pitches, for duplicate event suppression.
	held map[string]bool

	pauseBegin time.Time
	pendingOff []string
}

// New builds an idle session for the given score source. The source
// must be non-empty with positive durations, non-negative start times
// and canonical pitch names.
func New(specs []game.NoteSpec, opts ...Option) (*Session, error) {
	s := &Session{
		window: DefaultWindow,
		proj:   Projector{Speed: DefaultSpeed, Height: DefaultHeight},
		held:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.install(specs); nil != err {
		return nil, err
	}
	return s, nil
}

func validate(specs []game.NoteSpec) error {
	if len(specs) == 0 {
		return ErrEmptyScore
	}
	for i, spec := range specs {
		if spec.Time < 0 {
			return fmt.Errorf("note %d starts before the song: %w", i, ErrInvalidNote)
		}
		if spec.Duration <= 0 {
			return fmt.Errorf("note %d has no duration: %w", i, ErrInvalidNote)
		}
		if _, err := game.NameKey(spec.Pitch); nil != err {
			return fmt.Errorf("note %d: %w", i, err)
		}
	}
	return nil
}

func (s *Session) install(specs []game.NoteSpec) error {
	if err := validate(specs); nil != err {
		return err
	}
	s.timeline = newTimeline(specs, s.proj.SpawnLead())
	s.rebuildStrategy()
	s.tracker.Reset()
	s.held = map[string]bool{}
	s.pendingOff = nil
	s.state = StateIdle
	return nil
}

func (s *Session) rebuildStrategy() {
	switch s.mode {
	case ModeHold:
		s.strategy = newHoldStrategy(s.timeline, &s.clock, &s.tracker)
	default:
		s.strategy = newWindowStrategy(s.timeline, &s.clock, &s.tracker, s.window)
	}
}

// stop synchronously tears down the current run: pending holds and
// gates are discarded before this returns.
func (s *Session) stop() {
	s.strategy.Reset()
	s.timeline.reset()
	s.tracker.Reset()
	s.held = map[string]bool{}
	s.pendingOff = nil
	s.state = StateIdle
}

// Reset replaces the score source. On an invalid source the old
// timeline is kept but the session stays idle.
func (s *Session) Reset(specs []game.NoteSpec) error {
	s.stop()
	return s.install(specs)
}

// SetMode switches the matching discipline and resets the run.
func (s *Session) SetMode(m Mode) {
	s.stop()
	s.mode = m
	s.rebuildStrategy()
}

// SetPlayMode switches between assisted practice and free play and
// resets the run.
func (s *Session) SetPlayMode(p PlayMode) {
	s.stop()
	s.play = p
}

func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) State() State          { return s.state }
func (s *Session) Projection() Projector { return s.proj }
func (s *Session) Snapshot() game.Score  { return s.tracker.Snapshot() }

// Start begins a run from the top, also when called mid-run.
func (s *Session) Start(now time.Time) {
	s.stop()
	s.clock.Start(now)
	s.state = StatePlaying
}

func (s *Session) Pause(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.pauseBegin = now
	s.clock.Pause(now)
	s.state = StatePaused
}

func (s *Session) Resume(now time.Time) {
	if s.state != StatePaused {
		return
	}
	// An open chord gate keeps the clock frozen through the resume.
	if !s.strategy.Waiting() {
		s.clock.Resume(now)
	}
	s.strategy.Shift(now.Sub(s.pauseBegin))
	s.state = StatePlaying
	for _, pitch := range s.pendingOff {
		s.strategy.NoteOff(pitch, now)
	}
	s.pendingOff = nil
}

// NoteOn feeds one key press. A no-op while idle or finished, while
// the pitch is already held, and (beyond held-state tracking) while
// paused or in free play.
func (s *Session) NoteOn(pitch string, now time.Time) {
	if s.state != StatePlaying && s.state != StatePaused {
		return
	}
	if s.held[pitch] {
		return
	}
	s.held[pitch] = true
	if s.state != StatePlaying || s.play == PlayFree {
		return
	}
	s.advance(now)
	if s.state != StatePlaying {
		return
	}
	s.strategy.NoteOn(pitch, now)
}

// NoteOff feeds one key release. Releases while paused are deferred
// until Resume so no timeline mutation happens during a pause.
func (s *Session) NoteOff(pitch string, now time.Time) {
	if !s.held[pitch] {
		return
	}
	delete(s.held, pitch)
	if s.play == PlayFree {
		return
	}
	switch s.state {
	case StatePaused:
		s.pendingOff = append(s.pendingOff, pitch)
	case StatePlaying:
		s.advance(now)
		s.strategy.NoteOff(pitch, now)
	}
}

// advance applies every transition due at now. Safe to run at any
// wall-clock instant, not only tick boundaries.
func (s *Session) advance(now time.Time) {
	s.timeline.slide(s.clock.Elapsed(now))
	s.strategy.Advance(now)
	// The strategy may have frozen or resumed the clock.
	elapsed := s.clock.Elapsed(now)
	s.timeline.finishScrolled(elapsed)
	s.timeline.slide(elapsed)
	if s.timeline.complete() {
		s.state = StateFinished
	}
}

// Tick advances the session to now and returns the render frame.
// Idempotent: a second call with an equal now returns an identical
// frame and leaves the score unchanged.
func (s *Session) Tick(now time.Time) Frame {
	if s.state == StatePlaying && s.play != PlayFree {
		s.advance(now)
	}
	return s.frame(now)
}

func (s *Session) frame(now time.Time) Frame {
	if s.state == StateIdle {
		return Frame{State: StateIdle, Score: s.tracker.Snapshot()}
	}
	state := s.state
	if state == StatePlaying && s.strategy.Waiting() {
		state = StateWaitingForInput
	}
	f := Frame{
		State:   state,
		Score:   s.tracker.Snapshot(),
		Elapsed: s.clock.Elapsed(now),
	}
	if s.play != PlayFree {
		f.Notes = s.timeline.visible(s.proj, f.Elapsed)
	}
	return f
}
