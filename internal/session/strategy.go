package session

import (
	"fmt"
	"time"
)

// Mode selects the matching discipline.
type Mode uint8

const (
	// ModeWindow credits a tap landing inside the hit window.
	ModeWindow Mode = iota
	// ModeHold requires each note to be held for its full duration
	// and blocks song time on unresolved chords.
	ModeHold
)

func (m Mode) String() string {
	if m == ModeHold {
		return "hold"
	}
	return "window"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "hold":
		return ModeHold, nil
	case "window":
		return ModeWindow, nil
	}
	return ModeWindow, fmt.Errorf("unknown matching mode %q", s)
}

// Strategy resolves how key events map onto timeline notes. Both
// implementations mutate note status only through their Timeline and
// report outcomes to the ScoreTracker.
type Strategy interface {
	Mode() Mode

	// Advance applies all time-driven transitions due at now.
	Advance(now time.Time)

	NoteOn(pitch string, now time.Time)
	NoteOff(pitch string, now time.Time)

	// Waiting reports whether a chord gate is blocking song time.
	Waiting() bool

	// Shift moves any in-flight press timestamps forward, used when
	// resuming so holds do not accrue paused wall time.
	Shift(d time.Duration)

	Reset()
}
