package game

import (
	"time"
)

// Status is the lifecycle state of a scheduled note.
type Status uint8

const (
	StatusUpcoming Status = iota
	StatusWaiting
	StatusHolding
	StatusHit
	StatusMissed
	StatusEarlyRelease
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusWaiting:
		return "waiting"
	case StatusHolding:
		return "holding"
	case StatusHit:
		return "hit"
	case StatusMissed:
		return "missed"
	case StatusEarlyRelease:
		return "early_release"
	case StatusFinished:
		return "finished"
	}
	return "unknown"
}

// Terminal reports whether a note in this status can no longer affect
// the score. Finished is presentation-only and also terminal.
func (s Status) Terminal() bool {
	switch s {
	case StatusHit, StatusMissed, StatusEarlyRelease, StatusFinished:
		return true
	}
	return false
}

// NoteSpec is one record of a score source: a pitch to be struck at
// Time and held for Duration. Specs are immutable once loaded.
type NoteSpec struct {
	Pitch    string
	Time     time.Duration
	Duration time.Duration
}

type Note struct {
	ID       int
	Pitch    string
	Time     time.Duration // The time the note should be struck
	Duration time.Duration // How long the note should be held

	// This is state
	Status Status
	Y      float64 // Projected leading edge, rendering only
}

// End is the time the note should be released.
func (n *Note) End() time.Duration {
	return n.Time + n.Duration
}

type Score struct {
	Hits     uint64
	Misses   uint64
	Mistakes uint64
}

// Input is one normalized key event from any input source.
type Input struct {
	Pitch string
	On    bool
	When  time.Time
}
