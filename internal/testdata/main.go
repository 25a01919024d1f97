package testdata

import (
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

// Notes is a fixed C major phrase used by the engine tests: four
// quarter notes and a closing two-note chord.
func Notes() []game.NoteSpec {
	q := 500 * time.Millisecond
	return []game.NoteSpec{
		{Pitch: "C4", Time: 0, Duration: q},
		{Pitch: "D4", Time: q, Duration: q},
		{Pitch: "E4", Time: 2 * q, Duration: q},
		{Pitch: "F4", Time: 3 * q, Duration: q},
		{Pitch: "C4", Time: 4 * q, Duration: 2 * q},
		{Pitch: "E4", Time: 4 * q, Duration: 2 * q},
	}
}
