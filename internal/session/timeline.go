package session

import (
	"sort"
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

// Timeline owns the scheduled notes of one song. Notes are created in
// bulk at load, sorted ascending by start time, and only Timeline
// methods mutate their status. A sliding window over the sorted slice
// bounds per-frame work by the on-screen note count.
type Timeline struct {
	notes []game.Note

	// Active window. start only advances past finished notes,
	// end advances as notes come within the spawn lead.
	start, end int

	// How far ahead of its start time a note becomes relevant,
	// derived from the projection (band height / fall speed).
	lead time.Duration
}

func newTimeline(specs []game.NoteSpec, lead time.Duration) *Timeline {
	notes := make([]game.Note, len(specs))
	for i, spec := range specs {
		notes[i] = game.Note{
			Pitch:    spec.Pitch,
			Time:     spec.Time,
			Duration: spec.Duration,
		}
	}
	// The source is contractually sorted already, ties kept in
	// input order.
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})
	for i := range notes {
		notes[i].ID = i
	}
	return &Timeline{notes: notes, lead: lead}
}

func (t *Timeline) reset() {
	for i := range t.notes {
		t.notes[i].Status = game.StatusUpcoming
		t.notes[i].Y = 0
	}
	t.start, t.end = 0, 0
}

func (t *Timeline) note(id int) *game.Note {
	return &t.notes[id]
}

func (t *Timeline) slide(elapsed time.Duration) {
	for t.end < len(t.notes) && t.notes[t.end].Time-t.lead <= elapsed {
		t.end++
	}
	for t.start < t.end && t.notes[t.start].Status == game.StatusFinished {
		t.start++
	}
}

// match returns the earliest active note of the given pitch accepted
// by ok. Notes are sorted, so the first accepted candidate is the
// earliest-start-time one.
func (t *Timeline) match(pitch string, ok func(*game.Note) bool) *game.Note {
	for i := t.start; i < t.end; i++ {
		n := &t.notes[i]
		if n.Pitch != pitch {
			continue
		}
		if ok(n) {
			return n
		}
	}
	return nil
}

// missExpired marks active upcoming notes whose match horizon has
// passed and returns how many were missed this call.
func (t *Timeline) missExpired(elapsed time.Duration, horizon func(*game.Note) time.Duration) int {
	missed := 0
	for i := t.start; i < t.end; i++ {
		n := &t.notes[i]
		if n.Status == game.StatusUpcoming && elapsed > horizon(n) {
			n.Status = game.StatusMissed
			missed++
		}
	}
	return missed
}

// openGate moves the earliest due chord into waiting. Every upcoming
// note sharing that exact start time enters together.
func (t *Timeline) openGate(elapsed time.Duration) (time.Duration, bool) {
	for i := t.start; i < t.end; i++ {
		if t.notes[i].Status != game.StatusUpcoming || t.notes[i].Time > elapsed {
			continue
		}
		at := t.notes[i].Time
		for j := i; j < t.end; j++ {
			if t.notes[j].Time > at {
				break
			}
			if t.notes[j].Status == game.StatusUpcoming {
				t.notes[j].Status = game.StatusWaiting
			}
		}
		return at, true
	}
	return 0, false
}

// gateCleared reports whether no active note is still waiting to be
// struck or held.
func (t *Timeline) gateCleared() bool {
	for i := t.start; i < t.end; i++ {
		switch t.notes[i].Status {
		case game.StatusWaiting, game.StatusHolding:
			return false
		}
	}
	return true
}

// finishScrolled retires resolved notes whose trailing edge has
// passed the hit line. Presentation only, no score effect.
func (t *Timeline) finishScrolled(elapsed time.Duration) {
	for i := t.start; i < t.end; i++ {
		n := &t.notes[i]
		if n.Status != game.StatusFinished && n.Status.Terminal() && elapsed > n.End() {
			n.Status = game.StatusFinished
		}
	}
}

func (t *Timeline) complete() bool {
	if t.end != len(t.notes) {
		return false
	}
	for i := t.start; i < t.end; i++ {
		if !t.notes[i].Status.Terminal() {
			return false
		}
	}
	return true
}

// visible projects the active notes for rendering. The returned notes
// are copies; callers cannot reach timeline state through them.
func (t *Timeline) visible(proj Projector, elapsed time.Duration) []game.Note {
	notes := make([]game.Note, 0, t.end-t.start)
	for i := t.start; i < t.end; i++ {
		if t.notes[i].Status == game.StatusFinished {
			continue
		}
		n := t.notes[i]
		n.Y = proj.Lead(&n, elapsed)
		notes = append(notes, n)
	}
	return notes
}
