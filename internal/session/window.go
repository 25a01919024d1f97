package session

import (
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

// windowStrategy scores timing accuracy: a note is hit by a tap
// landing between window-before-start and the end of its scheduled
// sound. Sustain is scored only negatively, by reverting the hit when
// the key is released before the note's end.
type windowStrategy struct {
	tl     *Timeline
	clk    *Clock
	score  *ScoreTracker
	window time.Duration

	// Held pitches and the note each one satisfied, for release
	// scoring.
	held map[string]int
}

func newWindowStrategy(tl *Timeline, clk *Clock, score *ScoreTracker, window time.Duration) *windowStrategy {
	return &windowStrategy{
		tl:     tl,
		clk:    clk,
		score:  score,
		window: window,
		held:   map[string]int{},
	}
}

func (w *windowStrategy) Mode() Mode { return ModeWindow }

// horizon is the last instant a note can still be matched, and the
// moment it is declared missed. Keeping both on one bound means
// matching and miss detection can never disagree about a note.
func (w *windowStrategy) horizon(n *game.Note) time.Duration {
	reach := w.window
	if n.Duration > reach {
		reach = n.Duration
	}
	return n.Time + reach
}

func (w *windowStrategy) Advance(now time.Time) {
	elapsed := w.clk.Elapsed(now)
	for i := 0; i < w.tl.missExpired(elapsed, w.horizon); i++ {
		w.score.Miss()
	}
}

func (w *windowStrategy) NoteOn(pitch string, now time.Time) {
	elapsed := w.clk.Elapsed(now)
	n := w.tl.match(pitch, func(n *game.Note) bool {
		return n.Status == game.StatusUpcoming &&
			elapsed > n.Time-w.window &&
			elapsed < w.horizon(n)
	})
	if nil == n {
		w.score.Mistake()
		return
	}
	n.Status = game.StatusHit
	w.score.Hit()
	w.held[pitch] = n.ID
}

func (w *windowStrategy) NoteOff(pitch string, now time.Time) {
	id, ok := w.held[pitch]
	if !ok {
		return
	}
	delete(w.held, pitch)
	n := w.tl.note(id)
	if n.Status != game.StatusHit {
		return
	}
	if w.clk.Elapsed(now) < n.End() {
		n.Status = game.StatusEarlyRelease
		w.score.RevertHit()
	}
}

func (w *windowStrategy) Waiting() bool { return false }

func (w *windowStrategy) Shift(time.Duration) {}

func (w *windowStrategy) Reset() {
	w.held = map[string]int{}
}
