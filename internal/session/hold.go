package session

import (
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

// activeHold records which note a held pitch is satisfying and when
// the press began. Hold progress is measured against wall-clock
// timestamps because song time is frozen while a gate is open.
type activeHold struct {
	id      int
	pressed time.Time
}

// holdStrategy requires each note to be held for its full duration.
// When a chord's start time arrives, the whole chord enters waiting
// and the clock pauses until every member resolves.
type holdStrategy struct {
	tl    *Timeline
	clk   *Clock
	score *ScoreTracker

	gated bool
	holds map[string]activeHold
}

func newHoldStrategy(tl *Timeline, clk *Clock, score *ScoreTracker) *holdStrategy {
	return &holdStrategy{
		tl:    tl,
		clk:   clk,
		score: score,
		holds: map[string]activeHold{},
	}
}

func (h *holdStrategy) Mode() Mode { return ModeHold }

func (h *holdStrategy) Advance(now time.Time) {
	for pitch, hold := range h.holds {
		n := h.tl.note(hold.id)
		if now.Sub(hold.pressed) >= n.Duration {
			n.Status = game.StatusHit
			h.score.Hit()
			delete(h.holds, pitch)
		}
	}

	if h.gated {
		if !h.tl.gateCleared() {
			return
		}
		h.gated = false
		h.clk.Resume(now)
	}

	if _, ok := h.tl.openGate(h.clk.Elapsed(now)); ok {
		h.gated = true
		h.clk.Pause(now)
	}
}

func (h *holdStrategy) NoteOn(pitch string, now time.Time) {
	if _, ok := h.holds[pitch]; ok {
		return
	}
	n := h.tl.match(pitch, func(n *game.Note) bool {
		return n.Status == game.StatusWaiting
	})
	if nil == n {
		h.score.Mistake()
		return
	}
	n.Status = game.StatusHolding
	h.holds[pitch] = activeHold{id: n.ID, pressed: now}
}

func (h *holdStrategy) NoteOff(pitch string, now time.Time) {
	hold, ok := h.holds[pitch]
	if !ok {
		return
	}
	delete(h.holds, pitch)
	n := h.tl.note(hold.id)
	if n.Status != game.StatusHolding {
		return
	}
	if now.Sub(hold.pressed) >= n.Duration {
		n.Status = game.StatusHit
		h.score.Hit()
		return
	}
	// Let go too soon, the note goes back to waiting.
	n.Status = game.StatusWaiting
	h.score.Mistake()
}

func (h *holdStrategy) Waiting() bool { return h.gated }

func (h *holdStrategy) Shift(d time.Duration) {
	for pitch, hold := range h.holds {
		hold.pressed = hold.pressed.Add(d)
		h.holds[pitch] = hold
	}
}

func (h *holdStrategy) Reset() {
	h.gated = false
	h.holds = map[string]activeHold{}
}
