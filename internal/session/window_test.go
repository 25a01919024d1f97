package session

import (
	"testing"
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

func newWindowSession(t *testing.T, specs []game.NoteSpec) *Session {
	t.Helper()
	s, err := New(specs, WithMode(ModeWindow))
	if nil != err {
		t.Fatal("unable to create session", err)
	}
	return s
}

// A tap inside the window hits, outside it does not match the note.
// A far-off closing note keeps the song running through every case.
func TestWindowBoundary(t *testing.T) {
	tests := map[time.Duration]game.Score{
		-199 * time.Millisecond: {Hits: 1},
		199 * time.Millisecond:  {Hits: 1},
		-201 * time.Millisecond: {Mistakes: 1},
		// Past the horizon the note is missed first, the tap then
		// matches nothing
		201 * time.Millisecond: {Misses: 1, Mistakes: 1},
	}
	for offset, expected := range tests {
		s := newWindowSession(t, []game.NoteSpec{
			{Pitch: "E4", Time: time.Second, Duration: 100 * time.Millisecond},
			{Pitch: "G4", Time: 10 * time.Second, Duration: 100 * time.Millisecond},
		})
		s.Start(at(0))
		s.NoteOn("E4", at(0).Add(time.Second+offset))
		if score := s.Snapshot(); score != expected {
			t.Log("offset  ", offset)
			t.Log("score   ", score)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

// A tap that arrives once the last note has already expired lands on
// a finished song and is dropped rather than charged.
func TestWindowTapAfterFinish(t *testing.T) {
	s := newWindowSession(t, []game.NoteSpec{
		{Pitch: "E4", Time: time.Second, Duration: 100 * time.Millisecond},
	})
	s.Start(at(0))
	s.NoteOn("E4", at(1201))
	if st := s.State(); st != StateFinished {
		t.Fatal("state after expiry", st)
	}
	if score, expected := s.Snapshot(), (game.Score{Misses: 1}); score != expected {
		t.Log("score   ", score)
		t.Log("expected", expected)
		t.Fail()
	}
}

// A note stays matchable through its scheduled sound even past the
// strict window, so long sustained notes can be picked up late.
func TestWindowMatchDuringSustain(t *testing.T) {
	s := newWindowSession(t, []game.NoteSpec{
		{Pitch: "D4", Time: 500 * time.Millisecond, Duration: 500 * time.Millisecond},
	})
	s.Start(at(0))
	s.NoteOn("D4", at(900))
	if score := s.Snapshot(); score.Hits != 1 || score.Misses != 0 {
		t.Log("score", score)
		t.Fail()
	}
}

func TestWindowEarlyRelease(t *testing.T) {
	s := newWindowSession(t, []game.NoteSpec{
		{Pitch: "C4", Time: 0, Duration: 500 * time.Millisecond},
	})
	s.Start(at(0))
	s.NoteOn("C4", at(100))
	if score := s.Snapshot(); score.Hits != 1 {
		t.Fatal("expected a hit, got", score)
	}

	s.NoteOff("C4", at(300))
	score := s.Snapshot()
	if score.Hits != 0 || score.Mistakes != 1 {
		t.Log("score after early release", score)
		t.Fail()
	}
	if st := s.timeline.note(0).Status; st != game.StatusEarlyRelease {
		t.Log("status after early release", st)
		t.Fail()
	}

	// A second release of the same pitch cannot double-charge
	s.NoteOff("C4", at(350))
	if score := s.Snapshot(); score.Mistakes != 1 {
		t.Log("score after duplicate release", score)
		t.Fail()
	}
}

func TestWindowReleaseAfterEnd(t *testing.T) {
	s := newWindowSession(t, []game.NoteSpec{
		{Pitch: "C4", Time: 0, Duration: 500 * time.Millisecond},
	})
	s.Start(at(0))
	s.NoteOn("C4", at(100))
	s.NoteOff("C4", at(600))
	score := s.Snapshot()
	if score.Hits != 1 || score.Mistakes != 0 {
		t.Log("score after full release", score)
		t.Fail()
	}
	// The trailing edge has scrolled past the hit line by 600ms, so
	// the hit note has already been retired.
	if st := s.timeline.note(0).Status; st != game.StatusFinished {
		t.Log("status after full release", st)
		t.Fail()
	}
}

// When two notes of one pitch are matchable at once, the earlier one
// is credited first.
func TestWindowTieBreak(t *testing.T) {
	s := newWindowSession(t, []game.NoteSpec{
		{Pitch: "C4", Time: 1000 * time.Millisecond, Duration: 200 * time.Millisecond},
		{Pitch: "C4", Time: 1300 * time.Millisecond, Duration: 200 * time.Millisecond},
	})
	s.Start(at(0))

	s.NoteOn("C4", at(1150))
	if st := s.timeline.note(0).Status; st != game.StatusHit {
		t.Fatal("first tap matched note", st)
	}
	if st := s.timeline.note(1).Status; st != game.StatusUpcoming {
		t.Fatal("second note already", st)
	}

	s.NoteOff("C4", at(1250))
	s.NoteOn("C4", at(1260))
	if st := s.timeline.note(1).Status; st != game.StatusHit {
		t.Log("second tap matched note", st)
		t.Fail()
	}
	if score := s.Snapshot(); score.Hits != 2 {
		t.Log("score", score)
		t.Fail()
	}
}

func TestWindowMissOnTick(t *testing.T) {
	s := newWindowSession(t, []game.NoteSpec{
		{Pitch: "D4", Time: 0, Duration: 300 * time.Millisecond},
	})
	s.Start(at(0))
	f := s.Tick(at(501))
	if f.Score.Misses != 1 {
		t.Log("score", f.Score)
		t.Fail()
	}
	if st := s.timeline.note(0).Status; st != game.StatusFinished && st != game.StatusMissed {
		t.Log("status", st)
		t.Fail()
	}
}
