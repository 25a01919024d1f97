package session

import (
	"git.lost.host/meutraa/etude/internal/game"
)

// ScoreTracker aggregates matching outcomes. Counters only grow,
// except for RevertHit which moves one hit into mistakes.
type ScoreTracker struct {
	score game.Score
}

func (s *ScoreTracker) Hit() {
	s.score.Hits++
}

func (s *ScoreTracker) Miss() {
	s.score.Misses++
}

func (s *ScoreTracker) Mistake() {
	s.score.Mistakes++
}

// RevertHit takes back the credit for an early-released note.
func (s *ScoreTracker) RevertHit() {
	if s.score.Hits > 0 {
		s.score.Hits--
	}
	s.score.Mistakes++
}

func (s *ScoreTracker) Reset() {
	s.score = game.Score{}
}

func (s *ScoreTracker) Snapshot() game.Score {
	return s.score
}
