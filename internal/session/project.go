package session

import (
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

// Projector converts note timing into the vertical pixel coordinate
// used by renderers. The band runs from y=0 at the top edge to
// y=Height at the hit line; notes fall at Speed pixels per second.
type Projector struct {
	Speed  float64 // pixels per second
	Height float64 // visible band height in pixels
}

// Lead is the y coordinate of the note's leading (bottom) edge. It
// equals Height exactly when elapsed reaches the note's start time.
func (p Projector) Lead(n *game.Note, elapsed time.Duration) float64 {
	return (elapsed - n.Time).Seconds()*p.Speed + p.Height
}

// PixelHeight is the rendered length of the note body.
func (p Projector) PixelHeight(n *game.Note) float64 {
	return n.Duration.Seconds() * p.Speed
}

// SpawnLead is how long before its start time a note enters the band.
func (p Projector) SpawnLead() time.Duration {
	return time.Duration(p.Height / p.Speed * float64(time.Second))
}

// Spawned reports whether the leading edge has entered the band.
func (p Projector) Spawned(n *game.Note, elapsed time.Duration) bool {
	return p.Lead(n, elapsed) >= 0
}

// Despawned reports whether the trailing edge has passed the hit
// line, at which point the timeline retires the note.
func (p Projector) Despawned(n *game.Note, elapsed time.Duration) bool {
	return p.Lead(n, elapsed)-p.PixelHeight(n) > p.Height
}
