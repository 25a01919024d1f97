package session

import (
	"testing"
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

var result float64

func TestProjection(t *testing.T) {
	p := Projector{Speed: 100, Height: 500}
	n := &game.Note{Time: 2 * time.Second, Duration: time.Second}

	if y := p.Lead(n, 2*time.Second); y != 500 {
		t.Log("leading edge at start time", y)
		t.Fail()
	}
	if y := p.Lead(n, 0); y != 300 {
		t.Log("leading edge at song start", y)
		t.Fail()
	}
	if h := p.PixelHeight(n); h != 100 {
		t.Log("pixel height", h)
		t.Fail()
	}
	if lead := p.SpawnLead(); lead != 5*time.Second {
		t.Log("spawn lead", lead)
		t.Fail()
	}
}

func TestProjectionSpawnWindow(t *testing.T) {
	p := Projector{Speed: 100, Height: 500}
	n := &game.Note{Time: 2 * time.Second, Duration: time.Second}

	// Eligible exactly when the leading edge reaches the top
	if p.Spawned(n, -3001*time.Millisecond) {
		t.Fail()
	}
	if !p.Spawned(n, -3*time.Second) {
		t.Fail()
	}

	// Retired once the trailing edge passes the hit line
	if p.Despawned(n, 3*time.Second) {
		t.Fail()
	}
	if !p.Despawned(n, 3010*time.Millisecond) {
		t.Fail()
	}
}

func BenchmarkLead(b *testing.B) {
	p := Projector{Speed: 180, Height: 720}
	n := &game.Note{Time: 12456 * time.Millisecond, Duration: 500 * time.Millisecond}
	total := 0.0
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		total += p.Lead(n, 13456*time.Millisecond)
	}

	result = total
}
