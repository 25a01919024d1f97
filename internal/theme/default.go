package theme

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/etude/internal/game"
)

type DefaultTheme struct {
}

type rgb struct {
	R, G, B uint8
}

const (
	noteSym = "⬤"
	bodySym = "│"
	barSym  = "-"
	mineSym = "⨯"
)

var statusColors = map[game.Status]rgb{
	game.StatusUpcoming:     {236, 236, 236}, // white
	game.StatusWaiting:      {236, 195, 0},   // yellow
	game.StatusHolding:      {0, 195, 236},   // cyan
	game.StatusHit:          {0, 236, 128},   // green
	game.StatusMissed:       {236, 30, 0},    // red
	game.StatusEarlyRelease: {236, 128, 0},   // orange
}

func statusColor(s game.Status) rgb {
	col, ok := statusColors[s]
	if !ok {
		return rgb{106, 106, 106}
	}
	return col
}

func paint(c rgb, sym string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, sym)
}

func (t *DefaultTheme) RenderNote(n *game.Note) string {
	return paint(statusColor(n.Status), noteSym)
}

func (t *DefaultTheme) RenderNoteBody(n *game.Note) string {
	c := statusColor(n.Status)
	if strings.Contains(n.Pitch, "#") {
		// Dim the body of accidentals so chords stay readable
		c = rgb{R: c.R / 2, G: c.G / 2, B: c.B / 2}
	}
	return paint(c, bodySym)
}

func (t *DefaultTheme) RenderHitField(accidental bool) string {
	if accidental {
		return paint(rgb{106, 106, 106}, barSym)
	}
	return barSym
}
