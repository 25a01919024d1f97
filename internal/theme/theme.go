package theme

import "git.lost.host/meutraa/etude/internal/game"

type Theme interface {
	RenderNote(n *game.Note) string
	RenderNoteBody(n *game.Note) string
	RenderHitField(accidental bool) string
}
