package parser

import "git.lost.host/meutraa/etude/internal/game"

// Song is one parsed score source: notes sorted ascending by start
// time, filtered to the playable range. Sum identifies the source
// content for the history store.
type Song struct {
	Name  string
	Sum   string
	Notes []game.NoteSpec
}

type Parser interface {
	Parse(file string) (*Song, error)
}
