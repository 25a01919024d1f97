package parser

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.lost.host/meutraa/etude/internal/game"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultParser reads Standard MIDI Files. Note-on/note-off pairs are
// matched first-in-first-out per key, tempo changes from any track
// apply globally, and everything outside the 88-key range is dropped.
type DefaultParser struct{}

type tempoChange struct {
	tick uint64
	bpm  float64
}

// tickTime converts an absolute tick to wall time across the tempo
// map. Changes must be sorted ascending by tick.
func tickTime(mt smf.MetricTicks, changes []tempoChange, tick uint64) time.Duration {
	total := time.Duration(0)
	bpm := 120.0
	last := uint64(0)
	for _, c := range changes {
		if c.tick >= tick {
			break
		}
		total += mt.Duration(bpm, uint32(c.tick-last))
		bpm = c.bpm
		last = c.tick
	}
	return total + mt.Duration(bpm, uint32(tick-last))
}

func (p *DefaultParser) Parse(file string) (song *Song, e error) {
	// The smf reader can panic on malformed chunk data
	defer func() {
		if r := recover(); nil != r {
			song, e = nil, fmt.Errorf("unable to parse score file: %v", r)
		}
	}()

	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read score file: %w", err)
	}
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if nil != err {
		return nil, fmt.Errorf("unable to parse score file: %w", err)
	}
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}

	// Tempo events apply to every track, wherever they are stored
	changes := []tempoChange{}
	for _, tr := range s.Tracks {
		tick := uint64(0)
		for _, ev := range tr {
			tick += uint64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				changes = append(changes, tempoChange{tick: tick, bpm: bpm})
			}
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].tick < changes[j].tick })

	notes := []game.NoteSpec{}
	for _, tr := range s.Tracks {
		tick := uint64(0)
		open := map[uint8][]time.Duration{}
		for _, ev := range tr {
			tick += uint64(ev.Delta)
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				open[key] = append(open[key], tickTime(mt, changes, tick))
			case ev.Message.GetNoteEnd(&ch, &key):
				starts := open[key]
				if len(starts) == 0 {
					continue
				}
				start := starts[0]
				open[key] = starts[1:]
				if !game.Playable(key) {
					continue
				}
				duration := tickTime(mt, changes, tick) - start
				if duration <= 0 {
					continue
				}
				notes = append(notes, game.NoteSpec{
					Pitch:    game.KeyName(key),
					Time:     start,
					Duration: duration,
				})
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Time < notes[j].Time })

	sum := sha256.Sum256(data)
	return &Song{
		Name:  strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		Sum:   base64.StdEncoding.EncodeToString(sum[:]),
		Notes: notes,
	}, nil
}
