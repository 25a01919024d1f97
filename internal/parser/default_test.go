package parser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeScore(t *testing.T) string {
	t.Helper()

	s := smf.New()
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(100))
	tr.Add(0, midi.NoteOn(0, 60, 100)) // C4
	tr.Add(960, midi.NoteOff(0, 60))   // one quarter at 100bpm = 600ms
	tr.Add(0, midi.NoteOn(0, 62, 100)) // D4
	tr.Add(0, midi.NoteOn(0, 10, 100)) // below the piano, dropped
	tr.Add(480, midi.NoteOff(0, 62))
	tr.Add(0, midi.NoteOff(0, 10))
	tr.Close(0)
	s.Add(tr)

	file := filepath.Join(t.TempDir(), "phrase.mid")
	f, err := os.Create(file)
	if nil != err {
		t.Fatal("unable to create score file", err)
	}
	defer f.Close()
	if _, err := s.WriteTo(f); nil != err {
		t.Fatal("unable to write score file", err)
	}
	return file
}

func TestParse(t *testing.T) {
	p := &DefaultParser{}
	song, err := p.Parse(writeScore(t))
	if nil != err {
		t.Fatal("unable to parse score", err)
	}

	if song.Name != "phrase" {
		t.Log("name", song.Name)
		t.Fail()
	}
	if song.Sum == "" {
		t.Log("empty content sum")
		t.Fail()
	}

	if len(song.Notes) != 2 {
		t.Fatal("note count", len(song.Notes))
	}

	first, second := song.Notes[0], song.Notes[1]
	if first.Pitch != "C4" || first.Time != 0 || first.Duration != 600*time.Millisecond {
		t.Log("first note", first)
		t.Fail()
	}
	if second.Pitch != "D4" ||
		second.Time != 600*time.Millisecond ||
		second.Duration != 300*time.Millisecond {
		t.Log("second note", second)
		t.Fail()
	}
}

// A corrupt file must surface as an error, never as a nil song with a
// nil error, whatever the smf reader does with the broken chunk.
func TestParseCorruptFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "corrupt.mid")
	data := []byte("MThd\x00\x00\x00\x06\x00\x01\x00\x01\x01\xe0MTrk\xff\xff\xff\xff\x00")
	if err := os.WriteFile(file, data, 0o644); nil != err {
		t.Fatal("unable to write score file", err)
	}

	p := &DefaultParser{}
	song, err := p.Parse(file)
	if nil == err {
		t.Fatal("expected an error for corrupt data")
	}
	if nil != song {
		t.Log("song", song)
		t.Fail()
	}
}

func TestParseMissingFile(t *testing.T) {
	p := &DefaultParser{}
	if _, err := p.Parse(filepath.Join(t.TempDir(), "missing.mid")); nil == err {
		t.Fail()
	}
}
