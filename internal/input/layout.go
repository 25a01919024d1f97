package input

import "git.lost.host/meutraa/etude/internal/game"

// QWERTY layout: naturals on the home row starting at C4 under A,
// accidentals on the row above sitting between their naturals, the
// same shape the keys have on a piano.
var keyNotes = map[uint16]uint8{
	30: 60, // a  C4
	17: 61, // w  C#4
	31: 62, // s  D4
	18: 63, // e  D#4
	32: 64, // d  E4
	33: 65, // f  F4
	20: 66, // t  F#4
	34: 67, // g  G4
	21: 68, // y  G#4
	35: 69, // h  A4
	22: 70, // u  A#4
	36: 71, // j  B4
	37: 72, // k  C5
	24: 73, // o  C#5
	38: 74, // l  D5
	25: 75, // p  D#5
	39: 76, // ;  E5
	40: 77, // '  F5
}

// PitchFor maps an evdev key code to a canonical pitch name, shifted
// by transpose semitones. Unmapped or out-of-range keys report false.
func PitchFor(code uint16, transpose int) (string, bool) {
	key, ok := keyNotes[code]
	if !ok {
		return "", false
	}
	shifted := int(key) + transpose
	if shifted < int(game.LowestKey) || shifted > int(game.HighestKey) {
		return "", false
	}
	return game.KeyName(uint8(shifted)), true
}
