package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canonical pitch names use sharps only, octave numbered so that
// C4 = MIDI key 60. The playable range is the 88-key piano.
const (
	LowestKey  uint8 = 21 // A0
	HighestKey uint8 = 108
)

var pitchClasses = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// KeyName returns the canonical name of a MIDI key, e.g. 61 -> "C#4".
func KeyName(key uint8) string {
	return fmt.Sprintf("%s%d", pitchClasses[key%12], int(key)/12-1)
}

// NameKey parses a canonical pitch name back into a MIDI key.
func NameKey(name string) (uint8, error) {
	for class := len(pitchClasses) - 1; class >= 0; class-- {
		if !strings.HasPrefix(name, pitchClasses[class]) {
			continue
		}
		octave, err := strconv.Atoi(name[len(pitchClasses[class]):])
		if nil != err {
			return 0, fmt.Errorf("bad octave in pitch %q: %w", name, err)
		}
		key := (octave+1)*12 + class
		if key < 0 || key > 127 {
			return 0, fmt.Errorf("pitch %q out of midi range", name)
		}
		return uint8(key), nil
	}
	return 0, fmt.Errorf("bad pitch name %q", name)
}

// Frequency returns the equal temperament frequency of a pitch name,
// A4 = 440 Hz. Unparseable names return 0.
func Frequency(name string) float64 {
	key, err := NameKey(name)
	if nil != err {
		return 0
	}
	return 440.0 * math.Pow(2, (float64(key)-69)/12)
}

// Playable reports whether a key is on the 88-key piano.
func Playable(key uint8) bool {
	return key >= LowestKey && key <= HighestKey
}
