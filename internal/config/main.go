package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song directory containing a .mid file").Required().ExistingDir()
	Mode        = kingpin.Flag("mode", "Matching discipline").Default("window").Short('m').Enum("window", "hold")
	Free        = kingpin.Flag("free", "Free play, no chart or score").Short('f').Bool()
	Window      = kingpin.Flag("window", "Hit window for the window discipline").Default("200ms").Short('w').Duration()
	Speed       = kingpin.Flag("speed", "Note fall speed in pixels per second").Default("180").Short('s').Float64()
	RowPixels   = kingpin.Flag("row-pixels", "Vertical pixels per terminal row").Default("18").Float64()
	Delay       = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	Transpose   = kingpin.Flag("transpose", "Semitones to shift the computer keyboard layout").Default("0").Short('t').Int()
	Keyboard    = kingpin.Flag("keyboard", "evdev device to read press/release input from").Default("").String()
	MidiPort    = kingpin.Flag("midi", "MIDI input port name").Default("").String()
	Listen      = kingpin.Flag("listen", "Address to serve the live score endpoint on").Default("").String()
	Database    = kingpin.Flag("database", "Practice history database path").Default("./history.db").String()
)

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
