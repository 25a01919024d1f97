package input

import (
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"git.lost.host/meutraa/etude/internal/game"
)

// ReadMIDI streams note events from a hardware MIDI input port. The
// returned stop function detaches the listener.
func ReadMIDI(port string, events chan<- game.Input) (func(), error) {
	in, err := midi.FindInPort(port)
	if nil != err {
		return nil, fmt.Errorf("unable to find midi input %q: %w", port, err)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			if !game.Playable(key) {
				return
			}
			events <- game.Input{Pitch: game.KeyName(key), On: true, When: time.Now()}
		case msg.GetNoteEnd(&ch, &key):
			if !game.Playable(key) {
				return
			}
			events <- game.Input{Pitch: game.KeyName(key), On: false, When: time.Now()}
		}
	})
	if nil != err {
		return nil, fmt.Errorf("unable to listen to midi input: %w", err)
	}
	return func() { stop() }, nil
}
