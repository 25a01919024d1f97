package input

// #include <linux/input-event-codes.h>
// #include <linux/input.h>
import "C"

import (
	"encoding/binary"
	"log"
	"os"
	"syscall"
	"time"

	"git.lost.host/meutraa/etude/internal/game"
)

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// ReadKeyboard streams press/release events from an evdev device as
// note inputs, using the QWERTY layout shifted by transpose
// semitones. Only this source reports releases, which the hold
// discipline needs.
func ReadKeyboard(kbd string, transpose int, events chan<- game.Input) error {
	file, err := os.Open(kbd)
	if err != nil {
		return err
	}
	go func() {
		defer file.Close()

		var ev keyEvent
		for {
			err = binary.Read(file, binary.LittleEndian, &ev)
			if nil != err {
				log.Println(err, "unable to read keyboard input")
				return
			}
			if ev.Type != C.EV_KEY {
				continue
			}
			// Value 2 is auto-repeat, the session dedupes anyway
			// but there is no point forwarding it
			if ev.Value != 0 && ev.Value != 1 {
				continue
			}
			pitch, ok := PitchFor(ev.Code, transpose)
			if !ok {
				continue
			}
			events <- game.Input{
				Pitch: pitch,
				On:    ev.Value == 1,
				When:  time.Unix(ev.Time.Sec, ev.Time.Usec*1000),
			}
		}
	}()
	return nil
}
