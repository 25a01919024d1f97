package synth

import (
	"fmt"
	"math"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"

	"git.lost.host/meutraa/etude/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Synth plays one sine voice per held pitch through the speaker. The
// session never calls this; the input layer triggers audio directly.
type Synth struct {
	active  map[string]*beep.Ctrl
	backing beep.StreamSeekCloser
}

func (s *Synth) Init() error {
	s.active = map[string]*beep.Ctrl{}
	return speaker.Init(sampleRate, sampleRate.N(time.Second/60))
}

func (s *Synth) Deinit() {
	speaker.Clear()
	if nil != s.backing {
		s.backing.Close()
	}
}

func (s *Synth) NoteOn(name string) {
	freq := game.Frequency(name)
	if freq == 0 {
		return
	}
	if _, ok := s.active[name]; ok {
		return
	}
	ctrl := &beep.Ctrl{Streamer: &voice{freq: freq}}
	s.active[name] = ctrl
	speaker.Play(ctrl)
}

func (s *Synth) NoteOff(name string) {
	ctrl, ok := s.active[name]
	if !ok {
		return
	}
	delete(s.active, name)
	speaker.Lock()
	// A nil streamer drains immediately and the mixer drops it
	ctrl.Streamer = nil
	speaker.Unlock()
}

// PlayBacking decodes an mp3 or ogg backing track and starts it after
// the given delay, resampled onto the speaker rate.
func (s *Synth) PlayBacking(file string, delay time.Duration) error {
	f, err := os.Open(file)
	if nil != err {
		return err
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported audio file %v", file)
	}
	if nil != err {
		return err
	}
	s.backing = streamer

	resampled := beep.Resample(4, format.SampleRate, sampleRate, streamer)
	go func() {
		time.Sleep(delay)
		speaker.Play(resampled)
	}()
	return nil
}

// voice is a fixed-frequency sine streamer with a short attack ramp
// to avoid clicks on key down.
type voice struct {
	freq float64
	pos  int
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(v.pos) / float64(sampleRate)
		val := 0.2 * math.Sin(2*math.Pi*v.freq*t)
		if v.pos < 512 {
			val *= float64(v.pos) / 512
		}
		samples[i][0], samples[i][1] = val, val
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }
