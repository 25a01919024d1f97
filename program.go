package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/etude/internal/config"
	"git.lost.host/meutraa/etude/internal/game"
	"git.lost.host/meutraa/etude/internal/history"
	"git.lost.host/meutraa/etude/internal/input"
	"git.lost.host/meutraa/etude/internal/parser"
	"git.lost.host/meutraa/etude/internal/render"
	"git.lost.host/meutraa/etude/internal/session"
	"git.lost.host/meutraa/etude/internal/synth"
	"git.lost.host/meutraa/etude/internal/theme"
	"git.lost.host/meutraa/etude/internal/web"
)

type Program struct {
	Parser   parser.Parser
	Renderer render.Renderer
	Theme    theme.Theme
	History  *history.Store
	Synth    *synth.Synth

	session *session.Session
	song    *parser.Song
	server  *web.Server

	events   chan game.Input
	keys     <-chan keyboard.KeyEvent
	stopMIDI func()

	rows, cols int
	hitRow     int
	saved      bool
	runs       int
	lastScore  game.Score

	// Span drawn for each note last frame, for clearing
	drawn map[int][3]int // top row, bottom row, column

	songFile, audioFile string
}

func (p *Program) Init() error {
	p.Parser = &parser.DefaultParser{}
	p.Renderer = &render.DefaultRenderer{}
	p.Theme = &theme.DefaultTheme{}
	p.History = &history.Store{}
	p.Synth = &synth.Synth{}
	p.events = make(chan game.Input, 128)
	p.drawn = map[int][3]int{}

	if err := filepath.Walk(*config.Directory, func(fp string, info os.FileInfo, err error) error {
		if nil != err || nil == info {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mid", ".midi":
			p.songFile = fp
		case ".mp3", ".ogg":
			p.audioFile = fp
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}

	if p.songFile == "" && !*config.Free {
		return errors.New("unable to find a .mid file in given directory")
	}

	rows, cols, err := p.Renderer.Size()
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	p.rows, p.cols = rows, cols
	p.hitRow = rows - 4

	if p.songFile != "" {
		p.song, err = p.Parser.Parse(p.songFile)
		if nil != err {
			return err
		}

		mode, err := session.ParseMode(*config.Mode)
		if nil != err {
			return err
		}
		opts := []session.Option{
			session.WithMode(mode),
			session.WithWindow(*config.Window),
			session.WithProjection(*config.Speed, float64(p.hitRow)**config.RowPixels),
		}
		if *config.Free {
			opts = append(opts, session.WithFreePlay())
		}
		p.session, err = session.New(p.song.Notes, opts...)
		if nil != err {
			return err
		}
	}

	if err := p.History.Init(*config.Database); nil != err {
		return err
	}
	if p.song != nil {
		p.runs = len(p.History.Load(p.song.Sum))
	}

	if err := p.Synth.Init(); nil != err {
		return err
	}
	if p.audioFile != "" && !*config.Free {
		if err := p.Synth.PlayBacking(p.audioFile, *config.Delay); nil != err {
			log.Println("unable to play backing track", err)
		}
	}

	if *config.Keyboard != "" {
		if err := input.ReadKeyboard(*config.Keyboard, *config.Transpose, p.events); nil != err {
			return fmt.Errorf("unable to open input device: %w", err)
		}
	}
	if *config.MidiPort != "" {
		stop, err := input.ReadMIDI(*config.MidiPort, p.events)
		if nil != err {
			return err
		}
		p.stopMIDI = stop
	}

	if *config.Listen != "" {
		p.server = web.NewServer(*config.Listen)
		p.server.Start()
	}

	return nil
}

func (p *Program) Deinit() {
	if nil != p.stopMIDI {
		p.stopMIDI()
	}
	if nil != p.server {
		p.server.Close()
	}
	p.Synth.Deinit()
	p.History.Deinit()
}

func (p *Program) Loop() {
	p.Renderer.RenderLoop(*config.FramePeriod, func(now time.Time) bool {
		for i := 0; i < len(p.keys); i++ {
			key := <-p.keys
			switch {
			case key.Key == keyboard.KeyEsc:
				return false
			case key.Key == keyboard.KeySpace && nil != p.session:
				if p.session.State() == session.StatePaused {
					p.session.Resume(now)
				} else {
					p.session.Pause(now)
				}
			case key.Rune == 'r' && nil != p.session:
				p.saved = false
				p.lastScore = game.Score{}
				p.Renderer.Clear()
				p.session.Start(now.Add(*config.Delay))
			}
		}

		for i := 0; i < len(p.events); i++ {
			in := <-p.events
			if in.On {
				p.Synth.NoteOn(in.Pitch)
			} else {
				p.Synth.NoteOff(in.Pitch)
			}
			if nil == p.session {
				continue
			}
			if in.On {
				p.session.NoteOn(in.Pitch, in.When)
			} else {
				p.session.NoteOff(in.Pitch, in.When)
			}
		}

		if nil == p.session {
			p.Renderer.Fill(2, 2, "free play")
			return true
		}

		frame := p.session.Tick(now)
		p.Render(&frame)

		if nil != p.server {
			p.server.Publish(web.Snapshot{
				Song:     p.song.Name,
				Mode:     p.session.Mode().String(),
				State:    frame.State.String(),
				Elapsed:  frame.Elapsed.Seconds(),
				Hits:     frame.Score.Hits,
				Misses:   frame.Score.Misses,
				Mistakes: frame.Score.Mistakes,
			})
		}

		if frame.State == session.StateFinished && !p.saved {
			p.saved = true
			p.runs++
			if err := p.History.Save(history.Result{
				Sum:      p.song.Sum,
				Mode:     p.session.Mode().String(),
				Hits:     frame.Score.Hits,
				Misses:   frame.Score.Misses,
				Mistakes: frame.Score.Mistakes,
				Elapsed:  frame.Elapsed,
				Played:   time.Now(),
			}); nil != err {
				log.Println("unable to save result", err)
			}
		}

		return true
	})
}

func (p *Program) column(pitch string) (int, bool) {
	key, err := game.NameKey(pitch)
	if nil != err {
		return 0, false
	}
	col := 2 + int(key-game.LowestKey)
	if col >= p.cols {
		return 0, false
	}
	return col, true
}

func (p *Program) Render(f *session.Frame) {
	// Hit field across the playable range
	for key := game.LowestKey; key <= game.HighestKey; key++ {
		col, ok := p.column(game.KeyName(key))
		if !ok {
			continue
		}
		accidental := key%12 == 1 || key%12 == 3 || key%12 == 6 || key%12 == 8 || key%12 == 10
		p.Renderer.Fill(p.hitRow, col, p.Theme.RenderHitField(accidental))
	}

	for _, span := range p.drawn {
		for row := span[0]; row <= span[1]; row++ {
			p.Renderer.Fill(row, span[2], " ")
		}
	}
	p.drawn = map[int][3]int{}

	proj := p.session.Projection()
	for i := range f.Notes {
		n := &f.Notes[i]
		col, ok := p.column(n.Pitch)
		if !ok {
			continue
		}

		lead := int(n.Y / *config.RowPixels)
		if lead > p.hitRow {
			lead = p.hitRow
		}
		top := lead - int(proj.PixelHeight(n)/ *config.RowPixels)
		if top < 1 {
			top = 1
		}
		if lead < 1 {
			continue
		}

		for row := top; row < lead; row++ {
			p.Renderer.Fill(row, col, p.Theme.RenderNoteBody(n))
		}
		p.Renderer.Fill(lead, col, p.Theme.RenderNote(n))
		p.drawn[n.ID] = [3]int{top, lead, col}
	}

	if f.Score.Hits > p.lastScore.Hits {
		p.Renderer.AddDecoration(p.hitRow-1, p.cols/2, "✓", 8)
	}
	if f.Score.Misses+f.Score.Mistakes > p.lastScore.Misses+p.lastScore.Mistakes {
		p.Renderer.AddDecoration(p.hitRow-1, p.cols/2, "✗", 8)
	}
	p.lastScore = f.Score

	statusRow := p.rows - 2
	p.Renderer.Fill(statusRow, 2, fmt.Sprintf(
		"%v  [%v|%v]  %7.2fs   hits %4v  misses %4v  mistakes %4v   runs %v ",
		p.song.Name, p.session.Mode(), f.State, f.Elapsed.Seconds(),
		f.Score.Hits, f.Score.Misses, f.Score.Mistakes, p.runs,
	))
}
