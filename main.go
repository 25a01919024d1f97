package main

import (
	"fmt"
	"log"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/etude/internal/config"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	p := &Program{keys: keys}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	if err := p.Renderer.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := p.Renderer.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}()

	if nil != p.session {
		p.session.Start(time.Now().Add(*config.Delay))
	}
	p.Loop()
	return nil
}
