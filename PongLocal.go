package main

import (
	"sync"
	"time"

	"pong/core"
	"pong/engine"
	"pong/view"

	"github.com/gdamore/tcell"
)

// startLocal runs a two-player match on one terminal until a quit key.
func startLocal(settings core.Settings) error {
	host, err := engine.NewMatch(settings.Tuning)
	if err != nil {
		return err
	}

	screen, err := view.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	latch := core.NewKeyLatch(settings.Hold)
	quit := initUserInput(screen, latch)
	startGameLoop(host, view.New(screen, settings.Tuning), latch, settings.Frame, quit)
	return nil
}

func startGameLoop(host *engine.Host, v *view.View, latch *core.KeyLatch, frame time.Duration, quit <-chan struct{}) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			host.Update(latch.Controls(now), dt)
			situation := host.Situation()
			v.Draw(situation, view.Status(situation))
		}
	}
}

// initUserInput feeds key presses into the latch from its own goroutine and
// closes the returned channel on a quit key.
func initUserInput(screen tcell.Screen, latch *core.KeyLatch) <-chan struct{} {
	quit := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				// screen finalized
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if view.IsQuit(ev) {
					once.Do(func() { close(quit) })
					continue
				}
				if action, ok := view.LocalAction(ev); ok {
					latch.Press(action, ev.When())
				}
			}
		}
	}()

	return quit
}
