package main

import (
	"log"
	"sync"

	"golang.design/x/hotkey"
)

// quitGuard swallows the platform quit shortcut while a break is running
type quitGuard struct {
	mu   sync.Mutex
	hk   *hotkey.Hotkey
	done chan struct{}
}

func (g *quitGuard) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hk != nil {
		return
	}

	hk := hotkey.New(quitModifiers, hotkey.KeyQ)
	if err := hk.Register(); err != nil {
		log.Printf("Failed to register %s prevention: %v", quitShortcutName, err)
		return
	}
	g.hk = hk
	g.done = make(chan struct{})

	go func(done chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-hk.Keydown():
				log.Printf("%s blocked - wait for the break timer to finish", quitShortcutName)
			}
		}
	}(g.done)
}

func (g *quitGuard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hk == nil {
		return
	}
	close(g.done)
	if err := g.hk.Unregister(); err != nil {
		log.Printf("Failed to unregister %s prevention: %v", quitShortcutName, err)
	}
	g.hk = nil
}

func (g *quitGuard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hk != nil
}
