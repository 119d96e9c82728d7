package audio

import (
	"bytes"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// initAudioContext initializes the global audio context once
func initAudioContext(format Format) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// Chime plays a short synthesized sound once per Play call
type Chime struct {
	mu      sync.Mutex
	pcm     []byte
	format  Format
	enabled func() bool
	stop    chan struct{}
}

// NewChime renders the break chime. enabled is checked on every Play so the
// setting can change at runtime; nil means always enabled.
func NewChime(enabled func() bool) *Chime {
	return &Chime{
		pcm:     Synthesize(DefaultFormat, ChimeNotes),
		format:  DefaultFormat,
		enabled: enabled,
	}
}

// Play starts the chime without blocking, cutting off one already playing
func (c *Chime) Play() {
	if c.enabled != nil && !c.enabled() {
		return
	}

	c.Stop()

	c.mu.Lock()
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go func() {
		// Context creation blocks until the device is ready
		initAudioContext(c.format)
		if !audioCtxReady || globalAudioCtx == nil {
			log.Printf("Audio context not ready")
			return
		}
		c.playOnce(stop)
	}()
}

func (c *Chime) playOnce(stop chan struct{}) {
	player := globalAudioCtx.NewPlayer(bytes.NewReader(c.pcm))
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	player.Play()
	for player.IsPlaying() {
		select {
		case <-stop:
			player.Pause()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Stop cuts the chime short if it is playing
func (c *Chime) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
