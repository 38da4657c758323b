// Package audio plays a short tone when the pointer enters a pickable.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hoverpick/hoverpick/internal/config"
	"github.com/hoverpick/hoverpick/internal/core/event"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(48000)

// Blipper owns the speaker mixer. The zero value is silent until Init.
type Blipper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	hz          float64
	length      time.Duration
	initialized bool
	played      int
}

func NewBlipper(cfg config.AudioConfig) *Blipper {
	return &Blipper{
		mixer:  &beep.Mixer{},
		hz:     cfg.BlipHz,
		length: cfg.BlipLen,
	}
}

// Init opens the audio device. A failure leaves the Blipper silent.
func (b *Blipper) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Attach plays a blip on every hover enter.
func (b *Blipper) Attach(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.HoverChanged) {
		if e.Next == "" {
			return
		}
		if b.Play() {
			log.Debug("hover blip", zap.String("name", e.Next))
		}
	})
}

// Play queues one blip and reports whether the device was open.
func (b *Blipper) Play() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.played++
	if !b.initialized {
		return false
	}
	speaker.Lock()
	b.mixer.Add(beep.Take(sampleRate.N(b.length), NewTone(sampleRate, b.hz, b.length)))
	speaker.Unlock()
	return true
}

// Played counts Play calls, including silent ones.
func (b *Blipper) Played() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.played
}

// Close clears the mixer.
func (b *Blipper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Tone is a sine wave with a linear fade in and out over 10% of its length.
type Tone struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func NewTone(sr beep.SampleRate, freq float64, length time.Duration) *Tone {
	return &Tone{sr: sr, freq: freq, total: sr.N(length)}
}

func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	fade := g.total / 10
	if fade < 1 {
		fade = 1
	}
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := 1.0
		if g.pos < fade {
			env = float64(g.pos) / float64(fade)
		} else if rest := g.total - g.pos; rest < fade {
			env = math.Max(float64(rest), 0) / float64(fade)
		}
		v := 0.25 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *Tone) Err() error {
	return nil
}
