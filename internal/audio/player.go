package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// DefaultSampleRate is the speaker rate used by Open.
const DefaultSampleRate = beep.SampleRate(44100)

// minGap keeps a cue from stacking when it fires on consecutive ticks.
const minGap = 40 * time.Millisecond

// Player turns cues into sounds and hands them to an output.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	out    func(beep.Streamer)
	last   map[core.Cue]time.Time
	now    func() time.Time
	closed bool

	onSpeaker bool
}

// NewPlayer creates a player that passes each sound to out.
func NewPlayer(rate beep.SampleRate, volume float64, out func(beep.Streamer)) *Player {
	return &Player{
		rate:   rate,
		volume: volume,
		out:    out,
		last:   make(map[core.Cue]time.Time),
		now:    time.Now,
	}
}

// Open initializes the system speaker and returns a player bound to it.
func Open(volume float64) (*Player, error) {
	if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	p := NewPlayer(DefaultSampleRate, volume, func(s beep.Streamer) {
		speaker.Play(s)
	})
	p.onSpeaker = true
	return p, nil
}

// Play queues the sound for a cue. Cues without a sound are ignored.
func (p *Player) Play(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	now := p.now()
	if t, ok := p.last[c]; ok && now.Sub(t) < minGap {
		return
	}

	s := Sound(c, p.rate)
	if s == nil {
		return
	}
	p.last[c] = now
	p.out(withVolume(s, p.volume))
}

// Close stops all sounds. Later cues are dropped.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.onSpeaker && !p.closed {
		speaker.Clear()
	}
	p.closed = true
}
