package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteG4 = 392.00
	noteE4 = 329.63
	noteC4 = 261.63
)

// Sound builds the streamer for a cue, or nil for cues without a sound.
func Sound(c core.Cue, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch c {
	case core.CueSpawn:
		return withVolume(note(1200, ms(25), WaveSquare, rate), 0.15)
	case core.CueSettle:
		return withVolume(Envelope(Sweep(140, 70, ms(90), WaveSine, rate), ms(90), ms(2), ms(60), rate), 0.6)
	case core.CueLineClear:
		return withVolume(beep.Seq(
			note(noteE5, ms(70), WaveTriangle, rate),
			note(noteG5, ms(70), WaveTriangle, rate),
			note(noteC6, ms(140), WaveTriangle, rate),
		), 0.5)
	case core.CueOverflow:
		return withVolume(Envelope(Sweep(200, 1400, ms(400), WaveSquare, rate), ms(400), ms(10), ms(120), rate), 0.25)
	case core.CueJump:
		return withVolume(Envelope(Sweep(440, 700, ms(60), WaveSquare, rate), ms(60), ms(3), ms(30), rate), 0.2)
	case core.CueCrushed:
		return withVolume(beep.Mix(
			note(90, ms(300), WaveSquare, rate),
			withVolume(note(0, ms(300), WaveNoise, rate), 0.5),
		), 0.4)
	case core.CueVictory:
		return withVolume(beep.Seq(
			note(noteC5, ms(100), WaveSquare, rate),
			note(noteE5, ms(100), WaveSquare, rate),
			note(noteG5, ms(100), WaveSquare, rate),
			note(noteC6, ms(250), WaveSquare, rate),
		), 0.25)
	case core.CueFailed:
		return withVolume(beep.Seq(
			note(noteG4, ms(150), WaveTriangle, rate),
			note(noteE4, ms(150), WaveTriangle, rate),
			note(noteC4, ms(300), WaveTriangle, rate),
		), 0.5)
	}
	return nil
}

// Duration returns how long the cue's sound lasts.
func Duration(c core.Cue, rate beep.SampleRate) time.Duration {
	s := Sound(c, rate)
	if s == nil {
		return 0
	}
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	return rate.D(total)
}
