package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/block-survivor/internal/core"
)

const testRate = beep.SampleRate(8000)

// drain reads s to the end and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 256)
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := range n {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestToneLengthAndRange(t *testing.T) {
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle, WaveNoise} {
		samples := drain(t, Tone(440, 100*time.Millisecond, w, testRate))
		assert.Len(t, samples, testRate.N(100*time.Millisecond), "wave %d", w)
		for _, v := range samples {
			require.GreaterOrEqual(t, v, -1.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestSquareWaveValues(t *testing.T) {
	samples := drain(t, Tone(1000, 10*time.Millisecond, WaveSquare, testRate))
	for _, v := range samples {
		assert.True(t, v == 1 || v == -1, "square sample %v", v)
	}
}

func TestSweepChangesPitch(t *testing.T) {
	// Count zero crossings in each half of an upward sweep
	samples := drain(t, Sweep(100, 1000, time.Second, WaveSine, testRate))
	crossings := func(xs []float64) int {
		n := 0
		for i := 1; i < len(xs); i++ {
			if (xs[i-1] < 0) != (xs[i] < 0) {
				n++
			}
		}
		return n
	}
	half := len(samples) / 2
	assert.Greater(t, crossings(samples[half:]), crossings(samples[:half]))
}

func TestEnvelopeFades(t *testing.T) {
	d := 100 * time.Millisecond
	samples := drain(t, Envelope(Tone(0, d, WaveSquare, testRate), d, 20*time.Millisecond, 20*time.Millisecond, testRate))
	require.Len(t, samples, testRate.N(d))

	// A zero-frequency square is constant 1, so the envelope is visible directly
	assert.InDelta(t, 0.0, samples[0], 1e-9)
	assert.InDelta(t, 1.0, samples[len(samples)/2], 1e-9)
	assert.Less(t, samples[len(samples)-1], 0.1)
}

func TestEverySoundingCueEnds(t *testing.T) {
	cues := []core.Cue{
		core.CueSpawn, core.CueSettle, core.CueLineClear, core.CueOverflow,
		core.CueJump, core.CueCrushed, core.CueVictory, core.CueFailed,
	}
	for _, c := range cues {
		s := Sound(c, testRate)
		require.NotNil(t, s, "cue %s", c)
		d := Duration(c, testRate)
		assert.Greater(t, d, time.Duration(0), "cue %s", c)
		assert.LessOrEqual(t, d, time.Second, "cue %s", c)
	}
	assert.Nil(t, Sound(core.CueNone, testRate))
}

func TestSequencedCueDurations(t *testing.T) {
	assert.Equal(t, 280*time.Millisecond, Duration(core.CueLineClear, testRate))
	assert.Equal(t, 550*time.Millisecond, Duration(core.CueVictory, testRate))
}

func TestPlayerDebouncesRepeats(t *testing.T) {
	var played []beep.Streamer
	p := NewPlayer(testRate, 0.8, func(s beep.Streamer) { played = append(played, s) })

	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	p.Play(core.CueSpawn)
	p.Play(core.CueSpawn) // Same instant, dropped
	p.Play(core.CueJump)
	assert.Len(t, played, 2)

	clock = clock.Add(minGap)
	p.Play(core.CueSpawn)
	assert.Len(t, played, 3)

	p.Play(core.CueNone)
	assert.Len(t, played, 3)
}

func TestPlayerClosedDropsCues(t *testing.T) {
	var played int
	p := NewPlayer(testRate, 1, func(beep.Streamer) { played++ })
	p.Close()
	p.Play(core.CueVictory)
	assert.Zero(t, played)
}

func TestSilentVolume(t *testing.T) {
	samples := drain(t, withVolume(Tone(440, 10*time.Millisecond, WaveSquare, testRate), 0))
	for _, v := range samples {
		assert.Zero(t, v)
	}
}
