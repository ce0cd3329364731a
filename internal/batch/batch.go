// Package batch runs many autopilot sessions headlessly on a worker pool and
// summarizes how long they survive.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/autopilot"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
)

// Options configures a batch.
type Options struct {
	Runs       int
	Workers    int
	Mode       sim.Mode
	Difficulty config.DifficultyPreset
	Level      int    // Adventure level; also used as the unlock frontier
	Seed       int64  // Run i uses Seed+i
	MaxTicks   uint64 // Per-run cap; zero means ten simulated minutes
	Progress   io.Writer
}

// Record is the outcome of one run.
type Record struct {
	Run          int     `json:"run"`
	Seed         int64   `json:"seed"`
	Mode         string  `json:"mode"`
	Difficulty   string  `json:"difficulty"`
	Level        int     `json:"level,omitempty"`
	Reason       string  `json:"reason"`
	Success      bool    `json:"success"`
	Score        int     `json:"score"`
	Ticks        uint64  `json:"ticks"`
	Seconds      float64 `json:"seconds"`
	Spawned      int     `json:"spawned"`
	Settled      int     `json:"settled"`
	LinesCleared int     `json:"lines_cleared"`
	Overflows    int     `json:"overflows"`
	Jumps        int     `json:"jumps"`
}

// ErrNoRuns is returned when a batch has nothing to do.
var ErrNoRuns = errors.New("batch: runs must be > 0")

// Run plays opts.Runs sessions and returns their records in run order.
// Cancelling ctx stops the batch early and returns the context error.
func Run(ctx context.Context, cfg config.SurvivorConfig, opts Options) ([]Record, error) {
	if opts.Runs <= 0 {
		return nil, ErrNoRuns
	}
	workers := max(opts.Workers, 1)
	if opts.MaxTicks == 0 {
		opts.MaxTicks = 60 * 60 * 10
	}

	// Fail fast on a bad config or locked level before starting workers
	if _, err := sim.NewSession(cfg, sessionOptions(opts, 0)); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	bar := pb.StartNew(opts.Runs)
	if opts.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(opts.Progress)
	}
	defer bar.Finish()

	jobs := make(chan int)
	records := make([]Record, opts.Runs)
	errs := make([]error, workers)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := range jobs {
				rec, err := play(ctx, cfg, opts, i)
				if err != nil {
					errs[w] = err
					continue
				}
				records[i] = rec
				bar.Increment()
			}
		}(w)
	}

feed:
	for i := 0; i < opts.Runs; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return records, nil
}

func sessionOptions(opts Options, run int) sim.Options {
	return sim.Options{
		Mode:       opts.Mode,
		Difficulty: opts.Difficulty,
		Level:      opts.Level,
		Unlocked:   opts.Level,
		Seed:       opts.Seed + int64(run),
	}
}

// play runs one session to its end or to the tick cap.
func play(ctx context.Context, cfg config.SurvivorConfig, opts Options, run int) (Record, error) {
	so := sessionOptions(opts, run)
	s, err := sim.NewSession(cfg, so)
	if err != nil {
		return Record{}, fmt.Errorf("batch: run %d: %w", run, err)
	}

	pilot := autopilot.New()
	for s.Tick() < opts.MaxTicks && !s.Phase().Terminal() {
		if s.Tick()%1024 == 0 && ctx.Err() != nil {
			return Record{}, ctx.Err()
		}
		s.Step(pilot.Decide(s.Snapshot()))
	}

	snap := s.Snapshot()
	st := s.Stats()
	rec := Record{
		Run:          run,
		Seed:         so.Seed,
		Mode:         opts.Mode.String(),
		Difficulty:   string(snap.Difficulty),
		Level:        snap.Level,
		Reason:       s.Reason().String(),
		Score:        s.Score(),
		Ticks:        s.Tick(),
		Seconds:      s.ElapsedMs() / 1000,
		Spawned:      st.Spawned,
		Settled:      st.Settled,
		LinesCleared: st.LinesCleared,
		Overflows:    st.Overflows,
		Jumps:        st.Jumps,
	}
	if res, ok := s.Result(); ok {
		rec.Success = res.Success
		rec.Score = res.FinalScore
	}
	return rec, nil
}
