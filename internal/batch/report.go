package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch.
type Summary struct {
	Runs         int
	Successes    int
	MeanScore    float64
	StdDevScore  float64
	MedianScore  float64
	P90Score     float64
	MeanSeconds  float64
	MedianTicks  float64
	LinesCleared int
	Overflows    int
	Reasons      map[string]int
}

// SuccessRate returns the fraction of successful runs.
func (s Summary) SuccessRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Runs)
}

// Summarize computes score and survival statistics over the records.
func Summarize(records []Record) Summary {
	sum := Summary{Runs: len(records), Reasons: make(map[string]int)}
	if len(records) == 0 {
		return sum
	}

	scores := make([]float64, len(records))
	seconds := make([]float64, len(records))
	ticks := make([]float64, len(records))
	for i, r := range records {
		scores[i] = float64(r.Score)
		seconds[i] = r.Seconds
		ticks[i] = float64(r.Ticks)
		if r.Success {
			sum.Successes++
		}
		sum.LinesCleared += r.LinesCleared
		sum.Overflows += r.Overflows
		sum.Reasons[r.Reason]++
	}

	sum.MeanScore, sum.StdDevScore = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		sum.StdDevScore = 0
	}
	sum.MeanSeconds = stat.Mean(seconds, nil)

	sort.Float64s(scores)
	sort.Float64s(ticks)
	sum.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	sum.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	sum.MedianTicks = stat.Quantile(0.5, stat.Empirical, ticks, nil)
	return sum
}

// WriteReport writes one JSON record per line to path. Paths ending in
// ".zst" are zstd compressed.
func WriteReport(path string, records []Record) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("batch: create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("batch: close report: %w", cerr)
		}
	}()

	var w io.Writer = f
	var zw *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("batch: create zstd writer: %w", err)
		}
		w = zw
	}

	bw := bufio.NewWriter(w)
	if err := EncodeRecords(bw, records); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("batch: write report: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("batch: close zstd writer: %w", err)
		}
	}
	return nil
}

// EncodeRecords writes records as JSON lines.
func EncodeRecords(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("batch: encode run %d: %w", r.Run, err)
		}
	}
	return nil
}

// ReadReport reads a report written by WriteReport.
func ReadReport(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("batch: create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var out []Record
	dec := json.NewDecoder(r)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("batch: decode record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
	return out, nil
}
