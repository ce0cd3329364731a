package sim

import "math/rand"

// Spawner emits pieces at random columns on a fixed interval.
type Spawner struct {
	rng       *rand.Rand
	columns   int
	cell      float64
	spawnY    float64
	interval  float64
	lastSpawn float64
}

// NewSpawner creates a spawner seeded for deterministic play.
// Pieces appear rowsAbove rows over the top of the field.
func NewSpawner(seed int64, columns int, cell float64, rowsAbove int, intervalMs float64) *Spawner {
	return &Spawner{
		rng:      rand.New(rand.NewSource(seed)),
		columns:  columns,
		cell:     cell,
		spawnY:   -float64(rowsAbove) * cell,
		interval: intervalMs,
	}
}

// Next returns a new piece when more than one interval has passed since the
// last spawn. At most one piece is emitted per call.
func (s *Spawner) Next(nowMs float64) (Piece, bool) {
	if nowMs-s.lastSpawn <= s.interval {
		return Piece{}, false
	}
	s.lastSpawn = nowMs
	return s.Spawn(), true
}

// Spawn picks a uniform kind and a uniform column where the shape fits.
func (s *Spawner) Spawn() Piece {
	kind := ShapeKind(s.rng.Intn(int(shapeCount)))
	shape := kind.Shape()
	col := s.rng.Intn(s.columns - shape.Width() + 1)
	return Piece{
		Kind:  kind,
		X:     float64(col) * s.cell,
		Y:     s.spawnY,
		Color: shape.Color,
	}
}
