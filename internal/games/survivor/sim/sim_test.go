package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
)

const (
	testCell   = 40.0
	testFieldW = 480.0
	testFieldH = 720.0
)

func testKinematics() Kinematics {
	cfg := config.DefaultSurvivorConfig()
	return Kinematics{
		Gravity:     cfg.Physics.Gravity,
		JumpImpulse: cfg.Physics.JumpImpulse,
		MoveSpeed:   cfg.Physics.MoveSpeed,
		FieldW:      testFieldW,
		FieldH:      testFieldH,
		Cell:        testCell,
		Tolerance:   Tolerance{CrushInset: 4, StandBand: 10, WallBand: 5},
	}
}

func newSession(t *testing.T, cfg config.SurvivorConfig, opts Options) *Session {
	t.Helper()
	s, err := NewSession(cfg, opts)
	require.NoError(t, err)
	return s
}

func fullRow(y float64) []Block {
	row := make([]Block, 12)
	for i := range row {
		row[i] = Block{X: float64(i) * testCell, Y: y, Color: core.ColorGreen}
	}
	return row
}

func TestCatalogFitsDefaultField(t *testing.T) {
	require.NoError(t, ValidateCatalog(12))

	err := ValidateCatalog(3)
	var verr config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "SHAPE_TOO_WIDE", verr.Code)
}

func TestNewSessionRejectsNarrowField(t *testing.T) {
	cfg := config.DefaultSurvivorConfig()
	cfg.Field.Columns = 3

	_, err := NewSession(cfg, Options{Mode: ModeFree})
	var verr config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "SHAPE_TOO_WIDE", verr.Code)
}

func TestNewSessionRejectsLockedLevel(t *testing.T) {
	_, err := NewSession(config.DefaultSurvivorConfig(), Options{Mode: ModeAdventure, Level: 3, Unlocked: 1})
	assert.Error(t, err)

	_, err = NewSession(config.DefaultSurvivorConfig(), Options{Mode: ModeAdventure, Level: 0, Unlocked: 1})
	assert.Error(t, err)
}

func TestShapeOccupiedCounts(t *testing.T) {
	want := map[ShapeKind]int{
		ShapeI: 4, ShapeJ: 4, ShapeL: 4, ShapeO: 4,
		ShapeS: 4, ShapeT: 4, ShapeZ: 4, ShapeTrio: 3,
	}
	for kind, n := range want {
		assert.Len(t, kind.Shape().Occupied(), n, kind.String())
	}
	assert.Equal(t, 4, ShapeI.Shape().Width())
	assert.Equal(t, 3, ShapeTrio.Shape().Height())
}

// A 1x4 piece at column 4 falls to the floor and becomes four bottom-row blocks.
func TestHorizontalPieceSettlesOnFloor(t *testing.T) {
	for _, speed := range []float64{3, 6.5, 7.5} {
		pile := NewPile(12, testCell)
		f := Faller{FieldH: testFieldH, Cell: testCell, Lethal: false}
		pieces := []Piece{{Kind: ShapeI, X: 4 * testCell, Y: -4 * testCell, Color: core.ColorCyan}}

		for i := 0; i < 1000 && len(pieces) > 0; i++ {
			pieces, _ = f.Advance(pieces, speed, pile, core.Box{})
		}

		require.Empty(t, pieces, "speed %v", speed)
		blocks := pile.Blocks()
		require.Len(t, blocks, 4)
		for i, b := range blocks {
			assert.Equal(t, testFieldH-testCell, b.Y, "speed %v", speed)
			assert.Equal(t, float64(4+i)*testCell, b.X)
			assert.Equal(t, core.ColorCyan, b.Color)
		}
	}
}

func TestPieceSettlesOnPile(t *testing.T) {
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 160, Y: 680})
	f := Faller{FieldH: testFieldH, Cell: testCell}

	pieces := []Piece{{Kind: ShapeO, X: 160, Y: 560}}
	var res FallResult
	for i := 0; i < 100 && len(pieces) > 0; i++ {
		pieces, res = f.Advance(pieces, 3, pile, core.Box{})
	}

	require.Len(t, res.Settled, 1)
	assert.Equal(t, 5, pile.Len())
	ys := map[float64]int{}
	for _, b := range pile.Blocks() {
		ys[b.Y]++
	}
	assert.Equal(t, map[float64]int{680: 1, 640: 2, 600: 2}, ys)
}

func TestPieceBesidePileKeepsFalling(t *testing.T) {
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 120, Y: 680})
	f := Faller{FieldH: testFieldH, Cell: testCell}

	// Touching the block's side is not contact
	pieces := []Piece{{Kind: ShapeTrio, X: 160, Y: 500}}
	pieces, res := f.Advance(pieces, 3, pile, core.Box{})
	assert.Len(t, pieces, 1)
	assert.Empty(t, res.Settled)
}

func TestSettleRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		shape := kind.Shape()
		pc := Piece{Kind: kind, X: 3 * testCell, Y: 213.5, Color: shape.Color}
		blocks := pc.Blocks(testCell)

		occ := shape.Occupied()
		require.Len(t, blocks, len(occ), kind.String())
		snapped := math.Floor(pc.Y/testCell) * testCell
		for i, rc := range occ {
			assert.Equal(t, pc.X+float64(rc[1])*testCell, blocks[i].X)
			assert.Equal(t, snapped+float64(rc[0])*testCell, blocks[i].Y)
			assert.Equal(t, shape.Color, blocks[i].Color)
		}
	}
}

func TestFallerCrushTest(t *testing.T) {
	player := core.NewBox(226, 675, 28, 35)
	piece := Piece{Kind: ShapeO, X: 200, Y: 600}

	lethal := Faller{FieldH: testFieldH, Cell: testCell, Tolerance: Tolerance{CrushInset: 4}, Lethal: true}
	_, res := lethal.Advance([]Piece{piece}, 3, NewPile(12, testCell), player)
	assert.True(t, res.Crushed)

	training := lethal
	training.Lethal = false
	_, res = training.Advance([]Piece{piece}, 3, NewPile(12, testCell), player)
	assert.False(t, res.Crushed)

	// The inset forgives a graze along the edge
	graze := Piece{Kind: ShapeTrio, X: 250, Y: 560}
	_, res = lethal.Advance([]Piece{graze}, 3, NewPile(12, testCell), player)
	assert.False(t, res.Crushed)
}

// A full row at y=400 is removed and scores the row bonus.
func TestFullRowClears(t *testing.T) {
	s := newSession(t, config.DefaultSurvivorConfig(), Options{Mode: ModeFree, Seed: 1})
	s.pile.Add(fullRow(400)...)
	require.Equal(t, 12, s.pile.Len())

	s.resolvePile()

	assert.Equal(t, 0, s.pile.Len())
	assert.Equal(t, 50, s.Score())
	for _, b := range s.pile.Blocks() {
		assert.NotEqual(t, 400.0, b.Y)
	}
}

func TestLineClearCompactsPileAndPlayer(t *testing.T) {
	pile := NewPile(12, testCell)
	pile.Add(fullRow(640)...)
	pile.Add(fullRow(560)...)
	pile.Add(
		Block{X: 0, Y: 680},  // below both cleared rows
		Block{X: 40, Y: 600}, // between them
		Block{X: 80, Y: 520}, // above both
	)
	player := &Player{X: 100, Y: 480, Width: 28, Height: 35}

	rows := pile.ClearFullRows(player)

	assert.Equal(t, 2, rows)
	got := map[float64]float64{}
	for _, b := range pile.Blocks() {
		got[b.X] = b.Y
	}
	assert.Equal(t, map[float64]float64{0: 680, 40: 640, 80: 600}, got)
	assert.Equal(t, 560.0, player.Y)
}

func TestLineClearIdempotentWithoutFullRow(t *testing.T) {
	s := newSession(t, config.DefaultSurvivorConfig(), Options{Mode: ModeFree, Seed: 1})
	partial := fullRow(680)[:11]
	s.pile.Add(partial...)
	before := s.pile.Blocks()
	player := s.player

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0, s.pile.ClearFullRows(&s.player))
	}
	s.resolvePile()

	assert.Equal(t, before, s.pile.Blocks())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, player, s.player)
}

func TestDuplicateCellsDoNotFillRow(t *testing.T) {
	pile := NewPile(12, testCell)
	row := fullRow(680)[:11]
	pile.Add(row...)
	pile.Add(row[0])
	assert.Equal(t, 0, pile.ClearFullRows(nil))
}

func TestOverflowClearsPile(t *testing.T) {
	s := newSession(t, config.DefaultSurvivorConfig(), Options{Mode: ModeFree, Seed: 1})
	s.pile.Add(fullRow(680)...)
	s.pile.Add(Block{X: 0, Y: 0})

	s.resolvePile()

	assert.Equal(t, 0, s.pile.Len())
	assert.Equal(t, 100, s.Score(), "overflow takes priority over the full bottom row")
	assert.True(t, s.Snapshot().Flash)

	for i := 0; i < 40; i++ {
		s.Step(Input{Left: i%2 == 0})
	}
	assert.False(t, s.Snapshot().Flash)
}

// A grounded player holding jump leaves the tick with the jump impulse.
func TestJumpFromGround(t *testing.T) {
	k := testKinematics()
	p := &Player{X: 226, Y: testFieldH - 35, Width: 28, Height: 35}
	pile := NewPile(12, testCell)

	jumped := k.Move(p, Input{Jump: true}, pile)

	assert.True(t, jumped)
	assert.Equal(t, k.JumpImpulse, p.VY)
	assert.True(t, p.Jumping)
	assert.Equal(t, testFieldH-35+k.JumpImpulse, p.Y)

	// No double jump while airborne
	vy := p.VY
	assert.False(t, k.Move(p, Input{Jump: true}, pile))
	assert.Equal(t, vy+k.Gravity, p.VY)
}

// A falling player reaching a block top snaps onto it and is grounded.
func TestLandOnBlock(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 200, Y: 400})
	p := &Player{X: 200, Y: 363, Width: 28, Height: 35, VY: 3, Jumping: true}

	k.Move(p, Input{}, pile)

	assert.Equal(t, 400.0-35, p.Y)
	assert.Equal(t, 0.0, p.VY)
	assert.False(t, p.Jumping)

	// Standing still keeps it there
	for i := 0; i < 10; i++ {
		k.Move(p, Input{}, pile)
	}
	assert.Equal(t, 365.0, p.Y)
	assert.False(t, p.Jumping)
}

func TestStandCheckRegrounds(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 200, Y: 400})

	p := &Player{X: 210, Y: 368, Width: 28, Height: 35, VY: 1, Jumping: true}
	assert.True(t, k.Stand(p, pile))
	assert.Equal(t, 365.0, p.Y)
	assert.False(t, p.Jumping)

	rising := &Player{X: 210, Y: 368, Width: 28, Height: 35, VY: -2, Jumping: true}
	assert.False(t, k.Stand(rising, pile))

	deep := &Player{X: 210, Y: 380, Width: 28, Height: 35, VY: 1, Jumping: true}
	assert.False(t, k.Stand(deep, pile), "feet beyond the stand band")
}

func TestHeadHitsBlockWhileRising(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 200, Y: 400})
	p := &Player{X: 200, Y: 445, Width: 28, Height: 35, VY: -8, Jumping: true}

	k.Move(p, Input{}, pile)

	assert.Equal(t, 440.0, p.Y)
	assert.Equal(t, 0.0, p.VY)
	assert.True(t, p.Jumping)
}

func TestWalkingIntoWallIsRejected(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 200, Y: 680})
	p := &Player{X: 170, Y: testFieldH - 35, Width: 28, Height: 35}

	k.Move(p, Input{Right: true}, pile)
	assert.Equal(t, 170.0, p.X)

	k.Move(p, Input{Left: true}, pile)
	assert.Equal(t, 164.0, p.X)
}

func TestSunkenBlockDoesNotLetPlayerThrough(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	// A cell settled 4 px into the player's left edge, with a step behind it
	pile.Add(Block{X: 80, Y: 680}, Block{X: 40, Y: 680}, Block{X: 40, Y: 640})
	p := &Player{X: 116, Y: testFieldH - 35, Width: 28, Height: 35}

	for range 10 {
		k.Move(p, Input{Left: true}, pile)
		k.Stand(p, pile)
	}
	assert.Equal(t, 116.0, p.X, "walking deeper into the block must be rejected")

	k.Move(p, Input{Right: true}, pile)
	assert.Equal(t, 122.0, p.X)
}

func TestBuriedPlayerWalksOut(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 80, Y: 680})
	p := &Player{X: 86, Y: testFieldH - 35, Width: 28, Height: 35}

	for range 6 {
		k.Move(p, Input{Right: true}, pile)
	}
	assert.Equal(t, 122.0, p.X)
	assert.False(t, k.Tolerance.walls(p.Box(), pile.Blocks()[0].Box(testCell)))
}

func TestWalkingOffLedgeBecomesAirborne(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)
	pile.Add(Block{X: 200, Y: 400})
	p := &Player{X: 236, Y: 365, Width: 28, Height: 35}

	k.Move(p, Input{Right: true}, pile)

	assert.Equal(t, 242.0, p.X)
	assert.True(t, p.Jumping)
	assert.Greater(t, p.Y, 365.0)
}

func TestLeftWinsOverRight(t *testing.T) {
	k := testKinematics()
	p := &Player{X: 226, Y: testFieldH - 35, Width: 28, Height: 35}
	k.Move(p, Input{Left: true, Right: true}, NewPile(12, testCell))
	assert.Equal(t, 220.0, p.X)
}

func TestPlayerStaysInsideField(t *testing.T) {
	k := testKinematics()
	pile := NewPile(12, testCell)

	p := &Player{X: 2, Y: testFieldH - 35, Width: 28, Height: 35}
	k.Move(p, Input{Left: true}, pile)
	assert.Equal(t, 0.0, p.X)

	p.X = testFieldW - 30
	k.Move(p, Input{Right: true}, pile)
	assert.Equal(t, testFieldW-28, p.X)
}

func TestSpawnerBoundsAndCadence(t *testing.T) {
	sp := NewSpawner(42, 12, testCell, 4, 1500)
	seen := map[ShapeKind]bool{}
	for i := 0; i < 2000; i++ {
		pc := sp.Spawn()
		seen[pc.Kind] = true
		w := float64(pc.Kind.Shape().Width()) * testCell
		assert.GreaterOrEqual(t, pc.X, 0.0)
		assert.LessOrEqual(t, pc.X+w, testFieldW)
		assert.Equal(t, 0.0, math.Mod(pc.X, testCell))
		assert.Equal(t, -4*testCell, pc.Y)
	}
	assert.Len(t, seen, len(Kinds()))

	cadence := NewSpawner(1, 12, testCell, 4, 1500)
	_, ok := cadence.Next(1500)
	assert.False(t, ok, "interval must be exceeded, not met")
	_, ok = cadence.Next(1500.5)
	assert.True(t, ok)
	_, ok = cadence.Next(1600)
	assert.False(t, ok)
}

func TestClockCountdownKeepsRemainder(t *testing.T) {
	c := NewClock(3, 1000, false, 3000, 5000)
	c.Advance(1500, false)
	assert.Equal(t, 2, c.TimeLeft)
	c.Advance(600, false)
	assert.Equal(t, 1, c.TimeLeft)
	assert.False(t, c.TimeUp())
	c.Advance(900, false)
	assert.Equal(t, 0, c.TimeLeft)
	assert.True(t, c.TimeUp())

	untimed := NewClock(0, 1000, false, 3000, 5000)
	untimed.Advance(10000, false)
	assert.False(t, untimed.TimeUp())
}

func TestClockIdleWarningRamp(t *testing.T) {
	c := NewClock(0, 1000, true, 3000, 5000)
	c.Advance(2000, false)
	assert.Equal(t, 0.0, c.IdleWarning())
	c.Advance(2000, false)
	assert.InDelta(t, 0.5, c.IdleWarning(), 1e-9)
	assert.False(t, c.Idle())
	c.Advance(1000, false)
	assert.True(t, c.Idle())
	assert.Equal(t, 1.0, c.IdleWarning())

	c.Advance(16, true)
	assert.Equal(t, 0.0, c.IdleMs)
	assert.False(t, c.Idle())
}

func slowSpawnConfig() config.SurvivorConfig {
	cfg := config.DefaultSurvivorConfig()
	for i := range cfg.Difficulty.Tiers {
		cfg.Difficulty.Tiers[i].SpawnIntervalMs = 60000
	}
	return cfg
}

// Idling past the limit fails the session exactly once.
func TestInactivityFailsOnce(t *testing.T) {
	s := newSession(t, slowSpawnConfig(), Options{Mode: ModeFree, Seed: 7})

	pending, ended := 0, 0
	latchedAt := uint64(0)
	for i := 0; i < 1000; i++ {
		for _, e := range s.Step(Input{}) {
			switch e.Kind {
			case EventPending:
				pending++
				latchedAt = s.Tick()
				assert.Equal(t, PhasePending, s.Phase())
			case EventEnded:
				ended++
			}
		}
	}

	assert.Equal(t, 1, pending)
	assert.Equal(t, 1, ended)
	assert.Equal(t, PhaseFailed, s.Phase())
	assert.Equal(t, ReasonInactivity, s.Reason())
	assert.Equal(t, latchedAt, s.Tick(), "no simulation after the latch")
	assert.InDelta(t, 5000, float64(latchedAt)*s.opts.TickMs, s.opts.TickMs+1e-6)

	res, ok := s.Result()
	require.True(t, ok)
	assert.False(t, res.Success)
	assert.Equal(t, s.Score(), res.FinalScore)
}

func TestInputResetsInactivity(t *testing.T) {
	s := newSession(t, slowSpawnConfig(), Options{Mode: ModeFree, Seed: 7})
	for i := 0; i < 250; i++ {
		s.Step(Input{})
	}
	assert.Greater(t, s.Snapshot().IdleWarning, 0.0)

	s.Step(Input{Right: true})
	assert.Equal(t, 0.0, s.Snapshot().IdleWarning)
	for i := 0; i < 250; i++ {
		s.Step(Input{})
	}
	assert.Equal(t, PhaseRunning, s.Phase())
}

func shortLevelConfig() config.SurvivorConfig {
	cfg := config.DefaultSurvivorConfig()
	for i := range cfg.Levels {
		cfg.Levels[i].TimeLimitSeconds = 2
	}
	return cfg
}

func runToEnd(s *Session, in Input, maxTicks int) {
	for i := 0; i < maxTicks && !s.Phase().Terminal(); i++ {
		s.Step(in)
	}
}

// Surviving the frontier level advances the frontier by one, capped at the catalog.
func TestVictoryUnlocksNextLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		unlocked int
		want     int
	}{
		{"frontier level advances", 1, 1, 2},
		{"replaying an older level", 1, 3, 3},
		{"last level is capped", 5, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t, shortLevelConfig(), Options{
				Mode:     ModeAdventure,
				Level:    tc.level,
				Unlocked: tc.unlocked,
				Seed:     3,
			})
			runToEnd(s, Input{}, 1000)

			assert.Equal(t, PhaseSucceeded, s.Phase())
			assert.Equal(t, ReasonTimeUp, s.Reason())
			res, ok := s.Result()
			require.True(t, ok)
			assert.True(t, res.Success)
			assert.Equal(t, tc.want, res.Unlocked)
			assert.Equal(t, tc.want, s.Unlocked())
			assert.Equal(t, tc.level, res.Level)
		})
	}
}

func TestCrushEndsLethalSession(t *testing.T) {
	s := newSession(t, slowSpawnConfig(), Options{Mode: ModeFree, Seed: 1})
	s.pieces = append(s.pieces, Piece{Kind: ShapeO, X: 200, Y: 600})

	s.Step(Input{})

	assert.Equal(t, PhasePending, s.Phase())
	assert.Equal(t, ReasonCrushed, s.Reason())
	runToEnd(s, Input{}, 100)
	assert.Equal(t, PhaseFailed, s.Phase())
}

func TestTrainingIgnoresCrushAndCompletes(t *testing.T) {
	cfg := config.DefaultSurvivorConfig()
	cfg.Training.SpawnIntervalMs = 100
	s := newSession(t, cfg, Options{Mode: ModeTraining, Seed: 1})
	s.pieces = append(s.pieces, Piece{Kind: ShapeO, X: 200, Y: 600})

	s.Step(Input{})
	assert.Equal(t, PhaseRunning, s.Phase())

	runToEnd(s, Input{}, 5000)
	assert.Equal(t, PhaseSucceeded, s.Phase())
	assert.Equal(t, ReasonTrainingComplete, s.Reason())
	assert.GreaterOrEqual(t, s.Score(), 100)
}

func TestTutorialPrompts(t *testing.T) {
	cfg := config.DefaultSurvivorConfig()
	cfg.Training.SpawnIntervalMs = 1000
	cfg.Training.TargetScore = 1 << 30
	s := newSession(t, cfg, Options{Mode: ModeTraining, Seed: 1})

	assert.Equal(t, cfg.Training.Prompts[0], s.Snapshot().Prompt)
	s.Step(Input{Right: true})
	assert.Equal(t, 1, s.Snapshot().TutorialStep)

	// The player starts slightly above the floor
	for i := 0; i < 60 && !s.player.Grounded(); i++ {
		s.Step(Input{})
	}
	require.True(t, s.player.Grounded())
	s.Step(Input{Jump: true})
	assert.Equal(t, 2, s.Snapshot().TutorialStep)

	for i := 0; i < 2000 && s.Snapshot().TutorialStep < 3; i++ {
		s.Step(Input{})
	}
	assert.Equal(t, 3, s.Snapshot().TutorialStep)
	assert.Equal(t, cfg.Training.Prompts[3], s.Snapshot().Prompt)
}

func TestCeilingOutFails(t *testing.T) {
	s := newSession(t, slowSpawnConfig(), Options{Mode: ModeFree, Seed: 1})
	s.player.Y = -250
	s.player.Jumping = true

	s.Step(Input{})

	assert.Equal(t, ReasonCeilingOut, s.Reason())
}

func TestRatesByMode(t *testing.T) {
	cfg := config.DefaultSurvivorConfig()

	free := newSession(t, cfg, Options{Mode: ModeFree, Difficulty: config.DifficultyHard})
	assert.Equal(t, config.Rates{SpawnIntervalMs: 1000, FallSpeed: 5}, free.Rates())

	adv := newSession(t, cfg, Options{Mode: ModeAdventure, Difficulty: config.DifficultyMedium, Level: 2, Unlocked: 2})
	assert.Equal(t, config.Rates{SpawnIntervalMs: 1600, FallSpeed: 3.5}, adv.Rates())

	tr := newSession(t, cfg, Options{Mode: ModeTraining, Difficulty: config.DifficultyHardcore})
	assert.Equal(t, config.Rates{SpawnIntervalMs: 4000, FallSpeed: 1.5}, tr.Rates())
}

func TestSameSeedSameRun(t *testing.T) {
	script := func(i int) Input {
		return Input{Left: i%90 < 30, Right: i%90 >= 60, Jump: i%45 == 0}
	}
	run := func() Snapshot {
		s := newSession(t, config.DefaultSurvivorConfig(), Options{Mode: ModeFree, Seed: 99})
		for i := 0; i < 900 && s.Phase() == PhaseRunning; i++ {
			s.Step(script(i))
		}
		return s.Snapshot()
	}
	assert.Equal(t, run(), run())
}

// Long non-lethal run checking the pile and player invariants every tick.
func TestInvariantsHoldUnderRandomPlay(t *testing.T) {
	cfg := config.DefaultSurvivorConfig()
	cfg.Training.SpawnIntervalMs = 250
	cfg.Training.FallSpeed = 9
	cfg.Training.TargetScore = 1 << 30
	s := newSession(t, cfg, Options{Mode: ModeTraining, Seed: 2024})
	rng := rand.New(rand.NewSource(5))

	in := Input{}
	lastScore := 0
	for i := 0; i < 20000 && s.Phase() == PhaseRunning; i++ {
		if i%12 == 0 {
			in = Input{Left: rng.Intn(3) == 0, Right: rng.Intn(3) == 0, Jump: rng.Intn(4) == 0}
		}
		s.Step(in)

		snap := s.Snapshot()
		for _, b := range snap.Blocks {
			require.GreaterOrEqual(t, b.Y, 0.0, "tick %d", i)
			require.Equal(t, 0.0, math.Mod(b.Y, testCell), "tick %d", i)
			require.GreaterOrEqual(t, b.X, 0.0)
			require.LessOrEqual(t, b.X, testFieldW-testCell)
		}
		require.GreaterOrEqual(t, snap.Player.X, 0.0)
		require.LessOrEqual(t, snap.Player.X, testFieldW-snap.Player.Width)
		require.GreaterOrEqual(t, snap.Score, lastScore)
		lastScore = snap.Score
	}
	assert.Greater(t, s.stats.Settled, 50)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":           ModeFree,
		"free":       ModeFree,
		"Adventure":  ModeAdventure,
		" training ": ModeTraining,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in != "" {
			assert.Equal(t, want.String(), got.String())
		}
	}

	_, err := ParseMode("endless")
	assert.Error(t, err)
}
