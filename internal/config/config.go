// Package config provides YAML-based game configuration loading and
// difficulty composition for Block Survivor.
package config

// SurvivorConfig contains all tuning for a Block Survivor session.
type SurvivorConfig struct {
	Field      SurvivorField      `yaml:"field"`
	Physics    SurvivorPhysics    `yaml:"physics"`
	Player     SurvivorPlayer     `yaml:"player"`
	Tolerance  SurvivorTolerance  `yaml:"tolerance"`
	Rules      SurvivorRules      `yaml:"rules"`
	Scoring    SurvivorScoring    `yaml:"scoring"`
	Timers     SurvivorTimers     `yaml:"timers"`
	Difficulty SurvivorDifficulty `yaml:"difficulty"`
	Levels     []LevelProfile     `yaml:"levels"`
	Training   TrainingProfile    `yaml:"training"`
}

// SurvivorField defines the play field grid.
type SurvivorField struct {
	Columns  int     `yaml:"columns"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"` // Edge length of one cell in field pixels
}

// Width returns the field width in pixels.
func (f SurvivorField) Width() float64 { return float64(f.Columns) * f.CellSize }

// Height returns the field height in pixels.
func (f SurvivorField) Height() float64 { return float64(f.Rows) * f.CellSize }

// SurvivorPhysics defines per-tick player physics.
type SurvivorPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Negative, upward
	MoveSpeed   float64 `yaml:"move_speed"`
}

// SurvivorPlayer defines the player body.
type SurvivorPlayer struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	StartOffset float64 `yaml:"start_offset"` // Distance from field bottom to the body's top at spawn
}

// SurvivorTolerance holds the collision slack that tunes game feel.
type SurvivorTolerance struct {
	CrushInset float64 `yaml:"crush_inset"` // Shrinks falling cells before the crush test
	StandBand  float64 `yaml:"stand_band"`  // Vertical slack for the standing check
	WallBand   float64 `yaml:"wall_band"`   // Vertical overlap ignored by the horizontal wall test
}

// SurvivorRules defines field thresholds in rows.
type SurvivorRules struct {
	SpawnRowsAbove int `yaml:"spawn_rows_above"` // Pieces spawn this many rows above the field
	OverflowRow    int `yaml:"overflow_row"`     // Blocks at or above this row trigger overflow
	CeilingOutRows int `yaml:"ceiling_out_rows"` // Player above this many rows over the field fails
}

// SurvivorScoring defines score bonuses.
type SurvivorScoring struct {
	SpawnBonus    int `yaml:"spawn_bonus"`
	OverflowBonus int `yaml:"overflow_bonus"`
	LineBonus     int `yaml:"line_bonus"` // Per cleared row
}

// SurvivorTimers defines session timers in milliseconds.
type SurvivorTimers struct {
	CountdownStepMs   float64 `yaml:"countdown_step_ms"`
	FlashMs           float64 `yaml:"flash_ms"`
	InactivityEnabled bool    `yaml:"inactivity_enabled"`
	InactivityLimitMs float64 `yaml:"inactivity_limit_ms"`
	InactivityWarnMs  float64 `yaml:"inactivity_warn_ms"`
	TerminalGraceMs   float64 `yaml:"terminal_grace_ms"`
}

// SurvivorDifficulty lists the difficulty tiers and the reference tier used
// to scale level baselines.
type SurvivorDifficulty struct {
	Default   DifficultyPreset `yaml:"default"`
	Reference DifficultyPreset `yaml:"reference"`
	Tiers     []DifficultyTier `yaml:"tiers"`
}

// DifficultyTier is one selectable difficulty.
type DifficultyTier struct {
	ID              DifficultyPreset `yaml:"id"`
	Label           string           `yaml:"label"`
	Letter          string           `yaml:"letter"` // Shown next to high scores
	SpawnIntervalMs float64          `yaml:"spawn_interval_ms"`
	FallSpeed       float64          `yaml:"fall_speed"`
}

// LevelProfile is one adventure level.
type LevelProfile struct {
	Label               string  `yaml:"label"`
	TimeLimitSeconds    int     `yaml:"time_limit_seconds"`
	BaseSpawnIntervalMs float64 `yaml:"base_spawn_interval_ms"`
	BaseFallSpeed       float64 `yaml:"base_fall_speed"`
}

// TrainingProfile tunes the non-lethal tutorial session.
type TrainingProfile struct {
	SpawnIntervalMs float64  `yaml:"spawn_interval_ms"`
	FallSpeed       float64  `yaml:"fall_speed"`
	TargetScore     int      `yaml:"target_score"`
	Prompts         []string `yaml:"prompts"`
}

// DifficultyPreset names a difficulty tier.
type DifficultyPreset string

const (
	DifficultyEasy     DifficultyPreset = "easy"
	DifficultyMedium   DifficultyPreset = "medium"
	DifficultyHard     DifficultyPreset = "hard"
	DifficultyHardcore DifficultyPreset = "hardcore"
)

// Tier returns the tier with the given ID.
func (d SurvivorDifficulty) Tier(id DifficultyPreset) (DifficultyTier, bool) {
	for _, t := range d.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return DifficultyTier{}, false
}
