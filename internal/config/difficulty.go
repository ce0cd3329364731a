package config

import "fmt"

// Rates is an effective spawn interval and fall speed for one session.
type Rates struct {
	SpawnIntervalMs float64
	FallSpeed       float64
}

// DifficultyManager derives session rates from difficulty tiers, level
// baselines and the training profile.
type DifficultyManager struct {
	difficulty SurvivorDifficulty
	levels     []LevelProfile
	training   TrainingProfile
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg SurvivorConfig) *DifficultyManager {
	return &DifficultyManager{
		difficulty: cfg.Difficulty,
		levels:     cfg.Levels,
		training:   cfg.Training,
	}
}

// Tier returns the tier for a preset.
func (d *DifficultyManager) Tier(preset DifficultyPreset) (DifficultyTier, error) {
	t, ok := d.difficulty.Tier(preset)
	if !ok {
		return DifficultyTier{}, fmt.Errorf("config: unknown difficulty %q", preset)
	}
	return t, nil
}

// FreePlay returns the raw tier rates, used outside adventure levels.
func (d *DifficultyManager) FreePlay(preset DifficultyPreset) (Rates, error) {
	t, err := d.Tier(preset)
	if err != nil {
		return Rates{}, err
	}
	return Rates{SpawnIntervalMs: t.SpawnIntervalMs, FallSpeed: t.FallSpeed}, nil
}

// Level returns the rates for a 1-based adventure level under a preset.
func (d *DifficultyManager) Level(preset DifficultyPreset, level int) (Rates, error) {
	if level < 1 || level > len(d.levels) {
		return Rates{}, fmt.Errorf("config: level %d out of range 1..%d", level, len(d.levels))
	}
	t, err := d.Tier(preset)
	if err != nil {
		return Rates{}, err
	}
	ref, err := d.Tier(d.difficulty.Reference)
	if err != nil {
		return Rates{}, fmt.Errorf("config: reference difficulty: %w", err)
	}
	return Compose(d.levels[level-1], t, ref), nil
}

// Training returns the fixed training rates.
func (d *DifficultyManager) Training() Rates {
	return Rates{SpawnIntervalMs: d.training.SpawnIntervalMs, FallSpeed: d.training.FallSpeed}
}

// LevelCount returns the number of adventure levels.
func (d *DifficultyManager) LevelCount() int {
	return len(d.levels)
}

// Compose scales a level baseline by the ratio of a tier to the reference
// tier, separately for spawn interval and fall speed.
func Compose(level LevelProfile, tier, ref DifficultyTier) Rates {
	return Rates{
		SpawnIntervalMs: level.BaseSpawnIntervalMs * (tier.SpawnIntervalMs / ref.SpawnIntervalMs),
		FallSpeed:       level.BaseFallSpeed * (tier.FallSpeed / ref.FallSpeed),
	}
}
