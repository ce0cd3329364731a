package config

import (
	_ "embed"
)

//go:embed defaults/survivor.yaml
var defaultSurvivorYAML []byte

// DefaultSurvivorConfig returns the built-in Block Survivor configuration.
// It mirrors defaults/survivor.yaml and is used when the embedded file cannot be parsed.
func DefaultSurvivorConfig() SurvivorConfig {
	return SurvivorConfig{
		Field: SurvivorField{
			Columns:  12,
			Rows:     18,
			CellSize: 40,
		},
		Physics: SurvivorPhysics{
			Gravity:     0.5,
			JumpImpulse: -11,
			MoveSpeed:   6,
		},
		Player: SurvivorPlayer{
			Width:       28,
			Height:      35,
			StartOffset: 45,
		},
		Tolerance: SurvivorTolerance{
			CrushInset: 4,
			StandBand:  10,
			WallBand:   5,
		},
		Rules: SurvivorRules{
			SpawnRowsAbove: 4,
			OverflowRow:    0,
			CeilingOutRows: 5,
		},
		Scoring: SurvivorScoring{
			SpawnBonus:    10,
			OverflowBonus: 100,
			LineBonus:     50,
		},
		Timers: SurvivorTimers{
			CountdownStepMs:   1000,
			FlashMs:           500,
			InactivityEnabled: true,
			InactivityLimitMs: 5000,
			InactivityWarnMs:  3000,
			TerminalGraceMs:   100,
		},
		Difficulty: SurvivorDifficulty{
			Default:   DifficultyMedium,
			Reference: DifficultyMedium,
			Tiers: []DifficultyTier{
				{ID: DifficultyEasy, Label: "Easy", Letter: "E", SpawnIntervalMs: 2000, FallSpeed: 2.0},
				{ID: DifficultyMedium, Label: "Medium", Letter: "M", SpawnIntervalMs: 1500, FallSpeed: 3.0},
				{ID: DifficultyHard, Label: "Hard", Letter: "H", SpawnIntervalMs: 1000, FallSpeed: 5.0},
				{ID: DifficultyHardcore, Label: "Hardcore", Letter: "X", SpawnIntervalMs: 600, FallSpeed: 7.5},
			},
		},
		Levels: []LevelProfile{
			{Label: "Vale dos Blocos", TimeLimitSeconds: 120, BaseSpawnIntervalMs: 2000, BaseFallSpeed: 2.5},
			{Label: "Ruínas de Neon", TimeLimitSeconds: 120, BaseSpawnIntervalMs: 1600, BaseFallSpeed: 3.5},
			{Label: "Pico Radioativo", TimeLimitSeconds: 120, BaseSpawnIntervalMs: 1300, BaseFallSpeed: 4.5},
			{Label: "Abismo Digital", TimeLimitSeconds: 120, BaseSpawnIntervalMs: 1000, BaseFallSpeed: 5.5},
			{Label: "O Confronto Final", TimeLimitSeconds: 120, BaseSpawnIntervalMs: 700, BaseFallSpeed: 7.0},
		},
		Training: TrainingProfile{
			SpawnIntervalMs: 4000,
			FallSpeed:       1.5,
			TargetScore:     100,
			Prompts: []string{
				"Use A and D to move sideways",
				"Press SPACE to jump",
				"Don't let the blocks crush you!",
				"Climb the blocks to survive!",
			},
		},
	}
}
