package config

import "fmt"

// ValidationError contains details about a configuration that cannot run.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the configuration describes a playable field.
// Shape widths are checked separately against the catalog by the simulation.
func Validate(cfg SurvivorConfig) error {
	checks := []func(SurvivorConfig) error{
		validateField,
		validatePhysics,
		validatePlayer,
		validateDifficulty,
		validateLevels,
		validateTraining,
		validateTimers,
	}
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateField(cfg SurvivorConfig) error {
	f := cfg.Field
	// Row occupancy is tracked as a 64-bit column mask
	if f.Columns <= 0 || f.Columns > 64 || f.Rows <= 0 || f.CellSize <= 0 {
		return ValidationError{
			Code:    "INVALID_FIELD",
			Message: fmt.Sprintf("field must be 1..64 columns with positive rows and cell size, got %dx%d cells of %.1f", f.Columns, f.Rows, f.CellSize),
		}
	}
	if cfg.Rules.OverflowRow < 0 || cfg.Rules.OverflowRow >= f.Rows {
		return ValidationError{
			Code:    "INVALID_OVERFLOW_ROW",
			Message: fmt.Sprintf("overflow row %d outside field rows 0..%d", cfg.Rules.OverflowRow, f.Rows-1),
		}
	}
	if cfg.Rules.SpawnRowsAbove < 0 || cfg.Rules.CeilingOutRows < 0 {
		return ValidationError{Code: "INVALID_RULES", Message: "row offsets must not be negative"}
	}
	return nil
}

func validatePhysics(cfg SurvivorConfig) error {
	p := cfg.Physics
	if p.Gravity <= 0 || p.JumpImpulse >= 0 || p.MoveSpeed <= 0 {
		return ValidationError{
			Code:    "INVALID_PHYSICS",
			Message: fmt.Sprintf("need gravity > 0, jump_impulse < 0, move_speed > 0; got %.2f, %.2f, %.2f", p.Gravity, p.JumpImpulse, p.MoveSpeed),
		}
	}
	return nil
}

func validatePlayer(cfg SurvivorConfig) error {
	p := cfg.Player
	if p.Width <= 0 || p.Height <= 0 || p.Width > cfg.Field.Width() || p.Height > cfg.Field.Height() {
		return ValidationError{
			Code:    "INVALID_PLAYER",
			Message: fmt.Sprintf("player %.0fx%.0f does not fit the field", p.Width, p.Height),
		}
	}
	t := cfg.Tolerance
	if t.CrushInset < 0 || t.StandBand < 0 || t.WallBand < 0 {
		return ValidationError{Code: "INVALID_TOLERANCE", Message: "tolerances must not be negative"}
	}
	return nil
}

func validateDifficulty(cfg SurvivorConfig) error {
	d := cfg.Difficulty
	if len(d.Tiers) == 0 {
		return ValidationError{Code: "NO_TIERS", Message: "at least one difficulty tier is required"}
	}
	seen := make(map[DifficultyPreset]bool, len(d.Tiers))
	for _, t := range d.Tiers {
		if seen[t.ID] {
			return ValidationError{Code: "DUPLICATE_TIER", Message: fmt.Sprintf("difficulty %q listed twice", t.ID)}
		}
		seen[t.ID] = true
		if err := checkRates(string(t.ID), t.SpawnIntervalMs, t.FallSpeed, cfg.Field.CellSize); err != nil {
			return err
		}
	}
	if !seen[d.Reference] {
		return ValidationError{Code: "UNKNOWN_REFERENCE", Message: fmt.Sprintf("reference difficulty %q is not a tier", d.Reference)}
	}
	if d.Default != "" && !seen[d.Default] {
		return ValidationError{Code: "UNKNOWN_DEFAULT", Message: fmt.Sprintf("default difficulty %q is not a tier", d.Default)}
	}
	return nil
}

func validateLevels(cfg SurvivorConfig) error {
	if len(cfg.Levels) == 0 {
		return ValidationError{Code: "NO_LEVELS", Message: "at least one level is required"}
	}
	ref, _ := cfg.Difficulty.Tier(cfg.Difficulty.Reference)
	for i, l := range cfg.Levels {
		if l.TimeLimitSeconds <= 0 {
			return ValidationError{Code: "INVALID_LEVEL", Message: fmt.Sprintf("level %d has no time limit", i+1)}
		}
		// Every composed rate must keep pieces slower than one cell per tick
		for _, t := range cfg.Difficulty.Tiers {
			r := Compose(l, t, ref)
			if err := checkRates(fmt.Sprintf("level %d/%s", i+1, t.ID), r.SpawnIntervalMs, r.FallSpeed, cfg.Field.CellSize); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTraining(cfg SurvivorConfig) error {
	t := cfg.Training
	if t.TargetScore <= 0 {
		return ValidationError{Code: "INVALID_TRAINING", Message: "training target score must be positive"}
	}
	return checkRates("training", t.SpawnIntervalMs, t.FallSpeed, cfg.Field.CellSize)
}

func validateTimers(cfg SurvivorConfig) error {
	t := cfg.Timers
	if t.CountdownStepMs <= 0 || t.FlashMs < 0 || t.TerminalGraceMs < 0 {
		return ValidationError{Code: "INVALID_TIMERS", Message: "countdown step must be positive and durations not negative"}
	}
	if t.InactivityEnabled && (t.InactivityLimitMs <= 0 || t.InactivityWarnMs < 0 || t.InactivityWarnMs >= t.InactivityLimitMs) {
		return ValidationError{
			Code:    "INVALID_INACTIVITY",
			Message: fmt.Sprintf("need 0 <= warn < limit, got warn %.0f limit %.0f", t.InactivityWarnMs, t.InactivityLimitMs),
		}
	}
	return nil
}

func checkRates(name string, spawnMs, fall, cell float64) error {
	if spawnMs <= 0 || fall <= 0 {
		return ValidationError{Code: "INVALID_RATES", Message: fmt.Sprintf("%s: spawn interval and fall speed must be positive", name)}
	}
	if fall >= cell {
		return ValidationError{Code: "FALL_TOO_FAST", Message: fmt.Sprintf("%s: fall speed %.2f must stay below one cell (%.0f) per tick", name, fall, cell)}
	}
	return nil
}
