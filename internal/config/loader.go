package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in each config directory.
const ConfigFile = "survivor.yaml"

// SourceEmbedded is reported when no file on disk supplied the tuning.
const SourceEmbedded = "embedded"

// LoadSurvivor loads and validates the tuning. See LoadSurvivorFrom.
func LoadSurvivor(customPath string) (SurvivorConfig, error) {
	cfg, _, err := LoadSurvivorFrom(customPath)
	return cfg, err
}

// LoadSurvivorFrom loads the tuning and reports where it came from.
//
// Search order: customPath, ~/.survivor/configs/survivor.yaml,
// ./configs/survivor.yaml, then the embedded defaults. A custom path must
// exist and parse. The other files are skipped when missing or malformed.
// Files are layered over the defaults, so they only need the keys they change.
// The result is validated whatever its source.
func LoadSurvivorFrom(customPath string) (SurvivorConfig, string, error) {
	if customPath != "" {
		cfg, err := decodeFile(customPath)
		if err != nil {
			return DefaultSurvivorConfig(), customPath, err
		}
		return cfg, customPath, checked(cfg, customPath)
	}

	for _, path := range searchPaths() {
		cfg, err := decodeFile(path)
		if err != nil {
			continue
		}
		return cfg, path, checked(cfg, path)
	}

	cfg := DefaultSurvivorConfig()
	if err := yaml.Unmarshal(defaultSurvivorYAML, &cfg); err != nil {
		cfg = DefaultSurvivorConfig()
	}
	return cfg, SourceEmbedded, checked(cfg, SourceEmbedded)
}

// decodeFile layers a YAML file over the defaults.
func decodeFile(path string) (SurvivorConfig, error) {
	cfg := DefaultSurvivorConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultSurvivorConfig(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// checked validates cfg, naming the source in the message but keeping the
// ValidationError reachable through errors.As.
func checked(cfg SurvivorConfig, source string) error {
	err := Validate(cfg)
	if err == nil {
		return nil
	}
	var verr ValidationError
	if errors.As(err, &verr) {
		return ValidationError{Code: verr.Code, Message: source + ": " + verr.Message}
	}
	return fmt.Errorf("config: %s: %w", source, err)
}

// searchPaths lists the optional config files in lookup order.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath(ConfigFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".survivor", "configs", filename)
}

// ParseDifficultyPreset converts a flag value into a preset.
// Accepts tier IDs and their one-letter codes, case-insensitively.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "e":
		return DifficultyEasy, nil
	case "medium", "m", "":
		return DifficultyMedium, nil
	case "hard", "h":
		return DifficultyHard, nil
	case "hardcore", "x":
		return DifficultyHardcore, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium, hard or hardcore)", s)
}
