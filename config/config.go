// ABOUTME: Configuration management for GA tuning constants
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GAConfig holds the tuning constants from SPEC_FULL.md §6. This is
// distinct from TeamingOptions (the user's per-run teaming preferences,
// which this repository never persists — see SPEC_FULL.md §1).
type GAConfig struct {
	PopulationSize int `toml:"population_size"`
	// TournamentSize overrides T = max(2, population_size/500) when > 0.
	TournamentSize         int     `toml:"tournament_size"`
	TopGenomeLikelihood    float64 `toml:"top_genome_likelihood"`
	NumElites              int     `toml:"num_elites"`
	NumAncestorGenerations int     `toml:"num_ancestor_generations"`
	MutationLikelihood     float64 `toml:"mutation_likelihood"`
	MinGenerations         int     `toml:"min_generations"`
	MaxGenerations         int     `toml:"max_generations"`
	GenerationsOfStability int     `toml:"generations_of_stability"`
	MinScoreStability      float64 `toml:"min_score_stability"`
}

// DefaultConfig returns the tuning defaults from SPEC_FULL.md §6.
func DefaultConfig() GAConfig {
	return GAConfig{
		PopulationSize:         30000,
		TournamentSize:         0, // derive from population size
		TopGenomeLikelihood:    0.33,
		NumElites:              3,
		NumAncestorGenerations: 3,
		MutationLikelihood:     0.5,
		MinGenerations:         40,
		MaxGenerations:         500,
		GenerationsOfStability: 25,
		MinScoreStability:      100,
	}
}

// ResolvedTournamentSize returns TournamentSize if set, else the derived
// default max(2, PopulationSize/500).
func (c GAConfig) ResolvedTournamentSize() int {
	if c.TournamentSize > 0 {
		return c.TournamentSize
	}
	t := c.PopulationSize / 500
	if t < 2 {
		t = 2
	}
	return t
}

// LoadConfig loads tuning constants from a TOML file. If the file doesn't
// exist, it returns defaults without error.
func LoadConfig(path string) (GAConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig writes tuning constants to a TOML file, creating parent
// directories as needed.
func SaveConfig(path string, config GAConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path: current directory
// first, falling back to ~/.config/teamforge/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./teamforge.toml"); err == nil {
		return "./teamforge.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./teamforge.toml"
	}

	return filepath.Join(home, ".config", "teamforge", "config.toml")
}
