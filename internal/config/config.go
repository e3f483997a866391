// Package config handles animset configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Animation AnimationConfig `yaml:"animation"`
	Watch     WatchConfig     `yaml:"watch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DataConfig holds resource locations.
type DataConfig struct {
	SearchPaths []string `yaml:"search_paths"` // Directories with loose files
	Archives    []string `yaml:"archives"`     // .pk3 packs, later entries win
}

// AnimationConfig holds table limits and the archetype models.
type AnimationConfig struct {
	MaxAnimations   int         `yaml:"max_animations"`    // Table capacity per model
	MaxScriptModels int         `yaml:"max_script_models"` // Animation group slots
	MaxClients      int         `yaml:"max_clients"`       // Client slots in the index
	Human           ModelConfig `yaml:"human"`
	Alien           ModelConfig `yaml:"alien"`
}

// ModelConfig describes one archetype's resources.
type ModelConfig struct {
	ModelName      string   `yaml:"model_name"`
	Table          string   `yaml:"table"`  // animation count/rate table
	Events         string   `yaml:"events"` // animation event table
	Humanoid       bool     `yaml:"humanoid"`
	AnimationGroup []string `yaml:"animation_group"`
}

// WatchConfig holds hot reload settings.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			SearchPaths: []string{"."},
		},
		Animation: AnimationConfig{
			MaxAnimations:   64,
			MaxScriptModels: 16,
			MaxClients:      64,
			Human: ModelConfig{
				ModelName:      "human",
				Table:          "models/players/human/animation.cfg",
				Events:         "models/players/human/animation.evt",
				Humanoid:       true,
				AnimationGroup: append([]string(nil), HumanAnimationGroup...),
			},
			Alien: ModelConfig{
				ModelName:      "alien",
				Table:          "models/players/alien/animation.cfg",
				Events:         "models/players/alien/animation.evt",
				Humanoid:       false,
				AnimationGroup: append([]string(nil), AlienAnimationGroup...),
			},
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validation errors.
var (
	ErrInvalidLimit = errors.New("limit must be positive")
	ErrMissingModel = errors.New("model name is required")
	ErrGroupTooLong = errors.New("animation group exceeds max_script_models")
)

// Validate checks that the configuration can be used to build animation sets.
func (c *Config) Validate() error {
	a := &c.Animation
	limits := []struct {
		name  string
		value int
	}{
		{"max_animations", a.MaxAnimations},
		{"max_script_models", a.MaxScriptModels},
		{"max_clients", a.MaxClients},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return fmt.Errorf("animation.%s: %w (got %d)", l.name, ErrInvalidLimit, l.value)
		}
	}

	for name, m := range map[string]ModelConfig{"human": a.Human, "alien": a.Alien} {
		if m.ModelName == "" {
			return fmt.Errorf("animation.%s: %w", name, ErrMissingModel)
		}
		if len(m.AnimationGroup) > a.MaxScriptModels {
			return fmt.Errorf("animation.%s: %w (%d > %d)", name, ErrGroupTooLong,
				len(m.AnimationGroup), a.MaxScriptModels)
		}
	}
	return nil
}
