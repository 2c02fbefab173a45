package config

import (
	"fmt"
	"time"

	"hnefatafl/game"
)

type Config struct {
	Rules    RulesConfig    `mapstructure:"rules"`
	Clock    ClockConfig    `mapstructure:"clock"`
	Scenario ScenarioConfig `mapstructure:"scenario"`
	Log      LogConfig      `mapstructure:"log"`
	SelfPlay SelfPlayConfig `mapstructure:"selfplay"`
}

type RulesConfig struct {
	Surround     string `mapstructure:"surround"`      // strict or extended
	StartingSide string `mapstructure:"starting_side"` // attacker or defender
}

// Build returns the configured rules and the side that moves first.
func (c RulesConfig) Build() (game.Rules, game.Side, error) {
	surround, err := game.ParseSurroundRule(c.Surround)
	if err != nil {
		return nil, game.Attacker, fmt.Errorf("rules.surround: %w", err)
	}
	side, err := game.ParseSide(c.StartingSide)
	if err != nil {
		return nil, game.Attacker, fmt.Errorf("rules.starting_side: %w", err)
	}
	return &game.StandardRules{Surround: surround}, side, nil
}

type ClockConfig struct {
	Total   time.Duration `mapstructure:"total"`    // per side, 0 disables
	PerTurn time.Duration `mapstructure:"per_turn"` // 0 disables
}

type ScenarioConfig struct {
	Path string `mapstructure:"path"` // empty: the standard 11x11 setup
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type SelfPlayConfig struct {
	Games       int    `mapstructure:"games"`
	Seed        uint64 `mapstructure:"seed"`
	MaxMoves    int    `mapstructure:"max_moves"`
	Parallelism int    `mapstructure:"parallelism"`
	OutDir      string `mapstructure:"out_dir"`
}
