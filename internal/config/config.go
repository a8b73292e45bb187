// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server configuration. Every field has a workable
// default; an empty environment yields a playable local server.
type Config struct {
	Addr     string `envconfig:"ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Static assets served at the site root. Empty disables the file
	// server and leaves only the API routes.
	ClientDir string `envconfig:"CLIENT_DIR" default:""`

	// Simulation cadences.
	StatTickInterval    time.Duration `envconfig:"STAT_TICK_INTERVAL" default:"100ms"`
	EffectSweepInterval time.Duration `envconfig:"EFFECT_SWEEP_INTERVAL" default:"250ms"`
	ScoreTickInterval   time.Duration `envconfig:"SCORE_TICK_INTERVAL" default:"10s"`
	ScoreTickPoints     int           `envconfig:"SCORE_TICK_POINTS" default:"10"`

	// Leaderboard backend. Empty keeps scores in process memory.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
}

// Load reads the configuration from LIFESIM_-prefixed environment
// variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("lifesim", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: empty listen address")
	}
	if c.StatTickInterval <= 0 {
		return fmt.Errorf("config: stat tick interval must be positive")
	}
	if c.EffectSweepInterval <= 0 {
		return fmt.Errorf("config: effect sweep interval must be positive")
	}
	if c.ScoreTickInterval <= 0 {
		return fmt.Errorf("config: score tick interval must be positive")
	}
	if c.ScoreTickPoints <= 0 {
		return fmt.Errorf("config: score tick points must be positive")
	}
	return nil
}
