package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, populated from the environment.
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	SpawnMultiplier    float64 `env:"SPAWN_MULTIPLIER" envDefault:"1.0"`
	PackSizeMultiplier float64 `env:"PACK_SIZE_MULTIPLIER" envDefault:"1.0"`
	MaxPortals         int     `env:"MAX_PORTALS" envDefault:"3"`

	DebugMapDump bool `env:"DEBUG_MAP_DUMP" envDefault:"false"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
