// Package config собирает настройки сервера: значения по умолчанию,
// затем TOML-файл, затем переменные окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"skirmish-server/internal/engine"
)

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Engine      EngineConfig      `toml:"engine"`
	Replay      ReplayConfig      `toml:"replay"`
	Matchmaking MatchmakingConfig `toml:"matchmaking"`
}

type ServerConfig struct {
	Port              string        `toml:"port" env:"CD_PORT"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout" env:"SKIRMISH_READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout" env:"SKIRMISH_SHUTDOWN_TIMEOUT"`
}

type EngineConfig struct {
	MaxRounds      int   `toml:"max_rounds" env:"SKIRMISH_MAX_ROUNDS"`
	TickIntervalMs int64 `toml:"tick_interval_ms" env:"SKIRMISH_TICK_INTERVAL_MS"`
	ComboDecayMs   int64 `toml:"combo_decay_ms" env:"SKIRMISH_COMBO_DECAY_MS"`
}

type ReplayConfig struct {
	Dir     string `toml:"dir" env:"SKIRMISH_REPLAY_DIR"`
	Enabled bool   `toml:"enabled" env:"SKIRMISH_REPLAY_ENABLED"`
}

type MatchmakingConfig struct {
	Buffer int `toml:"buffer" env:"SKIRMISH_MATCH_BUFFER"` // емкость канала MatchCreated
}

// Load читает конфиг. Пустой path - только умолчания и окружение.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Engine: EngineConfig{
			MaxRounds:      engine.DefaultMaxRounds,
			TickIntervalMs: engine.DefaultTickIntervalMs,
			ComboDecayMs:   engine.DefaultComboDecayMs,
		},
		Replay: ReplayConfig{
			Dir:     "./replays",
			Enabled: true,
		},
		Matchmaking: MatchmakingConfig{
			Buffer: 16,
		},
	}
}

// Validate отклоняет пустые и неположительные значения.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is empty"))
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_header_timeout must be positive, got %s", c.Server.ReadHeaderTimeout))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Engine.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_rounds must be positive, got %d", c.Engine.MaxRounds))
	}
	if c.Engine.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("engine.tick_interval_ms must be positive, got %d", c.Engine.TickIntervalMs))
	}
	if c.Engine.ComboDecayMs <= 0 {
		errs = append(errs, fmt.Errorf("engine.combo_decay_ms must be positive, got %d", c.Engine.ComboDecayMs))
	}
	if c.Replay.Enabled && c.Replay.Dir == "" {
		errs = append(errs, errors.New("replay.dir is empty while replays are enabled"))
	}
	if c.Matchmaking.Buffer < 0 {
		errs = append(errs, fmt.Errorf("matchmaking.buffer must not be negative, got %d", c.Matchmaking.Buffer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// EngineConfig - параметры движка для матчей (режим задает сам матч).
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		MaxRounds:      c.Engine.MaxRounds,
		TickIntervalMs: c.Engine.TickIntervalMs,
		ComboDecayMs:   c.Engine.ComboDecayMs,
	}.Normalize()
}

// Addr - адрес для http.Server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
