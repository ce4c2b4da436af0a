package engine

import "skirmish-server/internal/domain"

// Значения по умолчанию для симуляции
const (
	DefaultMaxRounds      = 12
	DefaultTickIntervalMs = 1000
	DefaultComboDecayMs   = 4500
)

// Config хранит параметры симуляции. Нулевые поля означают "по умолчанию".
type Config struct {
	MaxRounds      int
	TickIntervalMs int64
	ComboDecayMs   int64
	Mode           domain.BattleMode
}

// NewConfig создает конфиг по умолчанию (PvE).
func NewConfig() Config {
	return Config{}.Normalize()
}

// Normalize подставляет значения по умолчанию вместо нулевых.
func (c Config) Normalize() Config {
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.TickIntervalMs <= 0 {
		c.TickIntervalMs = DefaultTickIntervalMs
	}
	if c.ComboDecayMs <= 0 {
		c.ComboDecayMs = DefaultComboDecayMs
	}
	if c.Mode == "" {
		c.Mode = domain.ModePvE
	}
	return c
}

// WithMode - копия конфига с другим режимом.
func (c Config) WithMode(mode domain.BattleMode) Config {
	c.Mode = mode
	return c
}
