package config

import "time"

// GameConfig holds the gameplay defaults applied when a create-game request
// leaves them unset
type GameConfig struct {
	MapSize       int `mapstructure:"map_size" validate:"min=3"`
	MaxRounds     int `mapstructure:"max_rounds" validate:"min=1"`
	MaxPlayers    int `mapstructure:"max_players" validate:"min=1"`
	StartingMoney int `mapstructure:"starting_money" validate:"min=0"`
}

// LockConfig holds the per-game lease lock tuning
type LockConfig struct {
	LeaseDuration  time.Duration `mapstructure:"lease_duration"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
	MaxWait        time.Duration `mapstructure:"max_wait"`
}
