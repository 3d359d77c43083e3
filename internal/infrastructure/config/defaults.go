package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 50
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 100
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "robotgame"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "robotgame"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "robotgame.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Game defaults
	if cfg.Game.MapSize == 0 {
		cfg.Game.MapSize = 15
	}
	if cfg.Game.MaxRounds == 0 {
		cfg.Game.MaxRounds = 100
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = 6
	}
	if cfg.Game.StartingMoney == 0 {
		cfg.Game.StartingMoney = 500
	}

	// Lock defaults
	if cfg.Lock.LeaseDuration == 0 {
		cfg.Lock.LeaseDuration = 30 * time.Second
	}
	if cfg.Lock.InitialBackoff == 0 {
		cfg.Lock.InitialBackoff = 250 * time.Millisecond
	}
	if cfg.Lock.MaxBackoff == 0 {
		cfg.Lock.MaxBackoff = 2 * time.Second
	}
	if cfg.Lock.MaxWait == 0 {
		cfg.Lock.MaxWait = 60 * time.Second
	}
}
