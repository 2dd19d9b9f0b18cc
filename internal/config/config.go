package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevelopmentTokenSecret signs tokens when TOKEN_SECRET is unset and games
// are kept in memory.
const DevelopmentTokenSecret = "local-development-secret"

type Config struct {
	Port                     int    `env:"PORT" envDefault:"8080"`
	DatabaseURL              string `env:"DATABASE_URL"`
	AutoMigrate              bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	DBMaxOpenConns           int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns           int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeSeconds int    `env:"DB_CONN_MAX_LIFETIME_SECONDS" envDefault:"300"`
	DBConnMaxIdleTimeSeconds int    `env:"DB_CONN_MAX_IDLE_SECONDS" envDefault:"60"`
	TokenSecret              string `env:"TOKEN_SECRET"`
	TokenTTLHours            int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	GameQueueSize            int    `env:"GAME_QUEUE_SIZE" envDefault:"64"`
	DefaultMaxTeams          int    `env:"DEFAULT_MAX_TEAMS" envDefault:"3"`
	DefaultMaxPlayersPerTeam int    `env:"DEFAULT_MAX_PLAYERS_PER_TEAM" envDefault:"3"`
	BoardCategories          int    `env:"BOARD_CATEGORIES" envDefault:"6"`
	BoardTilesPerCategory    int    `env:"BOARD_TILES_PER_CATEGORY" envDefault:"5"`
	OTelEndpoint             string `env:"OTEL_ENDPOINT"`
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Port:                     8080,
		AutoMigrate:              true,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		TokenSecret:              DevelopmentTokenSecret,
		TokenTTLHours:            24,
		GameQueueSize:            64,
		DefaultMaxTeams:          3,
		DefaultMaxPlayersPerTeam: 3,
		BoardCategories:          6,
		BoardTilesPerCategory:    5,
	}
}

// Load reads the configuration from the environment. Non-positive sizes
// fall back to their defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	defaults := Default()
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = defaults.TokenSecret
	}
	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = defaults.TokenTTLHours
	}
	if cfg.GameQueueSize <= 0 {
		cfg.GameQueueSize = defaults.GameQueueSize
	}
	if cfg.DefaultMaxTeams <= 0 {
		cfg.DefaultMaxTeams = defaults.DefaultMaxTeams
	}
	if cfg.DefaultMaxPlayersPerTeam <= 0 {
		cfg.DefaultMaxPlayersPerTeam = defaults.DefaultMaxPlayersPerTeam
	}
	if cfg.BoardCategories <= 0 {
		cfg.BoardCategories = defaults.BoardCategories
	}
	if cfg.BoardTilesPerCategory <= 0 {
		cfg.BoardTilesPerCategory = defaults.BoardTilesPerCategory
	}
	return cfg, nil
}

// ValidateServer refuses the development token secret once games are
// persisted, since tokens then outlive the process.
func (c Config) ValidateServer() error {
	if c.DatabaseURL != "" && c.TokenSecret == DevelopmentTokenSecret {
		return fmt.Errorf("TOKEN_SECRET must be set when DATABASE_URL is set")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}
