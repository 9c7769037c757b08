package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/mapquiz.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// RedisURL switches history storage from sqlite to redis when set.
	RedisURL string `env:"REDIS_URL"`

	// GeoDataDir serves province GeoJSON from local files when set;
	// otherwise boundaries are fetched from GeoDataURL.
	GeoDataDir string `env:"GEODATA_DIR"`
	GeoDataURL string `env:"GEODATA_URL" envDefault:"https://tebakkabupaten-backend-production.up.railway.app"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
