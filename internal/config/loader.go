// Package config loads the viewer configuration from YAML and the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"routeviz/internal/model"
)

// DefaultPath is read when neither -config nor ROUTEVIZ_CONFIG is given.
const DefaultPath = "config.yml"

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 8080, RateRPS: 50, RateBurst: 100},
		Data: DataConfig{
			DepotsPath:  "data/Depots.csv",
			ClientsPath: "data/Clients.csv",
			RoutesPath:  "results/reporte_rutas.csv",
			NoRoute:     model.NoRoute,
			Delimiter:   model.RouteDelimiter,
		},
		Database: DatabaseConfig{Migrate: true, MigrationsDir: "db/migrations"},
		Cache:    CacheConfig{TTLSeconds: 600},
		Map:      MapConfig{Style: "carto-positron", Zoom: 12, FrameDurationMs: 500},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, applies env overrides and validates.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (AppConfig, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, errors.Wrapf(err, "parse %s", path)
		}
	case os.IsNotExist(err) && !required:
	default:
		return AppConfig{}, errors.Wrapf(err, "read %s", path)
	}
	applyEnv(&cfg, os.Getenv)
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that a table source is configured.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if cfg.Database.URL == "" {
		if cfg.Data.DepotsPath == "" || cfg.Data.ClientsPath == "" || cfg.Data.RoutesPath == "" {
			return errors.New("invalid config: data paths are required when no database url is set")
		}
	}
	return nil
}

func applyEnv(cfg *AppConfig, getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := getenv("RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateRPS = f
		}
	}
	if v := getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateBurst = n
		}
	}
	if v := getenv("DATABASE_URL"); strings.TrimSpace(v) != "" {
		cfg.Database.URL = v
	}
	if getenv("DB_MIGRATE") == "false" {
		cfg.Database.Migrate = false
	}
	if v := getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := getenv("ENVIRONMENT"); v != "" {
		cfg.Log.Environment = v
	}
}

// Redacted returns cfg with connection strings masked, for debug output.
func Redacted(cfg AppConfig) AppConfig {
	if cfg.Database.URL != "" {
		cfg.Database.URL = "***"
	}
	if cfg.Cache.RedisURL != "" {
		cfg.Cache.RedisURL = "***"
	}
	return cfg
}
