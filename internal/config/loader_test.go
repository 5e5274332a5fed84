package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Map.Zoom != 12 || cfg.Map.FrameDurationMs != 500 || cfg.Data.NoRoute != "Sin ruta" || cfg.Data.Delimiter != " -> " {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRequiredMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml"), true); err == nil {
		t.Fatal("expected error for required missing file")
	}
}

func TestLoadFileAndValidate(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yml")
	body := []byte(`
server:
  port: 9090
map:
  style: open-street-map
  zoom: 11
  frameDurationMs: 250
  defaultCenter:
    lat: 4.6
    lon: -74.08
`)
	if err := os.WriteFile(p, body, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(p, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Map.Style != "open-street-map" || cfg.Map.DefaultCenter.Lat != 4.6 {
		t.Fatalf("file values not applied: %+v", cfg.Map)
	}
	// unspecified keys keep defaults
	if cfg.Data.RoutesPath != "results/reporte_rutas.csv" {
		t.Fatalf("default lost: %q", cfg.Data.RoutesPath)
	}

	if err := os.WriteFile(p, []byte("map:\n  zoom: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p, true); err == nil {
		t.Fatal("expected validation error for zoom 40")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"PORT":         "7000",
		"DATABASE_URL": "postgres://u@h/db",
		"DB_MIGRATE":   "false",
		"REDIS_URL":    "redis://localhost:6379/0",
		"LOG_LEVEL":    "WARN",
	}
	applyEnv(&cfg, func(k string) string { return env[k] })
	if cfg.Server.Port != 7000 || cfg.Database.URL == "" || cfg.Database.Migrate || cfg.Cache.RedisURL == "" || cfg.Log.Level != "warn" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r := Redacted(cfg)
	if r.Database.URL != "***" || r.Cache.RedisURL != "***" {
		t.Fatalf("not redacted: %+v", r)
	}
}

func TestValidateRequiresSource(t *testing.T) {
	cfg := Default()
	cfg.Data.RoutesPath = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error without routes path or database")
	}
}
