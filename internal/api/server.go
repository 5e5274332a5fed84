// Package api implements HTTP handlers and helpers for the route viewer.
package api

import (
	"go.uber.org/zap"

	"routeviz/internal/config"
	"routeviz/internal/geometry"
	"routeviz/internal/model"
	"routeviz/internal/store"
	"routeviz/internal/viz"
)

type Server struct {
	Store    store.Store
	Renderer *viz.Renderer
	Opts     geometry.Options
	Config   config.AppConfig
	Log      *zap.Logger
}

// NewServer wires handlers over a loaded dataset. A nil cache means in-process caching.
func NewServer(cfg config.AppConfig, st store.Store, cache viz.FigureCache, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	settings := viz.Settings{
		Style:           cfg.Map.Style,
		Zoom:            cfg.Map.Zoom,
		FrameDurationMs: cfg.Map.FrameDurationMs,
		DefaultCenter:   model.GeoPoint{Lat: cfg.Map.DefaultCenter.Lat, Lon: cfg.Map.DefaultCenter.Lon},
	}
	return &Server{
		Store:    st,
		Renderer: viz.NewRenderer(st, cache, settings, log),
		Opts:     geometry.Options{NoRoute: cfg.Data.NoRoute, Delimiter: cfg.Data.Delimiter},
		Config:   cfg,
		Log:      log,
	}
}
