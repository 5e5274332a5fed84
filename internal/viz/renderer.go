package viz

import (
	"context"
	"time"

	"go.uber.org/zap"

	"routeviz/internal/logging"
	"routeviz/internal/metrics"
	"routeviz/internal/model"
	"routeviz/internal/store"
)

// Renderer builds vehicle figures from the store, going through the cache.
// Cache failures are logged and the figure is recomputed.
type Renderer struct {
	Store    store.Store
	Cache    FigureCache
	Settings Settings
	Log      *zap.Logger
}

func NewRenderer(s store.Store, c FigureCache, settings Settings, log *zap.Logger) *Renderer {
	if c == nil {
		c = NewMemoryCache()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{Store: s, Cache: c, Settings: settings, Log: log}
}

// Figure returns the figure for vehicle or store.ErrNotFound.
func (r *Renderer) Figure(ctx context.Context, vehicle string) (model.Figure, error) {
	key := CacheKey(r.Store.Info().Version, vehicle)
	cctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	fig, ok, err := r.Cache.Get(cctx, key)
	cancel()
	switch {
	case err != nil:
		metrics.FigureCache.WithLabelValues("error").Inc()
		r.Log.Warn("figure cache get failed", zap.String(logging.FieldVehicle, vehicle), zap.Error(err))
	case ok:
		metrics.FigureCache.WithLabelValues("hit").Inc()
		return fig, nil
	default:
		metrics.FigureCache.WithLabelValues("miss").Inc()
	}

	g, err := r.Store.VehicleGeometry(ctx, vehicle)
	if err != nil {
		return model.Figure{}, err
	}
	fig = BuildFigure(vehicle, g, r.Settings)

	cctx, cancel = context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := r.Cache.Set(cctx, key, fig); err != nil {
		r.Log.Warn("figure cache set failed", zap.String(logging.FieldVehicle, vehicle), zap.Error(err))
	}
	return fig, nil
}
