package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"routeviz/internal/api"
	"routeviz/internal/buildinfo"
	"routeviz/internal/config"
	"routeviz/internal/geometry"
	"routeviz/internal/integrations"
	"routeviz/internal/integrations/csvfile"
	"routeviz/internal/logging"
	"routeviz/internal/metrics"
	"routeviz/internal/store"
	"routeviz/internal/viz"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("ROUTEVIZ_CONFIG"), "path to config.yml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath, *cfgPath != "")
	if err != nil {
		// logger config is part of what failed to load
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Environment)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("exiting", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.RegisterDefault()
	log.Info("starting", zap.Any("build", buildinfo.Info()))

	src, closeSrc, err := datasetSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	opts := geometry.Options{NoRoute: cfg.Data.NoRoute, Delimiter: cfg.Data.Delimiter}
	st, err := store.Load(ctx, src, opts)
	if err != nil {
		return err
	}
	info := st.Info()
	log.Info("dataset loaded",
		zap.String(logging.FieldSource, info.Source),
		zap.Int("depots", info.Depots),
		zap.Int("clients", info.Clients),
		zap.Int("vehicles", info.Vehicles),
	)
	reportDropped(ctx, st, log)

	cache, closeCache := figureCache(ctx, cfg, log)
	defer closeCache()

	srvDeps := api.NewServer(cfg, st, cache, log)

	mux := http.NewServeMux()

	// Map page and assets
	mux.HandleFunc("/", srvDeps.StaticHandler)
	mux.HandleFunc("/map", srvDeps.StaticHandler)
	mux.HandleFunc("/static/", srvDeps.StaticHandler)

	// Vehicles and geometry
	mux.HandleFunc("/v1/vehicles", srvDeps.VehiclesIndexHandler)
	mux.HandleFunc("/v1/vehicles/", srvDeps.VehicleByIDHandler) // {id}/figure, {id}/geometry, {id}/route
	mux.HandleFunc("/v1/geometry", srvDeps.GeometryHandler)
	mux.HandleFunc("/v1/summary", srvDeps.SummaryHandler)
	mux.HandleFunc("/v1/locations", srvDeps.LocationsHandler)
	mux.HandleFunc("/v1/playback/ws", srvDeps.PlaybackWSHandler)

	// Health, metrics, debug
	mux.HandleFunc("/healthz", srvDeps.HealthHandler)
	mux.HandleFunc("/readyz", srvDeps.ReadyHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/debug/vars.json", srvDeps.DebugJSON)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Middleware(mux, log, api.NewLimiter(cfg.Server.RateRPS, cfg.Server.RateBurst)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String(logging.FieldAddress, addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// datasetSource picks Postgres when a database url is configured, CSV files otherwise.
func datasetSource(ctx context.Context, cfg config.AppConfig) (integrations.DatasetSource, func(), error) {
	if cfg.Database.URL == "" {
		return csvfile.Adapter{
			DepotsPath:  cfg.Data.DepotsPath,
			ClientsPath: cfg.Data.ClientsPath,
			RoutesPath:  cfg.Data.RoutesPath,
		}, func() {}, nil
	}
	pg, err := store.NewPostgres(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Migrate {
		if err := pg.MigrateDir(ctx, cfg.Database.MigrationsDir); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
	}
	// tables are read once at startup; the handle is not needed afterwards
	return pg, func() { _ = pg.Close() }, nil
}

// figureCache uses Redis when configured and reachable, the in-process cache otherwise.
func figureCache(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (viz.FigureCache, func()) {
	if cfg.Cache.RedisURL == "" {
		return viz.NewMemoryCache(), func() {}
	}
	rc, err := viz.NewRedisCache(cfg.Cache.RedisURL, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err == nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = rc.Ping(pctx)
		cancel()
		if err == nil {
			return rc, func() { _ = rc.Close() }
		}
		_ = rc.Close()
	}
	log.Warn("redis figure cache unavailable, using memory", zap.Error(err))
	return viz.NewMemoryCache(), func() {}
}

// reportDropped logs vehicles whose routes reference unknown keys and publishes the counts.
func reportDropped(ctx context.Context, st store.Store, log *zap.Logger) {
	summary, err := st.Summary(ctx)
	if err != nil {
		return
	}
	metrics.ObserveDataset(summary)
	g, err := st.Geometry(ctx)
	if err != nil {
		return
	}
	keys := map[string][]string{}
	for _, d := range g.Dropped {
		keys[d.Vehicle] = append(keys[d.Vehicle], d.Key)
	}
	for _, s := range summary {
		if s.Dropped == 0 {
			continue
		}
		log.Warn("route references unknown locations",
			zap.String(logging.FieldVehicle, s.Vehicle),
			zap.Int(logging.FieldCount, s.Dropped),
			zap.Strings("keys", keys[s.Vehicle]),
		)
	}
}
