package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"routeviz/internal/geometry"
	"routeviz/internal/integrations"
	"routeviz/internal/model"
)

// Memory holds a dataset loaded once at startup. Nothing mutates it afterwards,
// so readers need no locking.
type Memory struct {
	info      model.DatasetInfo
	opts      geometry.Options
	tables    model.Tables
	index     *geometry.Index
	geom      model.Geometry
	summary   []model.VehicleSummary
	byVehicle map[string]int // vehicle -> first row in tables.Routes
}

// Load reads the tables from src and derives the geometry.
func Load(ctx context.Context, src integrations.DatasetSource, opts geometry.Options) (*Memory, error) {
	tables, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s dataset", src.Name())
	}
	return NewMemory(src.Name(), tables, opts), nil
}

// NewMemory builds the location index and geometry from already parsed tables.
func NewMemory(source string, tables model.Tables, opts geometry.Options) *Memory {
	idx := geometry.NewIndex(tables.Depots, tables.Clients)
	g := geometry.Build(tables.Routes, idx, opts)
	m := &Memory{
		opts:      opts,
		tables:    tables,
		index:     idx,
		geom:      g,
		summary:   geometry.Summarize(tables.Routes, g, opts),
		byVehicle: make(map[string]int, len(tables.Routes)),
	}
	for i, r := range tables.Routes {
		if _, ok := m.byVehicle[r.Vehicle]; !ok {
			m.byVehicle[r.Vehicle] = i
		}
	}
	m.info = model.DatasetInfo{
		Source:   source,
		Version:  uuid.New().String(),
		Depots:   len(tables.Depots),
		Clients:  len(tables.Clients),
		Vehicles: len(m.byVehicle),
		LoadedAt: time.Now().UTC(),
	}
	return m
}

func (m *Memory) Info() model.DatasetInfo { return m.info }

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Routes(ctx context.Context) ([]model.RouteRow, error) {
	return append([]model.RouteRow(nil), m.tables.Routes...), nil
}

func (m *Memory) Route(ctx context.Context, vehicle string) (model.RouteRow, error) {
	i, ok := m.byVehicle[vehicle]
	if !ok {
		return model.RouteRow{}, ErrNotFound
	}
	return m.tables.Routes[i], nil
}

func (m *Memory) Geometry(ctx context.Context) (model.Geometry, error) {
	return m.geom, nil
}

func (m *Memory) VehicleGeometry(ctx context.Context, vehicle string) (model.Geometry, error) {
	if _, ok := m.byVehicle[vehicle]; !ok {
		return model.Geometry{}, ErrNotFound
	}
	return geometry.ForVehicle(m.geom, vehicle), nil
}

func (m *Memory) Summary(ctx context.Context) ([]model.VehicleSummary, error) {
	return append([]model.VehicleSummary(nil), m.summary...), nil
}

func (m *Memory) Locations(ctx context.Context) ([]model.Location, error) {
	return m.index.List(), nil
}
