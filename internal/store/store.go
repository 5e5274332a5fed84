package store

import (
	"context"

	"github.com/cockroachdb/errors"

	"routeviz/internal/model"
)

// Store is the read-only dataset interface used by the API server.
type Store interface {
	Info() model.DatasetInfo
	Ping(ctx context.Context) error

	// Vehicles
	Routes(ctx context.Context) ([]model.RouteRow, error)
	Route(ctx context.Context, vehicle string) (model.RouteRow, error)

	// Geometry
	Geometry(ctx context.Context) (model.Geometry, error)
	VehicleGeometry(ctx context.Context, vehicle string) (model.Geometry, error)
	Summary(ctx context.Context) ([]model.VehicleSummary, error)

	// Location index
	Locations(ctx context.Context) ([]model.Location, error)
}

var ErrNotFound = errors.New("not found")
