package store

import (
	"context"
	"errors"
	"testing"

	"routeviz/internal/geometry"
	"routeviz/internal/integrations"
	"routeviz/internal/model"
)

func sampleTables() model.Tables {
	return model.Tables{
		Depots:  []model.Depot{{ID: 1, Lon: 10, Lat: 20}, {ID: 2, Lon: 12, Lat: 22}},
		Clients: []model.Client{{ID: 1, Product: 1, Lon: 11, Lat: 21}, {ID: 7, Product: 3, Lon: 11.5, Lat: 21.5}},
		Routes: []model.RouteRow{
			{Vehicle: "1", Route: "D1 -> C3 -> C7"},
			{Vehicle: "2", Route: "Sin ruta"},
			{Vehicle: "3", Route: "D1 -> C1 -> D2"},
		},
	}
}

func TestLoadFromSource(t *testing.T) {
	ctx := context.Background()
	m, err := Load(ctx, integrations.Static{Label: "fixture", Tables: sampleTables()}, geometry.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info := m.Info()
	if info.Source != "fixture" || info.Vehicles != 3 || info.Depots != 2 || info.Clients != 2 || info.Version == "" {
		t.Fatalf("info: %+v", info)
	}
	routes, _ := m.Routes(ctx)
	if len(routes) != 3 || routes[0].Vehicle != "1" {
		t.Fatalf("routes order: %+v", routes)
	}
	if _, err := m.Route(ctx, "9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := m.VehicleGeometry(ctx, "9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	g, err := m.VehicleGeometry(ctx, "2")
	if err != nil || len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Fatalf("no-route vehicle: %+v %v", g, err)
	}
	g, _ = m.VehicleGeometry(ctx, "3")
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Fatalf("vehicle 3: %+v", g)
	}
	locs, _ := m.Locations(ctx)
	if len(locs) != 4 || locs[0].Key != "D1" {
		t.Fatalf("locations: %+v", locs)
	}
}

func TestLoadSourceError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, integrations.Static{}, geometry.DefaultOptions()); err == nil {
		t.Fatal("expected error from cancelled source")
	}
}
