package geometry

import (
	"testing"

	"routeviz/internal/model"
)

func testIndex() *Index {
	return NewIndex(
		[]model.Depot{{ID: 1, Lon: 10, Lat: 20}, {ID: 2, Lon: 12, Lat: 22}},
		[]model.Client{{ID: 1, Product: 4, Lon: 11, Lat: 21}, {ID: 7, Product: 2, Lon: 11, Lat: 21}},
	)
}

func TestBuildSkipsNoRoute(t *testing.T) {
	g := Build([]model.RouteRow{{Vehicle: "V2", Route: "Sin ruta"}}, testIndex(), DefaultOptions())
	if len(g.Nodes) != 0 || len(g.Edges) != 0 || len(g.Dropped) != 0 {
		t.Fatalf("sentinel route produced records: %+v", g)
	}
}

func TestBuildFullyResolved(t *testing.T) {
	g := Build([]model.RouteRow{{Vehicle: "V3", Route: "D1 -> C1 -> D2"}}, testIndex(), DefaultOptions())
	if len(g.Nodes) != 3 {
		t.Fatalf("want 3 nodes, got %d", len(g.Nodes))
	}
	for i, n := range g.Nodes {
		if n.Order != i {
			t.Fatalf("node %d has order %d", i, n.Order)
		}
	}
	if len(g.Edges) != 2 {
		t.Fatalf("want 2 edges, got %d", len(g.Edges))
	}
	e1 := g.Edges[0]
	if e1.StartLat != 20 || e1.StartLon != 10 || e1.EndLat != 21 || e1.EndLon != 11 {
		t.Fatalf("edge 1 does not join D1->C1: %+v", e1)
	}
	e2 := g.Edges[1]
	if e2.StartLat != 21 || e2.StartLon != 11 || e2.EndLat != 22 || e2.EndLon != 12 {
		t.Fatalf("edge 2 does not join C1->D2: %+v", e2)
	}
}

func TestBuildUnresolvedBreaksBothSides(t *testing.T) {
	g := Build([]model.RouteRow{{Vehicle: "V1", Route: "D1 -> C3 -> C7"}}, testIndex(), DefaultOptions())
	if len(g.Nodes) != 2 {
		t.Fatalf("want 2 nodes, got %d", len(g.Nodes))
	}
	if g.Nodes[0].Key != "D1" || g.Nodes[0].Order != 0 {
		t.Fatalf("first node: %+v", g.Nodes[0])
	}
	if g.Nodes[1].Key != "C7" || g.Nodes[1].Order != 2 {
		t.Fatalf("second node: %+v", g.Nodes[1])
	}
	if len(g.Edges) != 0 {
		t.Fatalf("want 0 edges, got %+v", g.Edges)
	}
	if len(g.Dropped) != 1 || g.Dropped[0].Key != "C3" || g.Dropped[0].Order != 1 {
		t.Fatalf("dropped: %+v", g.Dropped)
	}
}

func TestBuildEdgeIffBothEndsResolve(t *testing.T) {
	idx := testIndex()
	route := "D1 -> C1 -> X9 -> D2 -> C7 -> C99"
	g := Build([]model.RouteRow{{Vehicle: "V", Route: route}}, idx, DefaultOptions())
	keys, _ := SplitRoute(route, DefaultOptions())
	want := 0
	for i := 1; i < len(keys); i++ {
		_, a := idx.Lookup(keys[i-1])
		_, b := idx.Lookup(keys[i])
		if a && b {
			want++
		}
	}
	if len(g.Edges) != want {
		t.Fatalf("want %d edges, got %d", want, len(g.Edges))
	}
	if len(g.Nodes) > len(keys) {
		t.Fatalf("more nodes than keys: %d > %d", len(g.Nodes), len(keys))
	}
	if len(g.Nodes)+len(g.Dropped) != len(keys) {
		t.Fatalf("nodes+dropped != keys: %d+%d != %d", len(g.Nodes), len(g.Dropped), len(keys))
	}
}

func TestBuildChainsConsecutiveCoordinates(t *testing.T) {
	g := Build([]model.RouteRow{{Vehicle: "V", Route: "D1 -> C1 -> C7 -> D2 -> D1"}}, testIndex(), DefaultOptions())
	if len(g.Nodes) != 5 || len(g.Edges) != 4 {
		t.Fatalf("want 5 nodes / 4 edges, got %d / %d", len(g.Nodes), len(g.Edges))
	}
	for i, e := range g.Edges {
		a, b := g.Nodes[i], g.Nodes[i+1]
		if e.StartLat != a.Lat || e.StartLon != a.Lon || e.EndLat != b.Lat || e.EndLon != b.Lon {
			t.Fatalf("edge %d does not chain nodes %d->%d: %+v", i, i, i+1, e)
		}
	}
}

func TestForVehicle(t *testing.T) {
	rows := []model.RouteRow{
		{Vehicle: "1", Route: "D1 -> C1"},
		{Vehicle: "2", Route: "D2 -> C7 -> C5"},
		{Vehicle: "3", Route: "Sin ruta"},
	}
	g := Build(rows, testIndex(), DefaultOptions())
	v2 := ForVehicle(g, "2")
	if len(v2.Nodes) != 2 || len(v2.Edges) != 1 || len(v2.Dropped) != 1 {
		t.Fatalf("vehicle 2: %+v", v2)
	}
	v3 := ForVehicle(g, "3")
	if v3.Nodes == nil || len(v3.Nodes) != 0 {
		t.Fatalf("vehicle 3 should have an empty, non-nil node list")
	}
}

func TestSplitRoute(t *testing.T) {
	opts := DefaultOptions()
	if _, ok := SplitRoute("  Sin ruta ", opts); ok {
		t.Fatal("padded sentinel should mean no route")
	}
	if _, ok := SplitRoute("", opts); ok {
		t.Fatal("empty route should mean no route")
	}
	keys, ok := SplitRoute("D1 -> C2", opts)
	if !ok || len(keys) != 2 || keys[0] != "D1" || keys[1] != "C2" {
		t.Fatalf("split: %v %v", keys, ok)
	}
	keys, ok = SplitRoute("D1|C2|D1", Options{Delimiter: "|", NoRoute: "none"})
	if !ok || len(keys) != 3 {
		t.Fatalf("custom delimiter: %v", keys)
	}
}

func TestIndexDepotWinsAndOrder(t *testing.T) {
	idx := NewIndex(
		[]model.Depot{{ID: 5, Lon: 1, Lat: 2}, {ID: 5, Lon: 3, Lat: 4}},
		[]model.Client{{ID: 5, Product: 1, Lon: 9, Lat: 9}},
	)
	d, ok := idx.Lookup("D5")
	if !ok || d.Lon != 3 || d.Lat != 4 {
		t.Fatalf("repeated depot should keep last row: %+v", d)
	}
	c, ok := idx.Lookup("C5")
	if !ok || c.Kind != model.KindClient || c.Product != 1 {
		t.Fatalf("client lookup: %+v", c)
	}
	list := idx.List()
	if len(list) != 2 || list[0].Key != "D5" || list[1].Key != "C5" {
		t.Fatalf("list order: %+v", list)
	}
	var nilIdx *Index
	if _, ok := nilIdx.Lookup("D5"); ok {
		t.Fatal("nil index should not resolve")
	}
}
