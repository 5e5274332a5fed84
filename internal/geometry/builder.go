package geometry

import (
	"strings"

	"routeviz/internal/model"
)

// Options controls how route strings are read.
type Options struct {
	NoRoute   string
	Delimiter string
}

// DefaultOptions matches the format written by the routing solver.
func DefaultOptions() Options {
	return Options{NoRoute: model.NoRoute, Delimiter: model.RouteDelimiter}
}

func (o Options) normalized() Options {
	if o.NoRoute == "" {
		o.NoRoute = model.NoRoute
	}
	if o.Delimiter == "" {
		o.Delimiter = model.RouteDelimiter
	}
	return o
}

// SplitRoute returns the ordered node keys of a route string.
// ok is false when the vehicle has no route assigned.
func SplitRoute(route string, opts Options) (keys []string, ok bool) {
	opts = opts.normalized()
	route = strings.TrimSpace(route)
	if route == "" || route == opts.NoRoute {
		return nil, false
	}
	keys = strings.Split(route, opts.Delimiter)
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys, true
}

// Build derives node and edge records for every routed vehicle.
//
// A position whose key is not in the index produces no node and is reported in
// Dropped. An edge for position i exists only if the keys at i and at the raw
// position i-1 both resolve, so an unresolved stop removes the edges on both of
// its sides rather than bridging the gap.
func Build(routes []model.RouteRow, idx *Index, opts Options) model.Geometry {
	g := model.Geometry{Nodes: []model.NodeRecord{}, Edges: []model.EdgeRecord{}, Dropped: []model.DroppedNode{}}
	for _, row := range routes {
		keys, ok := SplitRoute(row.Route, opts)
		if !ok {
			continue
		}
		for i, key := range keys {
			cur, found := idx.Lookup(key)
			if !found {
				g.Dropped = append(g.Dropped, model.DroppedNode{Vehicle: row.Vehicle, Key: key, Order: i})
				continue
			}
			g.Nodes = append(g.Nodes, model.NodeRecord{
				Vehicle: row.Vehicle,
				Key:     key,
				Lat:     cur.Lat,
				Lon:     cur.Lon,
				Order:   i,
			})
			if i == 0 {
				continue
			}
			prev, found := idx.Lookup(keys[i-1])
			if !found {
				continue
			}
			g.Edges = append(g.Edges, model.EdgeRecord{
				Vehicle:  row.Vehicle,
				StartLat: prev.Lat,
				StartLon: prev.Lon,
				EndLat:   cur.Lat,
				EndLon:   cur.Lon,
			})
		}
	}
	return g
}

// ForVehicle returns the subset of g belonging to one vehicle.
func ForVehicle(g model.Geometry, vehicle string) model.Geometry {
	out := model.Geometry{Nodes: []model.NodeRecord{}, Edges: []model.EdgeRecord{}, Dropped: []model.DroppedNode{}}
	for _, n := range g.Nodes {
		if n.Vehicle == vehicle {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if e.Vehicle == vehicle {
			out.Edges = append(out.Edges, e)
		}
	}
	for _, d := range g.Dropped {
		if d.Vehicle == vehicle {
			out.Dropped = append(out.Dropped, d)
		}
	}
	return out
}
