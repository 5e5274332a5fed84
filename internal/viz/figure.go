// Package viz turns per-vehicle geometry into figures the map page can draw.
package viz

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"

	"routeviz/internal/geometry"
	"routeviz/internal/model"
)

// Settings are the map defaults applied to every figure.
type Settings struct {
	Style           string
	Zoom            int
	FrameDurationMs int
	DefaultCenter   model.GeoPoint
}

const (
	lineWidth  = 3
	nodeColor  = "black"
	nodeSize   = 10
	movingSize = 12
)

// VehicleColor returns the vehicle's line color. It depends only on the vehicle
// id, so it does not change between requests or restarts.
func VehicleColor(vehicle string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(vehicle))
	sum := h.Sum32()
	r := ((sum >> 16) & 0xff) % 255
	g := ((sum >> 8) & 0xff) % 255
	b := (sum & 0xff) % 255
	return fmt.Sprintf("rgba(%d, %d, %d, 0.7)", r, g, b)
}

// VehicleOptions lists selector entries in route table order; the first is the default.
func VehicleOptions(routes []model.RouteRow, opts geometry.Options) []model.VehicleOption {
	seen := make(map[string]bool, len(routes))
	out := make([]model.VehicleOption, 0, len(routes))
	for _, r := range routes {
		if seen[r.Vehicle] {
			continue
		}
		seen[r.Vehicle] = true
		_, has := geometry.SplitRoute(r.Route, opts)
		out = append(out, model.VehicleOption{
			Value:    r.Vehicle,
			Label:    "Vehículo " + r.Vehicle,
			Color:    VehicleColor(r.Vehicle),
			HasRoute: has,
		})
	}
	return out
}

// BuildFigure assembles edges, labelled markers and animation frames for one vehicle.
func BuildFigure(vehicle string, g model.Geometry, s Settings) model.Figure {
	color := VehicleColor(vehicle)
	center, fallback := Center(g.Nodes, s.DefaultCenter)
	fig := model.Figure{
		Vehicle: vehicle,
		Style: model.Style{
			Color:      color,
			LineWidth:  lineWidth,
			NodeColor:  nodeColor,
			NodeSize:   nodeSize,
			MovingSize: movingSize,
		},
		Map: model.MapSettings{
			Style:           s.Style,
			Zoom:            s.Zoom,
			Center:          center,
			FrameDurationMs: s.FrameDurationMs,
			DefaultCenter:   fallback,
		},
		Edges:   make([]model.Segment, 0, len(g.Edges)),
		Markers: make([]model.Marker, 0, len(g.Nodes)),
		Frames:  Frames(g.Nodes),
		Dropped: g.Dropped,
	}
	if fig.Dropped == nil {
		fig.Dropped = []model.DroppedNode{}
	}
	for _, e := range g.Edges {
		fig.Edges = append(fig.Edges, model.Segment{
			From: model.GeoPoint{Lat: e.StartLat, Lon: e.StartLon},
			To:   model.GeoPoint{Lat: e.EndLat, Lon: e.EndLon},
		})
	}
	for _, n := range g.Nodes {
		fig.Markers = append(fig.Markers, model.Marker{Key: n.Key, Lat: n.Lat, Lon: n.Lon, Order: n.Order})
	}
	return fig
}

// Frames groups nodes by route position, one frame per distinct position in ascending order.
func Frames(nodes []model.NodeRecord) []model.Frame {
	byOrder := map[int][]model.GeoPoint{}
	for _, n := range nodes {
		byOrder[n.Order] = append(byOrder[n.Order], model.GeoPoint{Lat: n.Lat, Lon: n.Lon})
	}
	orders := make([]int, 0, len(byOrder))
	for o := range byOrder {
		orders = append(orders, o)
	}
	sort.Ints(orders)
	out := make([]model.Frame, 0, len(orders))
	for _, o := range orders {
		out = append(out, model.Frame{Name: strconv.Itoa(o), Order: o, Points: byOrder[o]})
	}
	return out
}

// Center is the mean node position. With no nodes it returns fallback and true.
func Center(nodes []model.NodeRecord, fallback model.GeoPoint) (model.GeoPoint, bool) {
	if len(nodes) == 0 {
		return fallback, true
	}
	var lat, lon float64
	for _, n := range nodes {
		lat += n.Lat
		lon += n.Lon
	}
	k := float64(len(nodes))
	return model.GeoPoint{Lat: lat / k, Lon: lon / k}, false
}
