package geometry

import (
	"math"

	"routeviz/internal/model"
)

// Summarize reports per-vehicle counts and drawn route length, in route table order.
func Summarize(routes []model.RouteRow, g model.Geometry, opts Options) []model.VehicleSummary {
	out := make([]model.VehicleSummary, 0, len(routes))
	for _, row := range routes {
		keys, ok := SplitRoute(row.Route, opts)
		s := model.VehicleSummary{Vehicle: row.Vehicle, HasRoute: ok, Stops: len(keys)}
		sub := ForVehicle(g, row.Vehicle)
		s.Resolved = len(sub.Nodes)
		s.Dropped = len(sub.Dropped)
		s.Edges = len(sub.Edges)
		s.LengthKm = math.Round(edgesLengthMeters(sub.Edges)/10) / 100
		out = append(out, s)
	}
	return out
}

func edgesLengthMeters(edges []model.EdgeRecord) float64 {
	total := 0.0
	for _, e := range edges {
		total += haversineMeters(e.StartLat, e.StartLon, e.EndLat, e.EndLon)
	}
	return total
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
