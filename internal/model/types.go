package model

import "time"

// Core domain types for the route viewer.

// NoRoute is the route value the solver writes for an idle vehicle.
const NoRoute = "Sin ruta"

// RouteDelimiter separates node keys inside a route string.
const RouteDelimiter = " -> "

type LocationKind string

const (
	KindDepot  LocationKind = "depot"
	KindClient LocationKind = "client"
)

type Depot struct {
	ID  int     `json:"id"`
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Client struct {
	ID      int     `json:"id"`
	Product int     `json:"product"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
}

// Location is an entry of the location index, addressable by its node key.
type Location struct {
	Key     string       `json:"key"`
	Kind    LocationKind `json:"kind"`
	ID      int          `json:"id"`
	Product int          `json:"product,omitempty"`
	Lon     float64      `json:"lon"`
	Lat     float64      `json:"lat"`
}

// RouteRow is one line of the routing report: a vehicle and its visiting sequence.
type RouteRow struct {
	Vehicle string `json:"vehicle"`
	Route   string `json:"route"`
}

type NodeRecord struct {
	Vehicle string  `json:"vehicle"`
	Key     string  `json:"key"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Order   int     `json:"order"`
}

type EdgeRecord struct {
	Vehicle  string  `json:"vehicle"`
	StartLat float64 `json:"startLat"`
	StartLon float64 `json:"startLon"`
	EndLat   float64 `json:"endLat"`
	EndLon   float64 `json:"endLon"`
}

// DroppedNode is a route position whose key did not resolve.
type DroppedNode struct {
	Vehicle string `json:"vehicle"`
	Key     string `json:"key"`
	Order   int    `json:"order"`
}

type Geometry struct {
	Nodes   []NodeRecord  `json:"nodes"`
	Edges   []EdgeRecord  `json:"edges"`
	Dropped []DroppedNode `json:"dropped"`
}

// Tables is the raw tabular input as read from a source.
type Tables struct {
	Depots  []Depot
	Clients []Client
	Routes  []RouteRow
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Segment is a drawable line between two points.
type Segment struct {
	From GeoPoint `json:"from"`
	To   GeoPoint `json:"to"`
}

type Marker struct {
	Key   string  `json:"key"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Order int     `json:"order"`
}

// Frame is one animation step: the markers sitting at a given route position.
type Frame struct {
	Name   string     `json:"name"`
	Order  int        `json:"order"`
	Points []GeoPoint `json:"points"`
}

type MapSettings struct {
	Style           string   `json:"style"`
	Zoom            int      `json:"zoom"`
	Center          GeoPoint `json:"center"`
	FrameDurationMs int      `json:"frameDurationMs"`
	DefaultCenter   bool     `json:"defaultCenter,omitempty"`
}

type Style struct {
	Color      string `json:"color"`
	LineWidth  int    `json:"lineWidth"`
	NodeColor  string `json:"nodeColor"`
	NodeSize   int    `json:"nodeSize"`
	MovingSize int    `json:"movingSize"`
}

// Figure is everything the map page needs to draw and animate one vehicle.
type Figure struct {
	Vehicle string        `json:"vehicle"`
	Style   Style         `json:"style"`
	Map     MapSettings   `json:"map"`
	Edges   []Segment     `json:"edges"`
	Markers []Marker      `json:"markers"`
	Frames  []Frame       `json:"frames"`
	Dropped []DroppedNode `json:"dropped"`
}

type VehicleOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	HasRoute bool   `json:"hasRoute"`
}

type VehicleSummary struct {
	Vehicle  string  `json:"vehicle"`
	HasRoute bool    `json:"hasRoute"`
	Stops    int     `json:"stops"`
	Resolved int     `json:"resolved"`
	Dropped  int     `json:"dropped"`
	Edges    int     `json:"edges"`
	LengthKm float64 `json:"lengthKm"`
}

// DatasetInfo describes the loaded dataset for readiness and debug output.
type DatasetInfo struct {
	Source   string    `json:"source"`
	Version  string    `json:"version"`
	Depots   int       `json:"depots"`
	Clients  int       `json:"clients"`
	Vehicles int       `json:"vehicles"`
	LoadedAt time.Time `json:"loadedAt"`
}
