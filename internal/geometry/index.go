// Package geometry turns routing results into drawable node and edge records.
package geometry

import (
	"strconv"

	"routeviz/internal/model"
)

// DepotKey returns the node key used for a depot inside route strings.
func DepotKey(id int) string { return "D" + strconv.Itoa(id) }

// ClientKey returns the node key used for a client inside route strings.
func ClientKey(id int) string { return "C" + strconv.Itoa(id) }

// Index maps node keys to locations. It is read-only once built.
type Index struct {
	m    map[string]model.Location
	keys []string // insertion order: depots, then clients
}

// NewIndex builds the location index from the depot and client tables.
// A repeated id within one table keeps the last row; a client never shadows a depot.
func NewIndex(depots []model.Depot, clients []model.Client) *Index {
	idx := &Index{m: make(map[string]model.Location, len(depots)+len(clients))}
	for _, d := range depots {
		k := DepotKey(d.ID)
		idx.put(model.Location{Key: k, Kind: model.KindDepot, ID: d.ID, Lon: d.Lon, Lat: d.Lat})
	}
	for _, c := range clients {
		k := ClientKey(c.ID)
		if cur, ok := idx.m[k]; ok && cur.Kind == model.KindDepot {
			continue
		}
		idx.put(model.Location{Key: k, Kind: model.KindClient, ID: c.ID, Product: c.Product, Lon: c.Lon, Lat: c.Lat})
	}
	return idx
}

func (x *Index) put(loc model.Location) {
	if _, ok := x.m[loc.Key]; !ok {
		x.keys = append(x.keys, loc.Key)
	}
	x.m[loc.Key] = loc
}

// Lookup resolves a node key.
func (x *Index) Lookup(key string) (model.Location, bool) {
	if x == nil {
		return model.Location{}, false
	}
	loc, ok := x.m[key]
	return loc, ok
}

// Len returns the number of distinct keys.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.m)
}

// List returns all locations, depots first, each group in table order.
func (x *Index) List() []model.Location {
	if x == nil {
		return []model.Location{}
	}
	out := make([]model.Location, 0, len(x.keys))
	for _, k := range x.keys {
		out = append(out, x.m[k])
	}
	return out
}
