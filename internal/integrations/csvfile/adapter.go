// Package csvfile reads the depot, client and route tables from CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"routeviz/internal/model"
)

// Column names as written by the routing tool. Lookup is case-insensitive.
var (
	depotIDCols   = []string{"DepotID"}
	clientIDCols  = []string{"ClientID"}
	productCols   = []string{"Product"}
	longitudeCols = []string{"Longitude", "Lon", "Lng"}
	latitudeCols  = []string{"Latitude", "Lat"}
	vehicleCols   = []string{"Vehículo", "Vehiculo", "Vehicle", "VehicleID"}
	routeCols     = []string{"Ruta", "Route"}
)

// Adapter loads the three tables from files on disk.
type Adapter struct {
	DepotsPath  string
	ClientsPath string
	RoutesPath  string
}

func (a Adapter) Name() string { return "csv" }

// Load reads all three files. Any malformed row fails the whole load.
func (a Adapter) Load(ctx context.Context) (model.Tables, error) {
	var t model.Tables
	var err error
	if t.Depots, err = readFile(ctx, a.DepotsPath, ReadDepots); err != nil {
		return model.Tables{}, err
	}
	if t.Clients, err = readFile(ctx, a.ClientsPath, ReadClients); err != nil {
		return model.Tables{}, err
	}
	if t.Routes, err = readFile(ctx, a.RoutesPath, ReadRoutes); err != nil {
		return model.Tables{}, err
	}
	return t, nil
}

func readFile[T any](ctx context.Context, path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return read(f, path)
}

// ReadDepots parses a depot table (DepotID, Longitude, Latitude).
func ReadDepots(r io.Reader, name string) ([]model.Depot, error) {
	tbl, err := readTable(r, name)
	if err != nil {
		return nil, err
	}
	id, err := tbl.column(depotIDCols)
	if err != nil {
		return nil, err
	}
	lon, err := tbl.column(longitudeCols)
	if err != nil {
		return nil, err
	}
	lat, err := tbl.column(latitudeCols)
	if err != nil {
		return nil, err
	}
	out := make([]model.Depot, 0, len(tbl.rows))
	for i := range tbl.rows {
		var d model.Depot
		if d.ID, err = tbl.intAt(i, id); err != nil {
			return nil, err
		}
		if d.Lon, err = tbl.floatAt(i, lon); err != nil {
			return nil, err
		}
		if d.Lat, err = tbl.floatAt(i, lat); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ReadClients parses a client table (ClientID, Product, Longitude, Latitude).
func ReadClients(r io.Reader, name string) ([]model.Client, error) {
	tbl, err := readTable(r, name)
	if err != nil {
		return nil, err
	}
	id, err := tbl.column(clientIDCols)
	if err != nil {
		return nil, err
	}
	prod, err := tbl.column(productCols)
	if err != nil {
		return nil, err
	}
	lon, err := tbl.column(longitudeCols)
	if err != nil {
		return nil, err
	}
	lat, err := tbl.column(latitudeCols)
	if err != nil {
		return nil, err
	}
	out := make([]model.Client, 0, len(tbl.rows))
	for i := range tbl.rows {
		var c model.Client
		if c.ID, err = tbl.intAt(i, id); err != nil {
			return nil, err
		}
		if c.Product, err = tbl.intAt(i, prod); err != nil {
			return nil, err
		}
		if c.Lon, err = tbl.floatAt(i, lon); err != nil {
			return nil, err
		}
		if c.Lat, err = tbl.floatAt(i, lat); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadRoutes parses the route report (Vehículo, Ruta), keeping row order.
func ReadRoutes(r io.Reader, name string) ([]model.RouteRow, error) {
	tbl, err := readTable(r, name)
	if err != nil {
		return nil, err
	}
	veh, err := tbl.column(vehicleCols)
	if err != nil {
		return nil, err
	}
	route, err := tbl.column(routeCols)
	if err != nil {
		return nil, err
	}
	out := make([]model.RouteRow, 0, len(tbl.rows))
	for i, row := range tbl.rows {
		v := strings.TrimSpace(row[veh])
		if v == "" {
			return nil, tbl.errorf(i, veh, "empty vehicle")
		}
		out = append(out, model.RouteRow{Vehicle: v, Route: row[route]})
	}
	return out, nil
}

type table struct {
	name string
	head []string
	rows [][]string
}

func readTable(r io.Reader, name string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rec, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	if len(rec) == 0 {
		return nil, errors.Newf("%s: missing header row", name)
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	for i := range head {
		head[i] = strings.TrimSpace(head[i])
	}
	t := &table{name: name, head: head, rows: rec[1:]}
	for i, row := range t.rows {
		if len(row) < len(head) {
			return nil, errors.Newf("%s:%d: expected %d fields, got %d", name, i+2, len(head), len(row))
		}
	}
	return t, nil
}

func (t *table) column(names []string) (int, error) {
	for _, n := range names {
		for i, h := range t.head {
			if strings.EqualFold(h, n) {
				return i, nil
			}
		}
	}
	return -1, errors.Newf("%s: missing column %q", t.name, names[0])
}

func (t *table) errorf(row, col int, format string, args ...any) error {
	err := errors.Newf(format, args...)
	return errors.Wrapf(err, "%s:%d: column %s", t.name, row+2, t.head[col])
}

// intAt parses an identifier. Whole floats such as "3.0" are accepted and truncated.
func (t *table) intAt(row, col int) (int, error) {
	s := strings.TrimSpace(t.rows[row][col])
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, t.errorf(row, col, "invalid integer %q", s)
	}
	return int(f), nil
}

func (t *table) floatAt(row, col int) (float64, error) {
	s := strings.TrimSpace(t.rows[row][col])
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, t.errorf(row, col, "invalid number %q", s)
	}
	return f, nil
}
