package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"

	"routeviz/internal/model"
)

// Postgres reads the depot, client and route tables from a database.
// It is a dataset source; the loaded tables are served by Memory.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &Postgres{db: db}, nil
}

// NewPostgresDB wraps an open handle.
func NewPostgresDB(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func (p *Postgres) Close() error { return p.db.Close() }

// Load reads all three tables. Routes keep their insertion order.
func (p *Postgres) Load(ctx context.Context) (model.Tables, error) {
	var t model.Tables
	var err error
	if t.Depots, err = p.depots(ctx); err != nil {
		return model.Tables{}, errors.Wrap(err, "depots")
	}
	if t.Clients, err = p.clients(ctx); err != nil {
		return model.Tables{}, errors.Wrap(err, "clients")
	}
	if t.Routes, err = p.routes(ctx); err != nil {
		return model.Tables{}, errors.Wrap(err, "routes")
	}
	return t, nil
}

func (p *Postgres) depots(ctx context.Context) ([]model.Depot, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT depot_id, longitude, latitude FROM depots ORDER BY depot_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Depot{}
	for rows.Next() {
		var d model.Depot
		if err := rows.Scan(&d.ID, &d.Lon, &d.Lat); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *Postgres) clients(ctx context.Context) ([]model.Client, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT client_id, product, longitude, latitude FROM clients ORDER BY client_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Product, &c.Lon, &c.Lat); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) routes(ctx context.Context) ([]model.RouteRow, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT vehicle, route FROM routes ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.RouteRow{}
	for rows.Next() {
		var r model.RouteRow
		var route sql.NullString
		if err := rows.Scan(&r.Vehicle, &route); err != nil {
			return nil, err
		}
		r.Route = route.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// MigrateDir applies every *.sql file in dir in name order. Statements must be idempotent.
func (p *Postgres) MigrateDir(ctx context.Context, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return errors.Wrapf(err, "read migration %s", f)
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if _, err := p.db.ExecContext(ctx, string(b)); err != nil {
			return errors.Wrapf(err, "apply migration %s", filepath.Base(f))
		}
	}
	return nil
}
