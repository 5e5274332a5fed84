package integrations

import (
	"context"

	"routeviz/internal/model"
)

// DatasetSource defines the minimal interface for a provider of the depot,
// client and route tables.
type DatasetSource interface {
	Name() string
	Load(ctx context.Context) (model.Tables, error)
}

// Static serves tables already held in memory.
type Static struct {
	Label  string
	Tables model.Tables
}

func (s Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s Static) Load(ctx context.Context) (model.Tables, error) { return s.Tables, ctx.Err() }
