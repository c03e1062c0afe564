package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/pkg/logging"
)

type Runner struct {
	Seeders []Seeder
	Log     *logging.Logger
}

func (r Runner) Run(ctx context.Context, t Target) error {
	if t.Users == nil || t.Listings == nil {
		return fmt.Errorf("seed target is incomplete")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, t); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Log != nil {
			r.Log.Info("seeder finished", "seeder", s.Name())
		}
	}
	return nil
}
