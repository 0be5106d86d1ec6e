package cache

import (
	"context"
	"errors"

	"github.com/supanut9/store-it/internal/application/ports"
)

// Revalidators runs every revalidator in order and joins their errors.
type Revalidators []ports.Revalidator

func (rs Revalidators) Revalidate(ctx context.Context, path string) error {
	var errs []error
	for _, r := range rs {
		if err := r.Revalidate(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
