package ports

import "context"

// Revalidator drops cached renderings of a page path.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}
