package dataset

import "context"

// Repository holds the single active dataset for the running session.
// There is no persistence: a new upload replaces the snapshot wholesale
// and the previous one is discarded.
type Repository interface {
	Replace(ctx context.Context, d *Dataset) error
	Active(ctx context.Context) (*Dataset, error)
}
