package storage

import (
	"context"
	"io"
)

// Storage persists uploaded pickup photos. Save returns the stored file name,
// which is what gets recorded in the photo row and later passed to Remove.
type Storage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, fileName string) error
}
