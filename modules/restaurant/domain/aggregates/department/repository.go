package department

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("department not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	Create(ctx context.Context, d Department) error
	// Update sends only the fields that differ between before and after.
	Update(ctx context.Context, before, after Department) error
	Delete(ctx context.Context, id string) error
}
