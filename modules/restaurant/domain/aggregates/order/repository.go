package order

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
