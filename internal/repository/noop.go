package repository

import (
	"context"

	"github.com/sumire/pixelboard/internal/domain"
)

// NoPixels is a pixel lookup that never finds anything. Used when the
// service runs without a database.
type NoPixels struct{}

// LastPlacementAt always reports no placement.
func (NoPixels) LastPlacementAt(_ context.Context, _, _ int) (*domain.Placement, error) {
	return nil, domain.ErrNotFound
}
