package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/pixelboard/internal/domain"
)

// PixelRepository reads pixel placement history. Placements are written by
// the canvas engine; this service only looks them up.
type PixelRepository struct {
	db *sqlx.DB
}

// NewPixelRepository creates a new PixelRepository.
func NewPixelRepository(db *sqlx.DB) *PixelRepository {
	return &PixelRepository{db: db}
}

// LastPlacementAt returns the most recent placement at (x, y).
func (r *PixelRepository) LastPlacementAt(ctx context.Context, x, y int) (*domain.Placement, error) {
	var p domain.Placement
	err := r.db.GetContext(ctx, &p,
		`SELECT p.x, p.y, p.color, p.user_id, u.username, p.placed_at
		 FROM pixels p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.x = $1 AND p.y = $2
		 ORDER BY p.placed_at DESC
		 LIMIT 1`, x, y)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find placement at (%d,%d): %w", x, y, err)
	}
	return &p, nil
}
