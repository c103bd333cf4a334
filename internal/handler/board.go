package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sumire/pixelboard/internal/board"
	"github.com/sumire/pixelboard/internal/domain"
)

// PixelFinder looks up placement history for the moderator lookup endpoint.
type PixelFinder interface {
	LastPlacementAt(ctx context.Context, x, y int) (*domain.Placement, error)
}

// BoardHandler serves board metadata, raw board data, and pixel lookups.
type BoardHandler struct {
	board  *board.Board
	pixels PixelFinder
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(b *board.Board, pixels PixelFinder) *BoardHandler {
	return &BoardHandler{board: b, pixels: pixels}
}

// Info returns the board metadata document.
func (h *BoardHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, h.board.Info())
}

// Data returns the raw board bytes.
func (h *BoardHandler) Data(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/octet-stream", h.board.Data())
}

// Lookup returns the most recent placement at a coordinate. Moderators only.
func (h *BoardHandler) Lookup(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || !user.Role.AtLeast(domain.RoleModerator) {
		return domain.ErrForbidden
	}

	x, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return fmt.Errorf("%w: x must be an integer", domain.ErrInvalidInput)
	}
	y, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return fmt.Errorf("%w: y must be an integer", domain.ErrInvalidInput)
	}
	if !h.board.Contains(x, y) {
		return fmt.Errorf("%w: coordinate out of range", domain.ErrInvalidInput)
	}

	placement, err := h.pixels.LastPlacementAt(c.Request().Context(), x, y)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return err
	}
	return c.JSON(http.StatusOK, placement)
}
