package domain

import "time"

// Placement is the most recent pixel placement at a board coordinate,
// as returned by the moderator lookup endpoint.
type Placement struct {
	X        int       `json:"x" db:"x"`
	Y        int       `json:"y" db:"y"`
	Color    int       `json:"color" db:"color"`
	UserID   int64     `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	PlacedAt time.Time `json:"placed_at" db:"placed_at"`
}
