// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// GameStatus is the closed set of library states a game can be in.
// Typed on purpose: services and the analytics engine switch on it
// exhaustively instead of comparing magic strings.
type GameStatus string

const (
	StatusNotStarted GameStatus = "not_started"
	StatusInProgress GameStatus = "in_progress"
	StatusCompleted  GameStatus = "completed"
	StatusWishlist   GameStatus = "wishlist"
	StatusAbandoned  GameStatus = "abandoned"
)

// Valid reports whether s is one of the known statuses.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusWishlist, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Game represents one owned (or wishlisted) title in the library.
// Date fields are nullable because users backfill them inconsistently;
// derivations must not assume end >= start even when both are present.
type Game struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Price         float64       `json:"price"`
	Status        GameStatus    `json:"status"`
	Rating        int           `json:"rating"` // 0-10
	Genre         string        `json:"genre"`
	Platform      string        `json:"platform"`
	PurchaseDate  *time.Time    `json:"purchase_date,omitempty"`
	StartDate     *time.Time    `json:"start_date,omitempty"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	BaselineHours float64       `json:"baseline_hours"`
	Sessions      []PlaySession `json:"sessions,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TotalHours is baseline plus everything logged. Computed, never stored.
func (g Game) TotalHours() float64 {
	total := g.BaselineHours
	for _, s := range g.Sessions {
		total += s.Hours
	}
	return total
}

// PlaySession is one logged sitting with a game. Immutable once created:
// edits go through delete + recreate, so there is no UpdatedAt.
type PlaySession struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"game_id"`
	Date      time.Time `json:"date"` // calendar day at midnight in its location
	Hours     float64   `json:"hours"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
