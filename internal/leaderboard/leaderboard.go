// Package leaderboard persists final scores keyed by player identity.
// Each identity keeps only its best score; replaying never lowers a
// recorded result.
package leaderboard

import (
	"context"
	"errors"
)

// Entry is one leaderboard row.
type Entry struct {
	Identity string `json:"identity"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("leaderboard unavailable")

// Store saves final scores and serves the ranking.
type Store interface {
	// Save records the score for the identity, keeping the higher of the
	// stored and submitted values. The username is updated either way.
	Save(ctx context.Context, entry Entry) error
	// Top returns up to limit entries, best score first.
	Top(ctx context.Context, limit int) ([]Entry, error)
}
