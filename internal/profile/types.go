// Package profile persists the learner's {cash, invested} summary outside
// the game engine.
package profile

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the persisted summary of a player's money.
type Profile struct {
	Cash     decimal.Decimal `json:"cash"`
	Invested decimal.Decimal `json:"invested"`
}

// Default returns the profile a new player starts with.
func Default() Profile {
	return Profile{Cash: decimal.NewFromInt(10000), Invested: decimal.Zero}
}

// Store loads and saves a single profile.
type Store interface {
	// Load returns ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) (Profile, error)
	Save(ctx context.Context, p Profile) error
}
