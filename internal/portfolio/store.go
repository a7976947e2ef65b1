// Package portfolio manages the saved properties of a user.
package portfolio

import (
	"context"
	"errors"
	"regexp"
	"time"

	"immoinvest/server/internal/models"
)

var (
	ErrNotFound    = errors.New("portfolio not found")
	ErrInvalidUser = errors.New("invalid user id")
)

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidUserID reports whether id can be used as a user key by every store.
func ValidUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

// OutputUpdate is a recalculated output for a portfolio that was last modified at
// Snapshot. UpdatedAt is the new modification time.
type OutputUpdate struct {
	ID        string
	UserID    string
	Snapshot  time.Time
	UpdatedAt time.Time
	Output    models.PropertyOutput
}

// NewOutputUpdate captures p before its output is recalculated.
func NewOutputUpdate(p *models.Portfolio) OutputUpdate {
	return OutputUpdate{ID: p.ID, UserID: p.UserID, Snapshot: p.UpdatedAt}
}

// Store persists portfolios. Save and SaveBatch insert or replace by ID.
type Store interface {
	List(ctx context.Context, userID string) ([]models.Portfolio, error)
	Get(ctx context.Context, userID, id string) (models.Portfolio, error)
	Save(ctx context.Context, p *models.Portfolio) error
	Delete(ctx context.Context, userID, id string) error

	// SaveBatch writes all portfolios or none of them.
	SaveBatch(ctx context.Context, batch []*models.Portfolio) error

	// UpdateOutputs writes each output only if the portfolio still exists and was not
	// modified since the update's Snapshot. Skipped updates are not errors. It returns
	// how many outputs were written.
	UpdateOutputs(ctx context.Context, updates []OutputUpdate) (int, error)

	// ListWithoutOutput returns up to limit portfolios that have no stored output.
	ListWithoutOutput(ctx context.Context, limit int) ([]*models.Portfolio, error)
}
