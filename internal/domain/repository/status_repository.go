package repository

import (
	"context"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// StatusRepository persists per-user country statuses with a
// single-active-row contract per (user, country) pair.
type StatusRepository interface {
	// Replace atomically removes any existing status row for the
	// (user, country) pair and inserts the given one. The delete and
	// insert run in one transaction so concurrent calls for the same
	// pair can never leave two rows behind.
	Replace(ctx context.Context, status *domain.UserCountryStatus) error

	// ListCodesByUser returns (status, alpha-2) pairs for the user.
	ListCodesByUser(ctx context.Context, userID int64) ([]domain.UserCountryCode, error)

	// CountVisited counts the user's distinct visited countries.
	CountVisited(ctx context.Context, userID int64) (int, error)

	// VisitedByContinent breaks the user's visited countries down per
	// continent, ordered by descending count.
	VisitedByContinent(ctx context.Context, userID int64) ([]domain.ContinentVisitCount, error)
}
