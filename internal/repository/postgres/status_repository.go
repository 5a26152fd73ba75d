package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
)

type statusRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStatusRepository creates the user country status repository.
func NewStatusRepository(db *DB) repository.StatusRepository {
	return &statusRepository{db: db.DB, logger: db.logger}
}

// Replace deletes any existing row for the (user, country) pair and
// inserts the new one inside a single transaction, so the pair never
// accumulates more than one row no matter how calls interleave.
func (r *statusRepository) Replace(ctx context.Context, status *domain.UserCountryStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin status transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM user_country_statuses WHERE user_id = $1 AND country_id = $2`,
		status.UserID, status.CountryID,
	)
	if err != nil {
		r.logger.Error("Failed to delete previous status",
			zap.Int64("user_id", status.UserID),
			zap.Int64("country_id", status.CountryID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO user_country_statuses (user_id, country_id, status, visit_date, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		status.UserID, status.CountryID, status.Status, status.VisitDate, status.Notes,
	).Scan(&status.ID, &status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert status",
			zap.Int64("user_id", status.UserID),
			zap.Int64("country_id", status.CountryID),
			zap.String("status", status.Status),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit status transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// ListCodesByUser returns the user's (status, alpha-2) pairs.
func (r *statusRepository) ListCodesByUser(ctx context.Context, userID int64) ([]domain.UserCountryCode, error) {
	query := `
		SELECT s.status, c.iso_alpha2
		FROM user_country_statuses s
		JOIN countries c ON c.id = s.country_id
		WHERE s.user_id = $1
		ORDER BY c.iso_alpha2 ASC
	`

	var codes []domain.UserCountryCode
	if err := r.db.SelectContext(ctx, &codes, query, userID); err != nil {
		r.logger.Error("Failed to list user country codes",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return codes, nil
}

// CountVisited counts the user's visited countries.
func (r *statusRepository) CountVisited(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_country_statuses WHERE user_id = $1 AND status = $2`,
		userID, domain.StatusVisited,
	)
	if err != nil {
		r.logger.Error("Failed to count visited countries",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return 0, errors.ErrDatabaseError
	}

	return count, nil
}

// VisitedByContinent buckets the user's visited countries per continent.
// Countries without a continent are skipped.
func (r *statusRepository) VisitedByContinent(ctx context.Context, userID int64) ([]domain.ContinentVisitCount, error) {
	query := `
		SELECT c.continent, COUNT(*) AS count
		FROM user_country_statuses s
		JOIN countries c ON c.id = s.country_id
		WHERE s.user_id = $1
		  AND s.status = $2
		  AND c.continent IS NOT NULL
		GROUP BY c.continent
		ORDER BY count DESC
	`

	var counts []domain.ContinentVisitCount
	if err := r.db.SelectContext(ctx, &counts, query, userID, domain.StatusVisited); err != nil {
		r.logger.Error("Failed to count visited by continent",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return counts, nil
}
