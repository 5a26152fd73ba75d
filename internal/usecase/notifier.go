package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
)

// StatsRecalcNotifier requests asynchronous recomputation of a user's
// statistics summary after a status or location write. Publishing is
// fire-and-forget: when the stream is unavailable the recalculation runs
// synchronously instead, so the summary never silently stops updating.
type StatsRecalcNotifier struct {
	streamRepo repository.StreamRepository
	statsRepo  repository.UserStatsRepository
	logger     *zap.Logger
}

// NewStatsRecalcNotifier creates a notifier publishing to the stats
// recalculation stream.
func NewStatsRecalcNotifier(
	streamRepo repository.StreamRepository,
	statsRepo repository.UserStatsRepository,
	logger *zap.Logger,
) *StatsRecalcNotifier {
	return &StatsRecalcNotifier{
		streamRepo: streamRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// Request enqueues a recalculation for the user. The caller's write has
// already committed, so failures here degrade to a synchronous
// recalculation rather than propagating to the client.
func (n *StatsRecalcNotifier) Request(ctx context.Context, userID int64, reason string) {
	event := domain.StatsRecalcEvent{
		UserID:      userID,
		Reason:      reason,
		RequestedAt: time.Now().UTC(),
	}

	if err := n.streamRepo.PublishToStream(ctx, domain.StreamStatsRecalc, event); err != nil {
		n.logger.Warn("Failed to publish stats recalc event, recalculating synchronously",
			zap.Int64("user_id", userID),
			zap.String("reason", reason),
			zap.Error(err),
		)
		if _, err := n.statsRepo.Recalculate(ctx, userID); err != nil {
			n.logger.Error("Synchronous stats recalculation failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return
	}

	n.logger.Debug("Stats recalc event published",
		zap.Int64("user_id", userID),
		zap.String("reason", reason),
	)
}
