package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
)

// RecalcWorker consumes stats recalculation events and refreshes the
// per-user summary rows. Events for the same user within a batch are
// collapsed into one recalculation, since the summary is recomputed from
// the source tables anyway.
type RecalcWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	statsRepo    repository.UserStatsRepository
	consumerName string
}

// NewRecalcWorker creates the stats recalculation worker.
func NewRecalcWorker(
	streamRepo repository.StreamRepository,
	statsRepo repository.UserStatsRepository,
	consumerGroup string,
	logger *zap.Logger,
) *RecalcWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RecalcWorker{
		BaseWorker:   worker.NewBaseWorker("stats-recalc", consumerGroup, logger),
		streamRepo:   streamRepo,
		statsRepo:    statsRepo,
		consumerName: consumerName,
	}
}

// Start runs the consume loop until stopped.
func (w *RecalcWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting stats recalc worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamStatsRecalc, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads one batch of events and recalculates each affected
// user once. Returns the number of messages consumed.
func (w *RecalcWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamStatsRecalc,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	// Collapse duplicate user IDs; one recalculation covers every
	// event for that user in the batch.
	userMessages := make(map[int64][]string)
	for _, msg := range messages {
		event, err := parseEvent(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// Ack the broken message so it does not clog the stream.
			_ = w.streamRepo.AckMessage(ctx, domain.StreamStatsRecalc, w.ConsumerGroup(), msg.ID)
			continue
		}
		userMessages[event.UserID] = append(userMessages[event.UserID], msg.ID)
	}

	for userID, messageIDs := range userMessages {
		if _, err := w.statsRepo.Recalculate(ctx, userID); err != nil {
			logger.Error("Failed to recalculate user statistics",
				zap.Int64("user_id", userID),
				zap.Error(err))
			// Leave these messages unacked for redelivery.
			continue
		}

		for _, id := range messageIDs {
			if err := w.streamRepo.AckMessage(ctx, domain.StreamStatsRecalc, w.ConsumerGroup(), id); err != nil {
				logger.Error("Failed to ack message",
					zap.String("message_id", id),
					zap.Error(err))
			}
		}

		logger.Debug("User statistics recalculated",
			zap.Int64("user_id", userID),
			zap.Int("collapsed_events", len(messageIDs)))
	}

	return len(messages), nil
}

func parseEvent(msg domain.StreamMessage) (*domain.StatsRecalcEvent, error) {
	var event domain.StatsRecalcEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
