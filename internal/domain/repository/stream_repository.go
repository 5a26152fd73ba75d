package repository

import (
	"context"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// StreamRepository wraps Redis Streams used for fire-and-forget
// statistics recomputation events.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group for a stream,
	// tolerating an already-existing group.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to count pending messages for the consumer
	// without blocking. An empty slice means the queue is drained.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream serializes data as JSON and appends it to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
