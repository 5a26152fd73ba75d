package domain

import "time"

// Stream names shared between the API and the stats worker.
const (
	StreamStatsRecalc = "stream:geo:stats-recalc"
)

// StatsRecalcEvent asks the stats worker to recompute one user's cached
// geographic statistics. Published after every status-changing operation.
type StatsRecalcEvent struct {
	UserID      int64     `json:"user_id"`
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage is a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
