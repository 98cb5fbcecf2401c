package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

// OutboxRelay publishes persisted winner events to the bus. Rows are marked
// published only after the broker accepts them, so a crash mid-cycle at
// worst replays an event.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce processes one bounded batch of pending rows. It stops on the
// first failure so the poll loop can reprocess remaining rows safely.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("winner outbox list failed",
			"event", "winner_outbox_list_failed",
			"module", "hackathon-judging/winner-workflow",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("winner outbox relay found no pending rows",
			"event", "winner_outbox_relay_noop",
			"module", "hackathon-judging/winner-workflow",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("winner outbox decode failed",
				"event", "winner_outbox_decode_failed",
				"module", "hackathon-judging/winner-workflow",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("winner outbox publish failed",
				"event", "winner_outbox_publish_failed",
				"module", "hackathon-judging/winner-workflow",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("winner outbox mark published failed",
				"event", "winner_outbox_mark_published_failed",
				"module", "hackathon-judging/winner-workflow",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("winner outbox relay cycle completed",
		"event", "winner_outbox_relay_completed",
		"module", "hackathon-judging/winner-workflow",
		"layer", "worker",
		"published_count", len(pending),
	)
	return nil
}
