package commands

import (
	"encoding/json"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

func newWinnerEnvelope(
	eventID string,
	eventType string,
	partitionEventID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Winner events partition by hackathon event so announcement consumers
	// observe one event's transitions in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "winner-workflow",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "event_id",
		PartitionKey:     partitionEventID,
		Data:             payload,
	}, nil
}
