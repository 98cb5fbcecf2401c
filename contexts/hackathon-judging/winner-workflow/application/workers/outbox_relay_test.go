package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

type capturingPublisher struct {
	published []ports.EventEnvelope
	fail      bool
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func appendEnvelope(t *testing.T, store *memory.Store, eventID string) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:    eventID,
		EventType:  "winner.approved",
		OccurredAt: time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC),
		Data:       []byte(`{"winner_id":"w-1"}`),
	})
	if err != nil {
		t.Fatalf("append outbox failed: %v", err)
	}
}

func TestRunOncePublishesAndMarksRows(t *testing.T) {
	store := memory.NewStore(nil)
	appendEnvelope(t, store, "evt-1")
	appendEnvelope(t, store, "evt-2")

	publisher := &capturingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay cycle failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after publish, got %d", len(pending))
	}
}

func TestRunOnceLeavesRowsPendingOnPublishFailure(t *testing.T) {
	store := memory.NewStore(nil)
	appendEnvelope(t, store, "evt-1")

	relay := OutboxRelay{
		Outbox:    store,
		Publisher: &capturingPublisher{fail: true},
	}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected row still pending after failure, got %d", len(pending))
	}
}

func TestRunOnceNoopOnEmptyOutbox(t *testing.T) {
	relay := OutboxRelay{
		Outbox:    memory.NewStore(nil),
		Publisher: &capturingPublisher{},
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("expected clean noop, got %v", err)
	}
}
