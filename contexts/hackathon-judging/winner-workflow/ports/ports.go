package ports

import (
	"context"
	"time"

	contractsv1 "github.com/maximally0/maximally-main-website-sub004/contracts/gen/events/v1"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
)

const (
	JudgingWindowOpen   = "open"
	JudgingWindowClosed = "closed"

	SubmissionStatusSubmitted = "submitted"
)

type WinnerRepository interface {
	SaveWinner(ctx context.Context, winner entities.WinnerProposal) error
	GetWinner(ctx context.Context, winnerID string) (entities.WinnerProposal, error)
	ListWinnersByEvent(ctx context.Context, eventID string) ([]entities.WinnerProposal, error)
}

// EventProjection is the slice of event state the workflow needs: who owns
// the event and whether judging can still change the ranking.
type EventProjection struct {
	EventID       string
	OrganizerID   string
	JudgingWindow string
	JudgingEndsAt time.Time
}

type EventReader interface {
	GetEvent(ctx context.Context, eventID string) (EventProjection, error)
}

type SubmissionProjection struct {
	SubmissionID string
	EventID      string
	TeamRef      string
	Status       string
}

type SubmissionReader interface {
	GetSubmission(ctx context.Context, submissionID string) (SubmissionProjection, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
