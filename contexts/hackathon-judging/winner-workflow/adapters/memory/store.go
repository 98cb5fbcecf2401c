package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu sync.RWMutex

	winners map[string]entities.WinnerProposal
	outbox  map[string]outboxRecord

	events      map[string]ports.EventProjection
	submissions map[string]ports.SubmissionProjection
}

func NewStore(seed []entities.WinnerProposal) *Store {
	winners := make(map[string]entities.WinnerProposal, len(seed))
	for _, winner := range seed {
		winners[winner.WinnerID] = winner
	}
	return &Store{
		winners:     winners,
		outbox:      make(map[string]outboxRecord),
		events:      make(map[string]ports.EventProjection),
		submissions: make(map[string]ports.SubmissionProjection),
	}
}

func (s *Store) SetEvent(event ports.EventProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[strings.TrimSpace(event.EventID)] = ports.EventProjection{
		EventID:       strings.TrimSpace(event.EventID),
		OrganizerID:   strings.TrimSpace(event.OrganizerID),
		JudgingWindow: strings.TrimSpace(event.JudgingWindow),
		JudgingEndsAt: event.JudgingEndsAt.UTC(),
	}
}

func (s *Store) SetSubmission(submission ports.SubmissionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[strings.TrimSpace(submission.SubmissionID)] = ports.SubmissionProjection{
		SubmissionID: strings.TrimSpace(submission.SubmissionID),
		EventID:      strings.TrimSpace(submission.EventID),
		TeamRef:      strings.TrimSpace(submission.TeamRef),
		Status:       strings.TrimSpace(submission.Status),
	}
}

func (s *Store) SaveWinner(_ context.Context, winner entities.WinnerProposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.winners[strings.TrimSpace(winner.WinnerID)] = winner
	return nil
}

func (s *Store) GetWinner(_ context.Context, winnerID string) (entities.WinnerProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	winner, ok := s.winners[strings.TrimSpace(winnerID)]
	if !ok {
		return entities.WinnerProposal{}, domainerrors.ErrWinnerNotFound
	}
	return winner, nil
}

func (s *Store) ListWinnersByEvent(_ context.Context, eventID string) ([]entities.WinnerProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.WinnerProposal, 0)
	for _, winner := range s.winners {
		if winner.EventID == strings.TrimSpace(eventID) {
			items = append(items, winner)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].PrizePosition != items[j].PrizePosition {
			return items[i].PrizePosition < items[j].PrizePosition
		}
		return items[i].WinnerID < items[j].WinnerID
	})
	return items, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (ports.EventProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return ports.EventProjection{}, domainerrors.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (ports.SubmissionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[strings.TrimSpace(submissionID)]
	if !ok {
		return ports.SubmissionProjection{}, domainerrors.ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].OutboxID < items[j].OutboxID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrOutboxRowMissing
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
