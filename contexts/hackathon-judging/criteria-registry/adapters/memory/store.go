package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/entities"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	criteria map[string]entities.Criterion
}

func NewStore(seed []entities.Criterion) *Store {
	criteria := make(map[string]entities.Criterion, len(seed))
	for _, row := range seed {
		criteria[row.CriterionID] = row
	}
	return &Store{criteria: criteria}
}

func (s *Store) ListCriteriaByEvent(_ context.Context, eventID string) ([]entities.Criterion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listByEventLocked(eventID), nil
}

// SeedCriteria writes the set only when the event still has no rows. A
// concurrent seeder losing the race gets the winner's rows back.
func (s *Store) SeedCriteria(_ context.Context, criteria []entities.Criterion) ([]entities.Criterion, error) {
	if len(criteria) == 0 {
		return nil, nil
	}
	eventID := strings.TrimSpace(criteria[0].EventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.listByEventLocked(eventID); len(existing) > 0 {
		return existing, nil
	}
	for _, row := range criteria {
		s.criteria[strings.TrimSpace(row.CriterionID)] = row
	}
	return s.listByEventLocked(eventID), nil
}

func (s *Store) listByEventLocked(eventID string) []entities.Criterion {
	eventID = strings.TrimSpace(eventID)
	items := make([]entities.Criterion, 0)
	for _, row := range s.criteria {
		if row.EventID == eventID {
			items = append(items, row)
		}
	}
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
