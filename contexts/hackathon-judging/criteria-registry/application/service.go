package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/ports"
)

// Service answers criteria reads and performs first-read seeding.
type Service struct {
	Criteria ports.CriteriaRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// ListCriteria returns the event's criteria ordered by display order. An
// event with no stored criteria gets the default set seeded first; the
// repository guarantees a concurrent double-seed collapses to one row set.
func (s Service) ListCriteria(ctx context.Context, eventID string) ([]entities.Criterion, error) {
	logger := ResolveLogger(s.Logger)
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidEventID
	}

	existing, err := s.Criteria.ListCriteriaByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		sortByDisplayOrder(existing)
		return existing, nil
	}

	now := s.now()
	seed := make([]entities.Criterion, 0, len(entities.DefaultSet()))
	for index, row := range entities.DefaultSet() {
		criterionID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		seed = append(seed, entities.Criterion{
			CriterionID:  criterionID,
			EventID:      eventID,
			Name:         row.Name,
			Weight:       row.Weight,
			DisplayOrder: index + 1,
			CreatedAt:    now,
		})
	}

	stored, err := s.Criteria.SeedCriteria(ctx, seed)
	if err != nil {
		return nil, err
	}
	sortByDisplayOrder(stored)
	logger.Info("criteria seeded for event",
		"event", "criteria_seeded",
		"module", "hackathon-judging/criteria-registry",
		"layer", "application",
		"event_id", eventID,
		"criteria_count", len(stored),
	)
	return stored, nil
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}

func sortByDisplayOrder(items []entities.Criterion) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].DisplayOrder == items[j].DisplayOrder {
			return items[i].CriterionID < items[j].CriterionID
		}
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
}
