package ports

import (
	"context"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/entities"
)

// CriteriaRepository persists criteria. SeedCriteria must be idempotent per
// event: concurrent callers racing on an unseeded event end up with exactly
// one stored seed set.
type CriteriaRepository interface {
	ListCriteriaByEvent(ctx context.Context, eventID string) ([]entities.Criterion, error)
	SeedCriteria(ctx context.Context, criteria []entities.Criterion) ([]entities.Criterion, error)
}

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for seeded rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
