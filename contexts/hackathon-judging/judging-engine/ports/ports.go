package ports

import (
	"context"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
)

// SubmissionStatusSubmitted is the only submission state that is ratable
// and rankable; drafts are invisible to the engine.
const SubmissionStatusSubmitted = "submitted"

// RatingRepository persists ratings. Identity lookups drive the upsert:
// SaveRating with an existing RatingID overwrites that row.
type RatingRepository interface {
	SaveRating(ctx context.Context, rating entities.Rating) error
	GetRatingByIdentity(ctx context.Context, submissionID string, judgeID string, criterionID string) (entities.Rating, bool, error)
	ListRatingsBySubmission(ctx context.Context, submissionID string) ([]entities.Rating, error)
	ListRatingsByEvent(ctx context.Context, eventID string) ([]entities.Rating, error)
	CountDistinctRatedSubmissions(ctx context.Context, judgeID string) (int, error)
	CountRatingsByJudge(ctx context.Context, judgeID string) (int, error)
}

// SubmissionProjection is read-only collaborator data owned by the
// submission store.
type SubmissionProjection struct {
	SubmissionID string
	EventID      string
	TeamRef      string
	Status       string
	SubmittedAt  time.Time
}

type SubmissionReader interface {
	GetSubmission(ctx context.Context, submissionID string) (SubmissionProjection, error)
	ListSubmittedByEvent(ctx context.Context, eventID string) ([]SubmissionProjection, error)
}

// AssignmentReader exposes the external judge-assignment workflow; the
// engine only ever asks whether an assignment is currently active.
type AssignmentReader interface {
	IsActiveAssignment(ctx context.Context, judgeID string, eventID string) (bool, error)
}

// CriterionView is the registry's criterion as the engine consumes it:
// id and event scope for validation, weight and order for tie resolution.
type CriterionView struct {
	CriterionID  string
	EventID      string
	Name         string
	Weight       int
	DisplayOrder int
}

type CriteriaProvider interface {
	ListCriteria(ctx context.Context, eventID string) ([]CriterionView, error)
}

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new rating rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
