package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
)

// RatingEntry is one criterion score inside a rating batch.
type RatingEntry struct {
	CriterionID string
	Score       float64
	Notes       string
}

// SubmitRatingCommand is the write-model input for rating capture.
type SubmitRatingCommand struct {
	JudgeID      string
	SubmissionID string
	Entries      []RatingEntry
}

// SubmitRatingResult reports the final rows plus create/overwrite markers
// that the transport layer maps to API semantics.
type SubmitRatingResult struct {
	Ratings []entities.Rating
	Created int
	Updated int
}

// RatingUseCase orchestrates rating capture: assignment gating, submission
// state checks, entry validation and natural-key upserts.
type RatingUseCase struct {
	Ratings      ports.RatingRepository
	Submissions  ports.SubmissionReader
	Criteria     ports.CriteriaProvider
	Capabilities application.Capabilities
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

// SubmitRating validates and upserts a batch of per-criterion scores for
// one (judge, submission) pair. Preconditions fail in a fixed order with
// distinct errors, and no row is written unless every entry passes.
func (uc RatingUseCase) SubmitRating(ctx context.Context, cmd SubmitRatingCommand) (SubmitRatingResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	judgeID := strings.TrimSpace(cmd.JudgeID)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	logger.Info("rating submit processing started",
		"event", "judging_rating_submit_started",
		"module", "hackathon-judging/judging-engine",
		"layer", "application",
		"judge_id", judgeID,
		"submission_id", submissionID,
		"entry_count", len(cmd.Entries),
	)
	if judgeID == "" || submissionID == "" || len(cmd.Entries) == 0 {
		logger.Warn("rating submit validation failed",
			"event", "judging_rating_submit_validation_failed",
			"module", "hackathon-judging/judging-engine",
			"layer", "application",
			"judge_id", judgeID,
			"submission_id", submissionID,
		)
		return SubmitRatingResult{}, domainerrors.ErrInvalidRatingInput
	}

	submission, err := uc.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return SubmitRatingResult{}, err
	}

	allowed, err := uc.Capabilities.CanRateSubmission(ctx, judgeID, submission.EventID)
	if err != nil {
		return SubmitRatingResult{}, err
	}
	if !allowed {
		logger.Warn("rating submit rejected for unassigned judge",
			"event", "judging_rating_submit_unauthorized",
			"module", "hackathon-judging/judging-engine",
			"layer", "application",
			"judge_id", judgeID,
			"submission_id", submissionID,
			"event_id", submission.EventID,
		)
		return SubmitRatingResult{}, domainerrors.ErrJudgeNotAssigned
	}

	if !strings.EqualFold(strings.TrimSpace(submission.Status), ports.SubmissionStatusSubmitted) {
		return SubmitRatingResult{}, domainerrors.ErrSubmissionNotRatable
	}

	criteria, err := uc.Criteria.ListCriteria(ctx, submission.EventID)
	if err != nil {
		return SubmitRatingResult{}, err
	}
	eventCriteria := make(map[string]ports.CriterionView, len(criteria))
	for _, criterion := range criteria {
		eventCriteria[criterion.CriterionID] = criterion
	}

	seen := make(map[string]struct{}, len(cmd.Entries))
	for _, entry := range cmd.Entries {
		criterionID := strings.TrimSpace(entry.CriterionID)
		if criterionID == "" {
			return SubmitRatingResult{}, domainerrors.ErrInvalidRatingInput
		}
		if _, duplicate := seen[criterionID]; duplicate {
			return SubmitRatingResult{}, domainerrors.ErrDuplicateCriterionEntry
		}
		seen[criterionID] = struct{}{}
		if entry.Score < entities.MinScore || entry.Score > entities.MaxScore {
			return SubmitRatingResult{}, domainerrors.ErrScoreOutOfBounds
		}
		if _, ok := eventCriteria[criterionID]; !ok {
			return SubmitRatingResult{}, domainerrors.ErrCriterionMismatch
		}
	}

	now := uc.now()
	result := SubmitRatingResult{Ratings: make([]entities.Rating, 0, len(cmd.Entries))}
	for _, entry := range cmd.Entries {
		criterionID := strings.TrimSpace(entry.CriterionID)
		existing, found, err := uc.Ratings.GetRatingByIdentity(ctx, submissionID, judgeID, criterionID)
		if err != nil {
			return SubmitRatingResult{}, err
		}
		if found {
			existing.Score = entry.Score
			existing.Notes = strings.TrimSpace(entry.Notes)
			existing.UpdatedAt = now
			if err := uc.Ratings.SaveRating(ctx, existing); err != nil {
				return SubmitRatingResult{}, err
			}
			result.Ratings = append(result.Ratings, existing)
			result.Updated++
			continue
		}

		ratingID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return SubmitRatingResult{}, err
		}
		rating := entities.Rating{
			RatingID:     ratingID,
			SubmissionID: submissionID,
			EventID:      strings.TrimSpace(submission.EventID),
			JudgeID:      judgeID,
			CriterionID:  criterionID,
			Score:        entry.Score,
			Notes:        strings.TrimSpace(entry.Notes),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.Ratings.SaveRating(ctx, rating); err != nil {
			return SubmitRatingResult{}, err
		}
		result.Ratings = append(result.Ratings, rating)
		result.Created++
	}

	logger.Info("rating batch recorded",
		"event", "judging_rating_recorded",
		"module", "hackathon-judging/judging-engine",
		"layer", "application",
		"judge_id", judgeID,
		"submission_id", submissionID,
		"event_id", submission.EventID,
		"created", result.Created,
		"updated", result.Updated,
	)
	return result, nil
}

func (uc RatingUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
