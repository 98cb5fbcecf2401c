package queries

import (
	"context"
	"sort"
	"strings"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
)

// AuditUseCase serves organizer-facing transparency reads: raw ratings per
// submission and derived judge activity stats.
type AuditUseCase struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionReader
}

// ListRatings exposes which judge rated what on a submission. Rows come
// back criterion-grouped and judge-ordered for stable audit views.
func (uc AuditUseCase) ListRatings(ctx context.Context, submissionID string) ([]entities.Rating, error) {
	submissionID = strings.TrimSpace(submissionID)
	if _, err := uc.Submissions.GetSubmission(ctx, submissionID); err != nil {
		return nil, err
	}
	ratings, err := uc.Ratings.ListRatingsBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].CriterionID != ratings[j].CriterionID {
			return ratings[i].CriterionID < ratings[j].CriterionID
		}
		return ratings[i].JudgeID < ratings[j].JudgeID
	})
	return ratings, nil
}

// JudgeStats derives the judge's distinct-submission count on read. The
// count comes straight from rating rows, so overwriting an existing rating
// can never inflate it.
func (uc AuditUseCase) JudgeStats(ctx context.Context, judgeID string) (entities.JudgeStats, error) {
	judgeID = strings.TrimSpace(judgeID)
	if judgeID == "" {
		return entities.JudgeStats{}, domainerrors.ErrInvalidJudgeID
	}
	distinct, err := uc.Ratings.CountDistinctRatedSubmissions(ctx, judgeID)
	if err != nil {
		return entities.JudgeStats{}, err
	}
	total, err := uc.Ratings.CountRatingsByJudge(ctx, judgeID)
	if err != nil {
		return entities.JudgeStats{}, err
	}
	return entities.JudgeStats{
		JudgeID:          judgeID,
		SubmissionsRated: distinct,
		RatingsRecorded:  total,
	}, nil
}
