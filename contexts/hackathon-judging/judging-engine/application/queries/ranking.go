package queries

import (
	"context"
	"sort"
	"strings"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
)

// RankingUseCase recomputes aggregates from the live rating set on every
// call. Pull-based on purpose: rating volume is judges x submissions, so
// freshness wins over caching, and ordering stays a pure function of
// (scores, criteria weights, submittedAt, submission id).
type RankingUseCase struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionReader
	Criteria    ports.CriteriaProvider
}

// ComputeScore derives the per-criterion means and their overall mean for
// one submission. Criterion weight deliberately plays no part here; it only
// orders tie resolution.
func (uc RankingUseCase) ComputeScore(ctx context.Context, submissionID string) (entities.SubmissionScore, error) {
	submissionID = strings.TrimSpace(submissionID)
	submission, err := uc.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return entities.SubmissionScore{}, err
	}
	ratings, err := uc.Ratings.ListRatingsBySubmission(ctx, submissionID)
	if err != nil {
		return entities.SubmissionScore{}, err
	}
	return scoreFromRatings(submissionID, submission.EventID, ratings), nil
}

// RankEvent returns every submitted submission of the event in descending
// score order. The order is total and deterministic: rated before unrated,
// rounded overall descending, then weighted criterion comparison, then
// earlier submittedAt, then submission id ascending.
func (uc RankingUseCase) RankEvent(ctx context.Context, eventID string) ([]entities.RankedSubmission, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidEventID
	}

	submissions, err := uc.Submissions.ListSubmittedByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	criteria, err := uc.Criteria.ListCriteria(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ratings, err := uc.Ratings.ListRatingsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	bySubmission := make(map[string][]entities.Rating, len(submissions))
	for _, rating := range ratings {
		bySubmission[rating.SubmissionID] = append(bySubmission[rating.SubmissionID], rating)
	}

	ranked := make([]entities.RankedSubmission, 0, len(submissions))
	for _, submission := range submissions {
		ranked = append(ranked, entities.RankedSubmission{
			SubmissionID: submission.SubmissionID,
			TeamRef:      submission.TeamRef,
			SubmittedAt:  submission.SubmittedAt.UTC(),
			Score:        scoreFromRatings(submission.SubmissionID, eventID, bySubmission[submission.SubmissionID]),
		})
	}

	tieBreak := tieBreakOrder(criteria)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(ranked[i], ranked[j], tieBreak)
	})

	groupSizes := make(map[float64]int, len(ranked))
	for _, row := range ranked {
		if row.Score.Rated {
			groupSizes[row.Score.Rounded]++
		}
	}
	for index := range ranked {
		ranked[index].Position = index + 1
		if ranked[index].Score.Rated {
			ranked[index].TieGroupSize = groupSizes[ranked[index].Score.Rounded]
		}
	}
	return ranked, nil
}

// DetectTies returns only rounded-score groups with more than one member,
// descending by score, using the exact equality rule the ranking uses.
func (uc RankingUseCase) DetectTies(ctx context.Context, eventID string) ([]entities.TieGroup, error) {
	ranked, err := uc.RankEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[float64][]entities.SubmissionScore)
	for _, row := range ranked {
		if !row.Score.Rated {
			continue
		}
		grouped[row.Score.Rounded] = append(grouped[row.Score.Rounded], row.Score)
	}

	groups := make([]entities.TieGroup, 0)
	for score, members := range grouped {
		if len(members) < 2 {
			continue
		}
		groups = append(groups, entities.TieGroup{
			Score:       score,
			Submissions: members,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Score > groups[j].Score
	})
	return groups, nil
}

func scoreFromRatings(submissionID string, eventID string, ratings []entities.Rating) entities.SubmissionScore {
	score := entities.SubmissionScore{
		SubmissionID: strings.TrimSpace(submissionID),
		EventID:      strings.TrimSpace(eventID),
		PerCriterion: make(map[string]float64),
	}
	if len(ratings) == 0 {
		return score
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	judges := make(map[string]struct{})
	for _, rating := range ratings {
		sums[rating.CriterionID] += rating.Score
		counts[rating.CriterionID]++
		judges[rating.JudgeID] = struct{}{}
	}

	total := 0.0
	for criterionID, sum := range sums {
		mean := sum / float64(counts[criterionID])
		score.PerCriterion[criterionID] = mean
		total += mean
	}

	score.Rated = true
	score.Overall = total / float64(len(sums))
	score.Rounded = entities.RoundScore(score.Overall)
	score.RatingCount = len(ratings)
	score.JudgeCount = len(judges)
	return score
}

// tieBreakOrder sorts criteria for tie resolution: weight descending, then
// display order, then id so equal weights still compare deterministically.
func tieBreakOrder(criteria []ports.CriterionView) []ports.CriterionView {
	ordered := append([]ports.CriterionView(nil), criteria...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Weight != ordered[j].Weight {
			return ordered[i].Weight > ordered[j].Weight
		}
		if ordered[i].DisplayOrder != ordered[j].DisplayOrder {
			return ordered[i].DisplayOrder < ordered[j].DisplayOrder
		}
		return ordered[i].CriterionID < ordered[j].CriterionID
	})
	return ordered
}

func ranksBefore(a entities.RankedSubmission, b entities.RankedSubmission, tieBreak []ports.CriterionView) bool {
	if a.Score.Rated != b.Score.Rated {
		return a.Score.Rated
	}
	if a.Score.Rated && a.Score.Rounded != b.Score.Rounded {
		return a.Score.Rounded > b.Score.Rounded
	}
	if a.Score.Rated {
		for _, criterion := range tieBreak {
			left := a.Score.PerCriterion[criterion.CriterionID]
			right := b.Score.PerCriterion[criterion.CriterionID]
			if left != right {
				return left > right
			}
		}
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.SubmissionID < b.SubmissionID
}
