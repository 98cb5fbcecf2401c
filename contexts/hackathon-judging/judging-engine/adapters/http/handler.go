package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application/commands"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application/queries"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	httptransport "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/transport/http"
)

type Handler struct {
	Ratings commands.RatingUseCase
	Ranking queries.RankingUseCase
	Audit   queries.AuditUseCase
	Logger  *slog.Logger
}

func (h Handler) SubmitRatingHandler(
	ctx context.Context,
	submissionID string,
	request httptransport.SubmitRatingRequest,
) (httptransport.SubmitRatingResponse, error) {
	entries := make([]commands.RatingEntry, 0, len(request.Entries))
	for _, entry := range request.Entries {
		entries = append(entries, commands.RatingEntry{
			CriterionID: entry.CriterionID,
			Score:       entry.Score,
			Notes:       entry.Notes,
		})
	}
	result, err := h.Ratings.SubmitRating(ctx, commands.SubmitRatingCommand{
		JudgeID:      request.JudgeID,
		SubmissionID: submissionID,
		Entries:      entries,
	})
	if err != nil {
		return httptransport.SubmitRatingResponse{}, err
	}
	return httptransport.SubmitRatingResponse{
		SubmissionID: submissionID,
		Created:      result.Created,
		Updated:      result.Updated,
		Ratings:      toRatingItems(result.Ratings),
	}, nil
}

func (h Handler) ListRatingsHandler(ctx context.Context, submissionID string) (httptransport.RatingsResponse, error) {
	ratings, err := h.Audit.ListRatings(ctx, submissionID)
	if err != nil {
		return httptransport.RatingsResponse{}, err
	}
	return httptransport.RatingsResponse{
		SubmissionID: submissionID,
		Items:        toRatingItems(ratings),
	}, nil
}

func (h Handler) GetScoreHandler(ctx context.Context, submissionID string) (httptransport.ScoreResponse, error) {
	score, err := h.Ranking.ComputeScore(ctx, submissionID)
	if err != nil {
		return httptransport.ScoreResponse{}, err
	}
	return toScoreResponse(score), nil
}

func (h Handler) GetRankingHandler(ctx context.Context, eventID string) (httptransport.RankingResponse, error) {
	ranked, err := h.Ranking.RankEvent(ctx, eventID)
	if err != nil {
		return httptransport.RankingResponse{}, err
	}
	items := make([]httptransport.RankingRow, 0, len(ranked))
	for _, row := range ranked {
		item := httptransport.RankingRow{
			Position:     row.Position,
			SubmissionID: row.SubmissionID,
			TeamRef:      row.TeamRef,
			SubmittedAt:  row.SubmittedAt.UTC().Format(time.RFC3339),
			Rated:        row.Score.Rated,
			TieGroupSize: row.TieGroupSize,
		}
		if row.Score.Rated {
			overall := row.Score.Overall
			rounded := row.Score.Rounded
			item.Overall = &overall
			item.Rounded = &rounded
		}
		items = append(items, item)
	}
	return httptransport.RankingResponse{
		EventID: eventID,
		Items:   items,
	}, nil
}

func (h Handler) GetTiesHandler(ctx context.Context, eventID string) (httptransport.TiesResponse, error) {
	groups, err := h.Ranking.DetectTies(ctx, eventID)
	if err != nil {
		return httptransport.TiesResponse{}, err
	}
	items := make([]httptransport.TieGroupItem, 0, len(groups))
	for _, group := range groups {
		members := make([]httptransport.ScoreResponse, 0, len(group.Submissions))
		for _, member := range group.Submissions {
			members = append(members, toScoreResponse(member))
		}
		items = append(items, httptransport.TieGroupItem{
			Score:       group.Score,
			Submissions: members,
		})
	}
	return httptransport.TiesResponse{
		EventID: eventID,
		Groups:  items,
	}, nil
}

func (h Handler) GetJudgeStatsHandler(ctx context.Context, judgeID string) (httptransport.JudgeStatsResponse, error) {
	stats, err := h.Audit.JudgeStats(ctx, judgeID)
	if err != nil {
		return httptransport.JudgeStatsResponse{}, err
	}
	return httptransport.JudgeStatsResponse{
		JudgeID:          stats.JudgeID,
		SubmissionsRated: stats.SubmissionsRated,
		RatingsRecorded:  stats.RatingsRecorded,
	}, nil
}

func toRatingItems(ratings []entities.Rating) []httptransport.RatingItem {
	items := make([]httptransport.RatingItem, 0, len(ratings))
	for _, rating := range ratings {
		items = append(items, httptransport.RatingItem{
			RatingID:     rating.RatingID,
			SubmissionID: rating.SubmissionID,
			EventID:      rating.EventID,
			JudgeID:      rating.JudgeID,
			CriterionID:  rating.CriterionID,
			Score:        rating.Score,
			Notes:        rating.Notes,
			CreatedAt:    rating.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:    rating.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}

func toScoreResponse(score entities.SubmissionScore) httptransport.ScoreResponse {
	response := httptransport.ScoreResponse{
		SubmissionID: score.SubmissionID,
		EventID:      score.EventID,
		Rated:        score.Rated,
		PerCriterion: score.PerCriterion,
		RatingCount:  score.RatingCount,
		JudgeCount:   score.JudgeCount,
	}
	if score.Rated {
		overall := score.Overall
		rounded := score.Rounded
		response.Overall = &overall
		response.Rounded = &rounded
	}
	return response
}
