package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application/commands"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application/queries"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	httptransport "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/transport/http"
)

type Handler struct {
	Winners commands.WinnerUseCase
	Listing queries.WinnerListUseCase
	Logger  *slog.Logger
}

func (h Handler) ProposeWinnersHandler(
	ctx context.Context,
	eventID string,
	request httptransport.ProposeWinnersRequest,
) (httptransport.ProposeWinnersResponse, error) {
	proposals := make([]commands.ProposalInput, 0, len(request.Proposals))
	for _, item := range request.Proposals {
		proposals = append(proposals, commands.ProposalInput{
			SubmissionID:  item.SubmissionID,
			PrizePosition: item.PrizePosition,
			PrizeAmount:   item.PrizeAmount,
		})
	}
	result, err := h.Winners.ProposeWinners(ctx, commands.ProposeWinnersCommand{
		OrganizerID: request.OrganizerID,
		EventID:     eventID,
		Proposals:   proposals,
	})
	response := httptransport.ProposeWinnersResponse{
		EventID:  eventID,
		Winners:  toWinnerItems(result.Winners),
		Outcomes: toOutcomeItems(result.Outcomes),
	}
	if err != nil {
		return response, err
	}
	return response, nil
}

func (h Handler) ApproveWinnerHandler(
	ctx context.Context,
	winnerID string,
	request httptransport.ApproveWinnerRequest,
) (httptransport.ApproveWinnerResponse, error) {
	winner, err := h.Winners.ApproveWinner(ctx, commands.ApproveWinnerCommand{
		OrganizerID: request.OrganizerID,
		WinnerID:    winnerID,
	})
	if err != nil {
		return httptransport.ApproveWinnerResponse{}, err
	}
	return httptransport.ApproveWinnerResponse{Winner: toWinnerItem(winner)}, nil
}

func (h Handler) AnnounceWinnersHandler(
	ctx context.Context,
	eventID string,
	request httptransport.AnnounceWinnersRequest,
) (httptransport.AnnounceWinnersResponse, error) {
	winners, err := h.Winners.AnnounceWinners(ctx, commands.AnnounceWinnersCommand{
		OrganizerID: request.OrganizerID,
		EventID:     eventID,
	})
	if err != nil {
		return httptransport.AnnounceWinnersResponse{}, err
	}
	return httptransport.AnnounceWinnersResponse{
		EventID: eventID,
		Winners: toWinnerItems(winners),
	}, nil
}

func (h Handler) ListWinnersHandler(
	ctx context.Context,
	eventID string,
	includeUnannounced bool,
) (httptransport.WinnersResponse, error) {
	winners, err := h.Listing.ListWinners(ctx, eventID, includeUnannounced)
	if err != nil {
		return httptransport.WinnersResponse{}, err
	}
	return httptransport.WinnersResponse{
		EventID: eventID,
		Winners: toWinnerItems(winners),
	}, nil
}

func toWinnerItem(winner entities.WinnerProposal) httptransport.WinnerItem {
	return httptransport.WinnerItem{
		WinnerID:      winner.WinnerID,
		EventID:       winner.EventID,
		SubmissionID:  winner.SubmissionID,
		PrizePosition: winner.PrizePosition,
		PrizeAmount:   winner.PrizeAmount,
		Status:        winner.Status,
		CreatedAt:     winner.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     winner.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toWinnerItems(winners []entities.WinnerProposal) []httptransport.WinnerItem {
	items := make([]httptransport.WinnerItem, 0, len(winners))
	for _, winner := range winners {
		items = append(items, toWinnerItem(winner))
	}
	return items
}

func toOutcomeItems(outcomes []commands.ProposalOutcome) []httptransport.ProposalOutcomeItem {
	items := make([]httptransport.ProposalOutcomeItem, 0, len(outcomes))
	for _, outcome := range outcomes {
		items = append(items, httptransport.ProposalOutcomeItem{
			PrizePosition: outcome.PrizePosition,
			SubmissionID:  outcome.SubmissionID,
			Accepted:      outcome.Accepted,
			Reason:        outcome.Reason,
		})
	}
	return items
}
