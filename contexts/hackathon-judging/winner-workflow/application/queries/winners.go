package queries

import (
	"context"
	"sort"
	"strings"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

// WinnerListUseCase serves the public results page and the organizer audit
// view from the same repository.
type WinnerListUseCase struct {
	Winners ports.WinnerRepository
}

// ListWinners returns the event's winners ordered by prize position. Public
// callers only see announced rows; includeUnannounced widens the view to
// pending and approved proposals for the organizer.
func (uc WinnerListUseCase) ListWinners(ctx context.Context, eventID string, includeUnannounced bool) ([]entities.WinnerProposal, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidWinnerInput
	}
	winners, err := uc.Winners.ListWinnersByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.WinnerProposal, 0, len(winners))
	for _, winner := range winners {
		if !includeUnannounced && !winner.IsAnnounced() {
			continue
		}
		items = append(items, winner)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PrizePosition < items[j].PrizePosition
	})
	return items, nil
}
