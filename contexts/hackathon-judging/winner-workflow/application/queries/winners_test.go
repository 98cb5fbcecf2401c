package queries

import (
	"context"
	"testing"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
)

func seedWinners() *memory.Store {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	return memory.NewStore([]entities.WinnerProposal{
		{WinnerID: "w-1", EventID: "event-1", SubmissionID: "sub-1", PrizePosition: 1, Status: entities.WinnerStatusAnnounced, CreatedAt: now, UpdatedAt: now},
		{WinnerID: "w-2", EventID: "event-1", SubmissionID: "sub-2", PrizePosition: 2, Status: entities.WinnerStatusApproved, CreatedAt: now, UpdatedAt: now},
		{WinnerID: "w-3", EventID: "event-1", SubmissionID: "sub-3", PrizePosition: 3, Status: entities.WinnerStatusPending, CreatedAt: now, UpdatedAt: now},
	})
}

func TestListWinnersPublicSeesAnnouncedOnly(t *testing.T) {
	useCase := WinnerListUseCase{Winners: seedWinners()}

	winners, err := useCase.ListWinners(context.Background(), "event-1", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(winners) != 1 || winners[0].WinnerID != "w-1" {
		t.Fatalf("expected only the announced winner, got %+v", winners)
	}
}

func TestListWinnersOrganizerSeesAllOrderedByPosition(t *testing.T) {
	useCase := WinnerListUseCase{Winners: seedWinners()}

	winners, err := useCase.ListWinners(context.Background(), "event-1", true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(winners) != 3 {
		t.Fatalf("expected all 3 winners, got %d", len(winners))
	}
	for index, winner := range winners {
		if winner.PrizePosition != index+1 {
			t.Fatalf("expected position order, got %+v", winners)
		}
	}
}
