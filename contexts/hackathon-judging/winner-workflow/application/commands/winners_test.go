package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newWinnerFixture() (WinnerUseCase, *memory.Store) {
	store := memory.NewStore(nil)
	store.SetEvent(ports.EventProjection{
		EventID:       "event-1",
		OrganizerID:   "org-1",
		JudgingWindow: ports.JudgingWindowClosed,
	})
	for _, submissionID := range []string{"sub-1", "sub-2", "sub-3"} {
		store.SetSubmission(ports.SubmissionProjection{
			SubmissionID: submissionID,
			EventID:      "event-1",
			TeamRef:      "team-" + submissionID,
			Status:       ports.SubmissionStatusSubmitted,
		})
	}
	return WinnerUseCase{
		Winners:      store,
		Submissions:  store,
		Capabilities: application.Capabilities{Events: store},
		Outbox:       store,
		Clock:        fixedClock{now: time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)},
		IDGen:        store,
	}, store
}

func proposeBatch(t *testing.T, useCase WinnerUseCase, proposals ...ProposalInput) ProposeWinnersResult {
	t.Helper()
	result, err := useCase.ProposeWinners(context.Background(), ProposeWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
		Proposals:   proposals,
	})
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	return result
}

func TestProposeWinnersPersistsBatch(t *testing.T) {
	useCase, store := newWinnerFixture()

	amount := 500.0
	result := proposeBatch(t, useCase,
		ProposalInput{SubmissionID: "sub-1", PrizePosition: 1, PrizeAmount: &amount},
		ProposalInput{SubmissionID: "sub-2", PrizePosition: 2},
	)
	if len(result.Winners) != 2 {
		t.Fatalf("expected 2 winners, got %d", len(result.Winners))
	}
	for _, outcome := range result.Outcomes {
		if !outcome.Accepted {
			t.Fatalf("expected all outcomes accepted, got %+v", outcome)
		}
	}

	winners, err := store.ListWinnersByEvent(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(winners) != 2 {
		t.Fatalf("expected 2 persisted winners, got %d", len(winners))
	}
	if winners[0].PrizePosition != 1 || winners[0].Status != entities.WinnerStatusPending {
		t.Fatalf("expected pending first-place winner, got %+v", winners[0])
	}
	if winners[0].PrizeAmount == nil || *winners[0].PrizeAmount != 500 {
		t.Fatalf("expected prize amount carried through")
	}
}

func TestProposeWinnersDuplicatePositionRejectsWholeBatch(t *testing.T) {
	useCase, store := newWinnerFixture()

	result, err := useCase.ProposeWinners(context.Background(), ProposeWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
		Proposals: []ProposalInput{
			{SubmissionID: "sub-1", PrizePosition: 1},
			{SubmissionID: "sub-2", PrizePosition: 1},
		},
	})
	if !errors.Is(err, domainerrors.ErrDuplicatePrizePosition) {
		t.Fatalf("expected ErrDuplicatePrizePosition, got %v", err)
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("expected per-item outcomes on rejection, got %d", len(result.Outcomes))
	}
	if result.Outcomes[0].Accepted != true || result.Outcomes[1].Accepted != false {
		t.Fatalf("expected first item accepted and second rejected, got %+v", result.Outcomes)
	}

	winners, err := store.ListWinnersByEvent(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(winners) != 0 {
		t.Fatalf("expected nothing persisted on a rejected batch, got %d", len(winners))
	}
}

func TestProposeWinnersRequiresOrganizer(t *testing.T) {
	useCase, _ := newWinnerFixture()

	_, err := useCase.ProposeWinners(context.Background(), ProposeWinnersCommand{
		OrganizerID: "someone-else",
		EventID:     "event-1",
		Proposals:   []ProposalInput{{SubmissionID: "sub-1", PrizePosition: 1}},
	})
	if !errors.Is(err, domainerrors.ErrNotEventOrganizer) {
		t.Fatalf("expected ErrNotEventOrganizer, got %v", err)
	}
}

func TestProposeWinnersRejectedWhileJudgingOpen(t *testing.T) {
	useCase, store := newWinnerFixture()
	store.SetEvent(ports.EventProjection{
		EventID:       "event-1",
		OrganizerID:   "org-1",
		JudgingWindow: ports.JudgingWindowOpen,
	})

	_, err := useCase.ProposeWinners(context.Background(), ProposeWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
		Proposals:   []ProposalInput{{SubmissionID: "sub-1", PrizePosition: 1}},
	})
	if !errors.Is(err, domainerrors.ErrJudgingWindowOpen) {
		t.Fatalf("expected ErrJudgingWindowOpen, got %v", err)
	}
}

func TestProposeWinnersAllowedAfterJudgingEndTime(t *testing.T) {
	useCase, store := newWinnerFixture()
	store.SetEvent(ports.EventProjection{
		EventID:       "event-1",
		OrganizerID:   "org-1",
		JudgingWindow: ports.JudgingWindowOpen,
		JudgingEndsAt: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
	})

	// The fixture clock sits after the configured end, so the open flag
	// no longer blocks proposals.
	result := proposeBatch(t, useCase, ProposalInput{SubmissionID: "sub-1", PrizePosition: 1})
	if len(result.Winners) != 1 {
		t.Fatalf("expected proposal accepted after end time, got %d winners", len(result.Winners))
	}
}

func TestProposeWinnersReplacesPendingPosition(t *testing.T) {
	useCase, store := newWinnerFixture()

	first := proposeBatch(t, useCase, ProposalInput{SubmissionID: "sub-1", PrizePosition: 1})
	second := proposeBatch(t, useCase, ProposalInput{SubmissionID: "sub-2", PrizePosition: 1})

	if second.Winners[0].WinnerID != first.Winners[0].WinnerID {
		t.Fatalf("expected pending row replaced in place")
	}
	winners, err := store.ListWinnersByEvent(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(winners) != 1 || winners[0].SubmissionID != "sub-2" {
		t.Fatalf("expected one winner pointing at sub-2, got %+v", winners)
	}
}

func TestProposeWinnersRejectsApprovedPosition(t *testing.T) {
	useCase, _ := newWinnerFixture()

	first := proposeBatch(t, useCase, ProposalInput{SubmissionID: "sub-1", PrizePosition: 1})
	if _, err := useCase.ApproveWinner(context.Background(), ApproveWinnerCommand{
		OrganizerID: "org-1",
		WinnerID:    first.Winners[0].WinnerID,
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err := useCase.ProposeWinners(context.Background(), ProposeWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
		Proposals:   []ProposalInput{{SubmissionID: "sub-2", PrizePosition: 1}},
	})
	if !errors.Is(err, domainerrors.ErrPrizePositionTaken) {
		t.Fatalf("expected ErrPrizePositionTaken, got %v", err)
	}
}

func TestProposeWinnersRejectsForeignSubmission(t *testing.T) {
	useCase, store := newWinnerFixture()
	store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "sub-foreign",
		EventID:      "event-2",
		Status:       ports.SubmissionStatusSubmitted,
	})

	_, err := useCase.ProposeWinners(context.Background(), ProposeWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
		Proposals:   []ProposalInput{{SubmissionID: "sub-foreign", PrizePosition: 1}},
	})
	if !errors.Is(err, domainerrors.ErrSubmissionNotEligible) {
		t.Fatalf("expected ErrSubmissionNotEligible, got %v", err)
	}
}

func TestApproveWinnerWritesOutboxEvent(t *testing.T) {
	useCase, store := newWinnerFixture()

	result := proposeBatch(t, useCase, ProposalInput{SubmissionID: "sub-1", PrizePosition: 1})
	winner, err := useCase.ApproveWinner(context.Background(), ApproveWinnerCommand{
		OrganizerID: "org-1",
		WinnerID:    result.Winners[0].WinnerID,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if winner.Status != entities.WinnerStatusApproved {
		t.Fatalf("expected approved status, got %s", winner.Status)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(pending))
	}
	if pending[0].EventType != EventTypeWinnerApproved {
		t.Fatalf("expected %s, got %s", EventTypeWinnerApproved, pending[0].EventType)
	}
}

func TestApproveWinnerRejectsNonPending(t *testing.T) {
	useCase, _ := newWinnerFixture()

	result := proposeBatch(t, useCase, ProposalInput{SubmissionID: "sub-1", PrizePosition: 1})
	winnerID := result.Winners[0].WinnerID
	if _, err := useCase.ApproveWinner(context.Background(), ApproveWinnerCommand{
		OrganizerID: "org-1",
		WinnerID:    winnerID,
	}); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	_, err := useCase.ApproveWinner(context.Background(), ApproveWinnerCommand{
		OrganizerID: "org-1",
		WinnerID:    winnerID,
	})
	if !errors.Is(err, domainerrors.ErrWinnerNotPending) {
		t.Fatalf("expected ErrWinnerNotPending, got %v", err)
	}
}

func TestAnnounceWinnersIsIdempotent(t *testing.T) {
	useCase, store := newWinnerFixture()

	result := proposeBatch(t, useCase,
		ProposalInput{SubmissionID: "sub-1", PrizePosition: 1},
		ProposalInput{SubmissionID: "sub-2", PrizePosition: 2},
	)
	for _, winner := range result.Winners {
		if _, err := useCase.ApproveWinner(context.Background(), ApproveWinnerCommand{
			OrganizerID: "org-1",
			WinnerID:    winner.WinnerID,
		}); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
	}

	first, err := useCase.AnnounceWinners(context.Background(), AnnounceWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
	})
	if err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 announced winners, got %d", len(first))
	}

	outboxAfterFirst, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}

	second, err := useCase.AnnounceWinners(context.Background(), AnnounceWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
	})
	if err != nil {
		t.Fatalf("repeat announce failed: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected repeat announce to return the announced set, got %d", len(second))
	}

	outboxAfterSecond, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(outboxAfterSecond) != len(outboxAfterFirst) {
		t.Fatalf("expected no new outbox event on idempotent announce")
	}
}

func TestAnnounceWinnersSkipsPendingRows(t *testing.T) {
	useCase, _ := newWinnerFixture()

	result := proposeBatch(t, useCase,
		ProposalInput{SubmissionID: "sub-1", PrizePosition: 1},
		ProposalInput{SubmissionID: "sub-2", PrizePosition: 2},
	)
	if _, err := useCase.ApproveWinner(context.Background(), ApproveWinnerCommand{
		OrganizerID: "org-1",
		WinnerID:    result.Winners[0].WinnerID,
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	announced, err := useCase.AnnounceWinners(context.Background(), AnnounceWinnersCommand{
		OrganizerID: "org-1",
		EventID:     "event-1",
	})
	if err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	if len(announced) != 1 || announced[0].PrizePosition != 1 {
		t.Fatalf("expected only the approved winner announced, got %+v", announced)
	}
}
