package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	application "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

const (
	EventTypeWinnerApproved   = "winner.approved"
	EventTypeWinnersAnnounced = "winners.announced"
)

// ProposalInput is one prize slot nomination inside a propose batch.
type ProposalInput struct {
	SubmissionID  string
	PrizePosition int
	PrizeAmount   *float64
}

// ProposalOutcome reports per-item validation results. On a rejected batch
// every item still carries its own outcome so the organizer can fix the
// batch in one round trip.
type ProposalOutcome struct {
	PrizePosition int
	SubmissionID  string
	Accepted      bool
	Reason        string
}

type ProposeWinnersCommand struct {
	OrganizerID string
	EventID     string
	Proposals   []ProposalInput
}

type ProposeWinnersResult struct {
	Winners  []entities.WinnerProposal
	Outcomes []ProposalOutcome
}

type ApproveWinnerCommand struct {
	OrganizerID string
	WinnerID    string
}

type AnnounceWinnersCommand struct {
	OrganizerID string
	EventID     string
}

// WinnerUseCase owns the prize workflow writes. Every command re-checks
// organizer ownership; approval and announcement go through the outbox so
// downstream effects survive a crash between commit and publish.
type WinnerUseCase struct {
	Winners      ports.WinnerRepository
	Submissions  ports.SubmissionReader
	Capabilities application.Capabilities
	Outbox       ports.OutboxWriter
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

// ProposeWinners validates the whole batch before any write. A single bad
// item rejects the batch; outcomes in the result name the offending items.
// Pending rows already sitting on a proposed position are replaced in
// place, approved or announced rows make the position unavailable.
func (uc WinnerUseCase) ProposeWinners(ctx context.Context, cmd ProposeWinnersCommand) (ProposeWinnersResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	organizerID := strings.TrimSpace(cmd.OrganizerID)
	if eventID == "" || organizerID == "" || len(cmd.Proposals) == 0 {
		return ProposeWinnersResult{}, domainerrors.ErrInvalidWinnerInput
	}

	event, err := uc.Capabilities.CanProposeWinners(ctx, organizerID, eventID)
	if err != nil {
		return ProposeWinnersResult{}, err
	}
	if err := uc.requireJudgingClosed(event); err != nil {
		return ProposeWinnersResult{}, err
	}

	existing, err := uc.Winners.ListWinnersByEvent(ctx, eventID)
	if err != nil {
		return ProposeWinnersResult{}, err
	}
	pendingByPosition := make(map[int]entities.WinnerProposal)
	lockedPositions := make(map[int]struct{})
	for _, winner := range existing {
		if winner.IsPending() {
			pendingByPosition[winner.PrizePosition] = winner
			continue
		}
		lockedPositions[winner.PrizePosition] = struct{}{}
	}

	outcomes := make([]ProposalOutcome, 0, len(cmd.Proposals))
	seenPositions := make(map[int]struct{}, len(cmd.Proposals))
	var batchErr error
	for _, proposal := range cmd.Proposals {
		outcome := uc.checkProposal(ctx, eventID, proposal, seenPositions, lockedPositions)
		seenPositions[proposal.PrizePosition] = struct{}{}
		outcomes = append(outcomes, outcome)
		if !outcome.Accepted && batchErr == nil {
			batchErr = reasonError(outcome.Reason)
		}
	}
	if batchErr != nil {
		logger.Warn("winner proposal batch rejected",
			"event", "winner_propose_rejected",
			"module", "hackathon-judging/winner-workflow",
			"layer", "application",
			"event_id", eventID,
			"organizer_id", organizerID,
			"item_count", len(cmd.Proposals),
		)
		return ProposeWinnersResult{Outcomes: outcomes}, batchErr
	}

	now := uc.now()
	winners := make([]entities.WinnerProposal, 0, len(cmd.Proposals))
	for _, proposal := range cmd.Proposals {
		winner, replaced := pendingByPosition[proposal.PrizePosition]
		if !replaced {
			winnerID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return ProposeWinnersResult{Outcomes: outcomes}, err
			}
			winner = entities.WinnerProposal{
				WinnerID:  winnerID,
				EventID:   eventID,
				CreatedAt: now,
			}
		}
		winner.SubmissionID = strings.TrimSpace(proposal.SubmissionID)
		winner.PrizePosition = proposal.PrizePosition
		winner.PrizeAmount = proposal.PrizeAmount
		winner.Status = entities.WinnerStatusPending
		winner.UpdatedAt = now
		if err := uc.Winners.SaveWinner(ctx, winner); err != nil {
			return ProposeWinnersResult{Outcomes: outcomes}, err
		}
		winners = append(winners, winner)
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].PrizePosition < winners[j].PrizePosition
	})

	logger.Info("winner proposals recorded",
		"event", "winner_proposed",
		"module", "hackathon-judging/winner-workflow",
		"layer", "application",
		"event_id", eventID,
		"organizer_id", organizerID,
		"winner_count", len(winners),
	)
	return ProposeWinnersResult{Winners: winners, Outcomes: outcomes}, nil
}

// ApproveWinner moves one pending proposal to approved and appends the
// winner.approved outbox event, the single trigger for downstream
// achievement side effects.
func (uc WinnerUseCase) ApproveWinner(ctx context.Context, cmd ApproveWinnerCommand) (entities.WinnerProposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	winnerID := strings.TrimSpace(cmd.WinnerID)
	if winnerID == "" {
		return entities.WinnerProposal{}, domainerrors.ErrInvalidWinnerInput
	}

	winner, err := uc.Winners.GetWinner(ctx, winnerID)
	if err != nil {
		return entities.WinnerProposal{}, err
	}
	if _, err := uc.Capabilities.CanProposeWinners(ctx, cmd.OrganizerID, winner.EventID); err != nil {
		return entities.WinnerProposal{}, err
	}
	if !winner.IsPending() {
		return entities.WinnerProposal{}, domainerrors.ErrWinnerNotPending
	}

	now := uc.now()
	winner.Status = entities.WinnerStatusApproved
	winner.UpdatedAt = now
	if err := uc.Winners.SaveWinner(ctx, winner); err != nil {
		return entities.WinnerProposal{}, err
	}

	outboxEventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.WinnerProposal{}, err
	}
	envelope, err := newWinnerEnvelope(outboxEventID, EventTypeWinnerApproved, winner.EventID, now, map[string]any{
		"winner_id":      winner.WinnerID,
		"event_id":       winner.EventID,
		"submission_id":  winner.SubmissionID,
		"prize_position": winner.PrizePosition,
	})
	if err != nil {
		return entities.WinnerProposal{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.WinnerProposal{}, err
	}

	logger.Info("winner approved",
		"event", "winner_approved",
		"module", "hackathon-judging/winner-workflow",
		"layer", "application",
		"winner_id", winner.WinnerID,
		"event_id", winner.EventID,
		"prize_position", winner.PrizePosition,
	)
	return winner, nil
}

// AnnounceWinners publishes every approved proposal of the event at once.
// Calling it again with nothing left to announce returns the already
// announced set and writes no event, so retries are safe.
func (uc WinnerUseCase) AnnounceWinners(ctx context.Context, cmd AnnounceWinnersCommand) ([]entities.WinnerProposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidWinnerInput
	}
	if _, err := uc.Capabilities.CanProposeWinners(ctx, cmd.OrganizerID, eventID); err != nil {
		return nil, err
	}

	winners, err := uc.Winners.ListWinnersByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	announced := make([]entities.WinnerProposal, 0, len(winners))
	transitioned := make([]string, 0, len(winners))
	for _, winner := range winners {
		if winner.IsApproved() {
			winner.Status = entities.WinnerStatusAnnounced
			winner.UpdatedAt = now
			if err := uc.Winners.SaveWinner(ctx, winner); err != nil {
				return nil, err
			}
			transitioned = append(transitioned, winner.WinnerID)
		}
		if winner.IsAnnounced() {
			announced = append(announced, winner)
		}
	}
	sort.Slice(announced, func(i, j int) bool {
		return announced[i].PrizePosition < announced[j].PrizePosition
	})

	if len(transitioned) > 0 {
		outboxEventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		envelope, err := newWinnerEnvelope(outboxEventID, EventTypeWinnersAnnounced, eventID, now, map[string]any{
			"event_id":   eventID,
			"winner_ids": transitioned,
		})
		if err != nil {
			return nil, err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return nil, err
		}
	}

	logger.Info("winners announced",
		"event", "winners_announced",
		"module", "hackathon-judging/winner-workflow",
		"layer", "application",
		"event_id", eventID,
		"transitioned_count", len(transitioned),
		"announced_count", len(announced),
	)
	return announced, nil
}

func (uc WinnerUseCase) checkProposal(
	ctx context.Context,
	eventID string,
	proposal ProposalInput,
	seenPositions map[int]struct{},
	lockedPositions map[int]struct{},
) ProposalOutcome {
	outcome := ProposalOutcome{
		PrizePosition: proposal.PrizePosition,
		SubmissionID:  strings.TrimSpace(proposal.SubmissionID),
	}
	if proposal.PrizePosition < 1 || outcome.SubmissionID == "" {
		outcome.Reason = reasonInvalidInput
		return outcome
	}
	if _, duplicate := seenPositions[proposal.PrizePosition]; duplicate {
		outcome.Reason = reasonDuplicatePosition
		return outcome
	}
	if _, locked := lockedPositions[proposal.PrizePosition]; locked {
		outcome.Reason = reasonPositionTaken
		return outcome
	}
	submission, err := uc.Submissions.GetSubmission(ctx, outcome.SubmissionID)
	if err != nil {
		outcome.Reason = reasonSubmissionNotFound
		return outcome
	}
	if submission.EventID != eventID || !strings.EqualFold(submission.Status, ports.SubmissionStatusSubmitted) {
		outcome.Reason = reasonSubmissionNotEligible
		return outcome
	}
	outcome.Accepted = true
	return outcome
}

// Judging is closed once the organizer shuts the window or the configured
// end time passes, whichever happens first.
func (uc WinnerUseCase) requireJudgingClosed(event ports.EventProjection) error {
	if event.JudgingWindow == ports.JudgingWindowClosed {
		return nil
	}
	if !event.JudgingEndsAt.IsZero() && uc.now().After(event.JudgingEndsAt) {
		return nil
	}
	return domainerrors.ErrJudgingWindowOpen
}

func (uc WinnerUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

const (
	reasonInvalidInput          = "invalid_input"
	reasonDuplicatePosition     = "duplicate_position"
	reasonPositionTaken         = "position_taken"
	reasonSubmissionNotFound    = "submission_not_found"
	reasonSubmissionNotEligible = "submission_not_eligible"
)

func reasonError(reason string) error {
	switch reason {
	case reasonDuplicatePosition:
		return domainerrors.ErrDuplicatePrizePosition
	case reasonPositionTaken:
		return domainerrors.ErrPrizePositionTaken
	case reasonSubmissionNotFound:
		return domainerrors.ErrSubmissionNotFound
	case reasonSubmissionNotEligible:
		return domainerrors.ErrSubmissionNotEligible
	default:
		return domainerrors.ErrInvalidWinnerInput
	}
}
