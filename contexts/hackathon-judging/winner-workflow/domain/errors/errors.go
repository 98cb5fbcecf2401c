package errors

import "errors"

var (
	ErrInvalidWinnerInput     = errors.New("winner proposal input is invalid")
	ErrWinnerNotFound         = errors.New("winner proposal not found")
	ErrEventNotFound          = errors.New("event not found")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrSubmissionNotEligible  = errors.New("submission is not eligible for a prize")
	ErrNotEventOrganizer      = errors.New("caller is not the event organizer")
	ErrJudgingWindowOpen      = errors.New("judging window is still open")
	ErrDuplicatePrizePosition = errors.New("prize position appears more than once in the batch")
	ErrPrizePositionTaken     = errors.New("prize position is already approved or announced")
	ErrWinnerNotPending       = errors.New("winner proposal is not pending")
	ErrOutboxRowMissing       = errors.New("outbox row not found")
)
