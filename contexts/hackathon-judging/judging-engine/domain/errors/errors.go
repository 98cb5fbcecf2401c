package errors

import "errors"

var (
	ErrInvalidRatingInput      = errors.New("invalid rating input")
	ErrRatingNotFound          = errors.New("rating not found")
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrSubmissionNotRatable    = errors.New("submission is not in submitted state")
	ErrJudgeNotAssigned        = errors.New("judge has no active assignment for this event")
	ErrScoreOutOfBounds        = errors.New("score is outside the allowed bounds")
	ErrCriterionMismatch       = errors.New("criterion does not belong to the submission's event")
	ErrDuplicateCriterionEntry = errors.New("duplicate criterion in one rating batch")
	ErrInvalidEventID          = errors.New("invalid event id")
	ErrInvalidJudgeID          = errors.New("invalid judge id")
)
