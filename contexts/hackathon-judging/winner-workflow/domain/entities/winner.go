package entities

import "time"

const (
	WinnerStatusPending   = "pending"
	WinnerStatusApproved  = "approved"
	WinnerStatusAnnounced = "announced"
)

// WinnerProposal binds one submission to one prize position for an event.
// Status only ever moves forward: pending, approved, announced.
type WinnerProposal struct {
	WinnerID      string
	EventID       string
	SubmissionID  string
	PrizePosition int
	PrizeAmount   *float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (w WinnerProposal) IsPending() bool {
	return w.Status == WinnerStatusPending
}

func (w WinnerProposal) IsApproved() bool {
	return w.Status == WinnerStatusApproved
}

func (w WinnerProposal) IsAnnounced() bool {
	return w.Status == WinnerStatusAnnounced
}
