package httptransport

// ErrorResponse is the canonical error envelope for winner endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProposalItemRequest struct {
	SubmissionID  string   `json:"submission_id"`
	PrizePosition int      `json:"prize_position"`
	PrizeAmount   *float64 `json:"prize_amount,omitempty"`
}

type ProposeWinnersRequest struct {
	OrganizerID string                `json:"organizer_id"`
	Proposals   []ProposalItemRequest `json:"proposals"`
}

type ProposalOutcomeItem struct {
	PrizePosition int    `json:"prize_position"`
	SubmissionID  string `json:"submission_id"`
	Accepted      bool   `json:"accepted"`
	Reason        string `json:"reason,omitempty"`
}

type WinnerItem struct {
	WinnerID      string   `json:"winner_id"`
	EventID       string   `json:"event_id"`
	SubmissionID  string   `json:"submission_id"`
	PrizePosition int      `json:"prize_position"`
	PrizeAmount   *float64 `json:"prize_amount,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type ProposeWinnersResponse struct {
	EventID  string                `json:"event_id"`
	Winners  []WinnerItem          `json:"winners"`
	Outcomes []ProposalOutcomeItem `json:"outcomes"`
}

// ProposeWinnersErrorResponse keeps the per-item outcomes on a rejected
// batch so the organizer can correct it in one round trip.
type ProposeWinnersErrorResponse struct {
	Code     string                `json:"code"`
	Message  string                `json:"message"`
	Outcomes []ProposalOutcomeItem `json:"outcomes,omitempty"`
}

type ApproveWinnerRequest struct {
	OrganizerID string `json:"organizer_id"`
}

type ApproveWinnerResponse struct {
	Winner WinnerItem `json:"winner"`
}

type AnnounceWinnersRequest struct {
	OrganizerID string `json:"organizer_id"`
}

type AnnounceWinnersResponse struct {
	EventID string       `json:"event_id"`
	Winners []WinnerItem `json:"winners"`
}

type WinnersResponse struct {
	EventID string       `json:"event_id"`
	Winners []WinnerItem `json:"winners"`
}
