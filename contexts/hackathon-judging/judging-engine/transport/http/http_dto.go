package httptransport

// ErrorResponse is the canonical error envelope for judging endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RatingEntryRequest struct {
	CriterionID string  `json:"criterion_id"`
	Score       float64 `json:"score"`
	Notes       string  `json:"notes,omitempty"`
}

type SubmitRatingRequest struct {
	JudgeID string               `json:"judge_id"`
	Entries []RatingEntryRequest `json:"entries"`
}

type RatingItem struct {
	RatingID     string  `json:"rating_id"`
	SubmissionID string  `json:"submission_id"`
	EventID      string  `json:"event_id"`
	JudgeID      string  `json:"judge_id"`
	CriterionID  string  `json:"criterion_id"`
	Score        float64 `json:"score"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type SubmitRatingResponse struct {
	SubmissionID string       `json:"submission_id"`
	Created      int          `json:"created"`
	Updated      int          `json:"updated"`
	Ratings      []RatingItem `json:"ratings"`
}

type RatingsResponse struct {
	SubmissionID string       `json:"submission_id"`
	Items        []RatingItem `json:"items"`
}

// ScoreResponse carries a nullable overall so unrated submissions read as
// "no score yet" rather than zero.
type ScoreResponse struct {
	SubmissionID string             `json:"submission_id"`
	EventID      string             `json:"event_id"`
	Rated        bool               `json:"rated"`
	Overall      *float64           `json:"overall"`
	Rounded      *float64           `json:"rounded"`
	PerCriterion map[string]float64 `json:"per_criterion"`
	RatingCount  int                `json:"rating_count"`
	JudgeCount   int                `json:"judge_count"`
}

type RankingRow struct {
	Position     int      `json:"position"`
	SubmissionID string   `json:"submission_id"`
	TeamRef      string   `json:"team_ref,omitempty"`
	SubmittedAt  string   `json:"submitted_at"`
	Rated        bool     `json:"rated"`
	Overall      *float64 `json:"overall"`
	Rounded      *float64 `json:"rounded"`
	TieGroupSize int      `json:"tie_group_size,omitempty"`
}

type RankingResponse struct {
	EventID string       `json:"event_id"`
	Items   []RankingRow `json:"items"`
}

type TieGroupItem struct {
	Score       float64         `json:"score"`
	Submissions []ScoreResponse `json:"submissions"`
}

type TiesResponse struct {
	EventID string         `json:"event_id"`
	Groups  []TieGroupItem `json:"groups"`
}

type JudgeStatsResponse struct {
	JudgeID          string `json:"judge_id"`
	SubmissionsRated int    `json:"submissions_rated"`
	RatingsRecorded  int    `json:"ratings_recorded"`
}
