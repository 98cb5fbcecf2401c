package entities

import (
	"math"
	"time"
)

// Score bounds accepted for a single rating entry.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Rating is one judge's score+notes for one submission on one criterion.
// Natural key is (SubmissionID, JudgeID, CriterionID); later writes for the
// same key overwrite score, notes and UpdatedAt.
type Rating struct {
	RatingID     string
	SubmissionID string
	EventID      string
	JudgeID      string
	CriterionID  string
	Score        float64
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubmissionScore is the derived cross-judge aggregate for one submission.
// PerCriterion holds the arithmetic mean per criterion; Overall is the mean
// of those means. Rated is false when no rating exists, in which case the
// submission ranks below every rated one.
type SubmissionScore struct {
	SubmissionID string
	EventID      string
	Rated        bool
	Overall      float64
	Rounded      float64
	PerCriterion map[string]float64
	RatingCount  int
	JudgeCount   int
}

// RankedSubmission is one row of the deterministic event ranking.
type RankedSubmission struct {
	Position     int
	SubmissionID string
	TeamRef      string
	SubmittedAt  time.Time
	Score        SubmissionScore
	TieGroupSize int
}

// TieGroup collects submissions sharing the same rounded overall score.
type TieGroup struct {
	Score       float64
	Submissions []SubmissionScore
}

// JudgeStats is derived on read from stored ratings; SubmissionsRated is a
// distinct count, never an incremented counter, so re-rating the same
// submission cannot inflate it.
type JudgeStats struct {
	JudgeID          string
	SubmissionsRated int
	RatingsRecorded  int
}

// RoundScore quantizes an overall score to two decimals. This is the
// grouping key for tie detection: raw float equality would split scores
// that differ only by accumulated floating-point error.
func RoundScore(value float64) float64 {
	return math.Round(value*100) / 100
}
