package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newRatingFixture() (RatingUseCase, *memory.Store) {
	store := memory.NewStore(nil)
	store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "sub-1",
		EventID:      "event-1",
		TeamRef:      "team-alpha",
		Status:       ports.SubmissionStatusSubmitted,
		SubmittedAt:  time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	})
	store.SetAssignment("judge-1", "event-1", true)
	store.SetCriterion(ports.CriterionView{
		CriterionID:  "crit-innovation",
		EventID:      "event-1",
		Name:         "Innovation",
		Weight:       5,
		DisplayOrder: 1,
	})
	store.SetCriterion(ports.CriterionView{
		CriterionID:  "crit-technical",
		EventID:      "event-1",
		Name:         "Technical",
		Weight:       4,
		DisplayOrder: 2,
	})
	useCase := RatingUseCase{
		Ratings:      store,
		Submissions:  store,
		Criteria:     store,
		Capabilities: application.Capabilities{Assignments: store},
		Clock:        fixedClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
		IDGen:        store,
	}
	return useCase, store
}

func TestSubmitRatingCreatesRows(t *testing.T) {
	useCase, store := newRatingFixture()

	result, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries: []RatingEntry{
			{CriterionID: "crit-innovation", Score: 8},
			{CriterionID: "crit-technical", Score: 7, Notes: "solid stack"},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 {
		t.Fatalf("expected 2 created 0 updated, got %d/%d", result.Created, result.Updated)
	}

	rows, err := store.ListRatingsBySubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 persisted ratings, got %d", len(rows))
	}
	for _, row := range rows {
		if row.EventID != "event-1" {
			t.Fatalf("expected event id copied onto the rating, got %q", row.EventID)
		}
	}
}

func TestSubmitRatingOverwritesExistingScore(t *testing.T) {
	useCase, store := newRatingFixture()

	first, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries:      []RatingEntry{{CriterionID: "crit-innovation", Score: 6}},
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries:      []RatingEntry{{CriterionID: "crit-innovation", Score: 9, Notes: "revised"}},
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if second.Created != 0 || second.Updated != 1 {
		t.Fatalf("expected overwrite, got created=%d updated=%d", second.Created, second.Updated)
	}
	if second.Ratings[0].RatingID != first.Ratings[0].RatingID {
		t.Fatalf("expected the same rating row to be updated")
	}
	if !second.Ratings[0].CreatedAt.Equal(first.Ratings[0].CreatedAt) {
		t.Fatalf("expected CreatedAt preserved across overwrite")
	}

	rows, err := store.ListRatingsBySubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row after overwrite, got %d", len(rows))
	}
	if rows[0].Score != 9 || rows[0].Notes != "revised" {
		t.Fatalf("expected overwritten score and notes, got %v / %q", rows[0].Score, rows[0].Notes)
	}
}

func TestSubmitRatingRejectsRevokedJudgeWithoutWriting(t *testing.T) {
	useCase, store := newRatingFixture()
	store.SetAssignment("judge-1", "event-1", false)

	_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries:      []RatingEntry{{CriterionID: "crit-innovation", Score: 8}},
	})
	if !errors.Is(err, domainerrors.ErrJudgeNotAssigned) {
		t.Fatalf("expected ErrJudgeNotAssigned, got %v", err)
	}

	rows, err := store.ListRatingsBySubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rating persisted for revoked judge, got %d", len(rows))
	}
}

func TestSubmitRatingRejectsUnknownSubmission(t *testing.T) {
	useCase, _ := newRatingFixture()
	_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-missing",
		Entries:      []RatingEntry{{CriterionID: "crit-innovation", Score: 8}},
	})
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestSubmitRatingRejectsDraftSubmission(t *testing.T) {
	useCase, store := newRatingFixture()
	store.SetSubmission(ports.SubmissionProjection{
		SubmissionID: "sub-draft",
		EventID:      "event-1",
		Status:       "draft",
	})

	_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-draft",
		Entries:      []RatingEntry{{CriterionID: "crit-innovation", Score: 8}},
	})
	if !errors.Is(err, domainerrors.ErrSubmissionNotRatable) {
		t.Fatalf("expected ErrSubmissionNotRatable, got %v", err)
	}
}

func TestSubmitRatingRejectsScoreOutOfBounds(t *testing.T) {
	useCase, store := newRatingFixture()

	for _, score := range []float64{-0.5, 10.5} {
		_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
			JudgeID:      "judge-1",
			SubmissionID: "sub-1",
			Entries:      []RatingEntry{{CriterionID: "crit-innovation", Score: score}},
		})
		if !errors.Is(err, domainerrors.ErrScoreOutOfBounds) {
			t.Fatalf("score %v: expected ErrScoreOutOfBounds, got %v", score, err)
		}
	}

	rows, err := store.ListRatingsBySubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rating persisted for out-of-bounds score")
	}
}

func TestSubmitRatingAcceptsBoundaryScores(t *testing.T) {
	useCase, _ := newRatingFixture()
	result, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries: []RatingEntry{
			{CriterionID: "crit-innovation", Score: 0},
			{CriterionID: "crit-technical", Score: 10},
		},
	})
	if err != nil {
		t.Fatalf("expected boundary scores accepted, got %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("expected both boundary rows created, got %d", result.Created)
	}
}

func TestSubmitRatingRejectsForeignCriterion(t *testing.T) {
	useCase, store := newRatingFixture()
	store.SetCriterion(ports.CriterionView{
		CriterionID:  "crit-other-event",
		EventID:      "event-2",
		Name:         "Innovation",
		Weight:       5,
		DisplayOrder: 1,
	})

	_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries:      []RatingEntry{{CriterionID: "crit-other-event", Score: 8}},
	})
	if !errors.Is(err, domainerrors.ErrCriterionMismatch) {
		t.Fatalf("expected ErrCriterionMismatch, got %v", err)
	}
}

func TestSubmitRatingRejectsDuplicateCriterionInBatch(t *testing.T) {
	useCase, store := newRatingFixture()

	_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
		Entries: []RatingEntry{
			{CriterionID: "crit-innovation", Score: 8},
			{CriterionID: "crit-innovation", Score: 9},
		},
	})
	if !errors.Is(err, domainerrors.ErrDuplicateCriterionEntry) {
		t.Fatalf("expected ErrDuplicateCriterionEntry, got %v", err)
	}

	rows, err := store.ListRatingsBySubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected all-or-nothing rejection, got %d rows", len(rows))
	}
}

func TestSubmitRatingRejectsEmptyBatch(t *testing.T) {
	useCase, _ := newRatingFixture()
	_, err := useCase.SubmitRating(context.Background(), SubmitRatingCommand{
		JudgeID:      "judge-1",
		SubmissionID: "sub-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRatingInput) {
		t.Fatalf("expected ErrInvalidRatingInput, got %v", err)
	}
}
