package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	ratings map[string]entities.Rating

	submissions map[string]ports.SubmissionProjection
	assignments map[string]bool
	criteria    map[string]ports.CriterionView
}

func NewStore(seed []entities.Rating) *Store {
	ratings := make(map[string]entities.Rating, len(seed))
	for _, rating := range seed {
		ratings[rating.RatingID] = rating
	}
	return &Store{
		ratings:     ratings,
		submissions: make(map[string]ports.SubmissionProjection),
		assignments: make(map[string]bool),
		criteria:    make(map[string]ports.CriterionView),
	}
}

func (s *Store) SetSubmission(submission ports.SubmissionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[strings.TrimSpace(submission.SubmissionID)] = ports.SubmissionProjection{
		SubmissionID: strings.TrimSpace(submission.SubmissionID),
		EventID:      strings.TrimSpace(submission.EventID),
		TeamRef:      strings.TrimSpace(submission.TeamRef),
		Status:       strings.TrimSpace(submission.Status),
		SubmittedAt:  submission.SubmittedAt.UTC(),
	}
}

func (s *Store) SetAssignment(judgeID string, eventID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignmentKey(judgeID, eventID)] = active
}

func (s *Store) SetCriterion(criterion ports.CriterionView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria[strings.TrimSpace(criterion.CriterionID)] = criterion
}

func (s *Store) SaveRating(_ context.Context, rating entities.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[strings.TrimSpace(rating.RatingID)] = rating
	return nil
}

func (s *Store) GetRatingByIdentity(
	_ context.Context,
	submissionID string,
	judgeID string,
	criterionID string,
) (entities.Rating, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submissionID = strings.TrimSpace(submissionID)
	judgeID = strings.TrimSpace(judgeID)
	criterionID = strings.TrimSpace(criterionID)

	for _, rating := range s.ratings {
		if rating.SubmissionID != submissionID || rating.JudgeID != judgeID {
			continue
		}
		if rating.CriterionID != criterionID {
			continue
		}
		return rating, true, nil
	}
	return entities.Rating{}, false, nil
}

func (s *Store) ListRatingsBySubmission(_ context.Context, submissionID string) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Rating, 0)
	for _, rating := range s.ratings {
		if rating.SubmissionID == strings.TrimSpace(submissionID) {
			items = append(items, rating)
		}
	}
	sortRatingsByCreation(items)
	return items, nil
}

func (s *Store) ListRatingsByEvent(_ context.Context, eventID string) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Rating, 0)
	for _, rating := range s.ratings {
		if rating.EventID == strings.TrimSpace(eventID) {
			items = append(items, rating)
		}
	}
	sortRatingsByCreation(items)
	return items, nil
}

func (s *Store) CountDistinctRatedSubmissions(_ context.Context, judgeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	distinct := make(map[string]struct{})
	for _, rating := range s.ratings {
		if rating.JudgeID == strings.TrimSpace(judgeID) {
			distinct[rating.SubmissionID] = struct{}{}
		}
	}
	return len(distinct), nil
}

func (s *Store) CountRatingsByJudge(_ context.Context, judgeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rating := range s.ratings {
		if rating.JudgeID == strings.TrimSpace(judgeID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (ports.SubmissionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.submissions[strings.TrimSpace(submissionID)]
	if !ok {
		return ports.SubmissionProjection{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListSubmittedByEvent(_ context.Context, eventID string) ([]ports.SubmissionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.SubmissionProjection, 0)
	for _, submission := range s.submissions {
		if submission.EventID != strings.TrimSpace(eventID) {
			continue
		}
		if !strings.EqualFold(submission.Status, ports.SubmissionStatusSubmitted) {
			continue
		}
		items = append(items, submission)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmissionID < items[j].SubmissionID
	})
	return items, nil
}

func (s *Store) IsActiveAssignment(_ context.Context, judgeID string, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments[assignmentKey(judgeID, eventID)], nil
}

func (s *Store) ListCriteria(_ context.Context, eventID string) ([]ports.CriterionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.CriterionView, 0)
	for _, criterion := range s.criteria {
		if criterion.EventID == strings.TrimSpace(eventID) {
			items = append(items, criterion)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func assignmentKey(judgeID string, eventID string) string {
	return strings.TrimSpace(judgeID) + "|" + strings.TrimSpace(eventID)
}

func sortRatingsByCreation(items []entities.Rating) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].RatingID < items[j].RatingID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
