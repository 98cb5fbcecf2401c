package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	criteriaregistry "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry"
	judgingengine "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine"
	judgingports "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
	winnerworkflow "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow"
	winnerports "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

func newTestServer() *Server {
	criteria := criteriaregistry.NewInMemoryModule(nil, nil)
	judging := judgingengine.NewInMemoryModule(nil, nil)
	winners := winnerworkflow.NewInMemoryModule(nil, nil)

	judging.Store.SetSubmission(judgingports.SubmissionProjection{
		SubmissionID: "sub-1",
		EventID:      "event-1",
		TeamRef:      "team-alpha",
		Status:       judgingports.SubmissionStatusSubmitted,
		SubmittedAt:  time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	})
	judging.Store.SetAssignment("judge-1", "event-1", true)
	judging.Store.SetCriterion(judgingports.CriterionView{
		CriterionID:  "crit-innovation",
		EventID:      "event-1",
		Name:         "Innovation",
		Weight:       5,
		DisplayOrder: 1,
	})

	winners.Store.SetEvent(winnerports.EventProjection{
		EventID:       "event-1",
		OrganizerID:   "org-1",
		JudgingWindow: winnerports.JudgingWindowClosed,
	})
	winners.Store.SetSubmission(winnerports.SubmissionProjection{
		SubmissionID: "sub-1",
		EventID:      "event-1",
		TeamRef:      "team-alpha",
		Status:       winnerports.SubmissionStatusSubmitted,
	})

	return New(criteria, judging, winners, nil, ":0")
}

func TestListCriteriaSeedsDefaults(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/events/event-1/criteria", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Items []struct {
			Name   string `json:"name"`
			Weight int    `json:"weight"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Items) != 5 || resp.Items[0].Name != "Innovation" || resp.Items[0].Weight != 5 {
		t.Fatalf("expected default criteria set, got %+v", resp.Items)
	}
}

func TestSubmitRatingRequiresJudgeHeader(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"entries":[{"criterion_id":"crit-innovation","score":8}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/submissions/sub-1/ratings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitRatingUnassignedJudgeIsForbidden(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"entries":[{"criterion_id":"crit-innovation","score":8}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/submissions/sub-1/ratings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Judge-Id", "judge-unassigned")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitRatingThenScoreRoundTrip(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"entries":[{"criterion_id":"crit-innovation","score":8.5}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/submissions/sub-1/ratings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Judge-Id", "judge-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	scoreReq := httptest.NewRequest(http.MethodGet, "/v1/submissions/sub-1/score", nil)
	scoreRR := httptest.NewRecorder()
	server.mux.ServeHTTP(scoreRR, scoreReq)
	if scoreRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", scoreRR.Code, scoreRR.Body.String())
	}

	var score struct {
		Rated   bool     `json:"rated"`
		Overall *float64 `json:"overall"`
	}
	if err := json.Unmarshal(scoreRR.Body.Bytes(), &score); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !score.Rated || score.Overall == nil || *score.Overall != 8.5 {
		t.Fatalf("expected overall 8.5, got %+v", score)
	}
}

func TestSubmitRatingOutOfBoundsIsUnprocessable(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"entries":[{"criterion_id":"crit-innovation","score":11}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/submissions/sub-1/ratings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Judge-Id", "judge-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetRankingUnknownEventIsEmpty(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/events/event-ghost/ranking", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Items []any `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty ranking, got %d rows", len(resp.Items))
	}
}

func TestProposeWinnersRequiresOrganizerHeader(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"proposals":[{"submission_id":"sub-1","prize_position":1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/events/event-1/winners/propose", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProposeWinnersNonOrganizerIsForbidden(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"proposals":[{"submission_id":"sub-1","prize_position":1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/events/event-1/winners/propose", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "intruder")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestWinnerLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"proposals":[{"submission_id":"sub-1","prize_position":1,"prize_amount":1000}]}`)
	proposeReq := httptest.NewRequest(http.MethodPost, "/v1/events/event-1/winners/propose", bytes.NewReader(body))
	proposeReq.Header.Set("Content-Type", "application/json")
	proposeReq.Header.Set("X-User-Id", "org-1")

	proposeRR := httptest.NewRecorder()
	server.mux.ServeHTTP(proposeRR, proposeReq)
	if proposeRR.Code != http.StatusOK {
		t.Fatalf("propose: expected 200, got %d body=%s", proposeRR.Code, proposeRR.Body.String())
	}

	var proposed struct {
		Winners []struct {
			WinnerID string `json:"winner_id"`
			Status   string `json:"status"`
		} `json:"winners"`
	}
	if err := json.Unmarshal(proposeRR.Body.Bytes(), &proposed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(proposed.Winners) != 1 || proposed.Winners[0].Status != "pending" {
		t.Fatalf("expected one pending winner, got %+v", proposed.Winners)
	}

	approveReq := httptest.NewRequest(http.MethodPost, "/v1/winners/"+proposed.Winners[0].WinnerID+"/approve", nil)
	approveReq.Header.Set("X-User-Id", "org-1")
	approveRR := httptest.NewRecorder()
	server.mux.ServeHTTP(approveRR, approveReq)
	if approveRR.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d body=%s", approveRR.Code, approveRR.Body.String())
	}

	announceReq := httptest.NewRequest(http.MethodPost, "/v1/events/event-1/winners/announce", nil)
	announceReq.Header.Set("X-User-Id", "org-1")
	announceRR := httptest.NewRecorder()
	server.mux.ServeHTTP(announceRR, announceReq)
	if announceRR.Code != http.StatusOK {
		t.Fatalf("announce: expected 200, got %d body=%s", announceRR.Code, announceRR.Body.String())
	}

	// Public view sees the announced winner without the organizer header.
	listReq := httptest.NewRequest(http.MethodGet, "/v1/events/event-1/winners", nil)
	listRR := httptest.NewRecorder()
	server.mux.ServeHTTP(listRR, listReq)
	if listRR.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d body=%s", listRR.Code, listRR.Body.String())
	}

	var listed struct {
		Winners []struct {
			Status string `json:"status"`
		} `json:"winners"`
	}
	if err := json.Unmarshal(listRR.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(listed.Winners) != 1 || listed.Winners[0].Status != "announced" {
		t.Fatalf("expected one announced winner, got %+v", listed.Winners)
	}
}

func TestPublicWinnerListHidesPendingRows(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"proposals":[{"submission_id":"sub-1","prize_position":1}]}`)
	proposeReq := httptest.NewRequest(http.MethodPost, "/v1/events/event-1/winners/propose", bytes.NewReader(body))
	proposeReq.Header.Set("Content-Type", "application/json")
	proposeReq.Header.Set("X-User-Id", "org-1")
	proposeRR := httptest.NewRecorder()
	server.mux.ServeHTTP(proposeRR, proposeReq)
	if proposeRR.Code != http.StatusOK {
		t.Fatalf("propose: expected 200, got %d body=%s", proposeRR.Code, proposeRR.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/events/event-1/winners", nil)
	listRR := httptest.NewRecorder()
	server.mux.ServeHTTP(listRR, listReq)

	var listed struct {
		Winners []any `json:"winners"`
	}
	if err := json.Unmarshal(listRR.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(listed.Winners) != 0 {
		t.Fatalf("expected pending winners hidden from public view, got %d", len(listed.Winners))
	}
}

func TestHealthz(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}
