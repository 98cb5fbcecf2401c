package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	criteriaregistry "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry"
	criteriaerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/errors"
	criteriahttp "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/transport/http"
	judgingengine "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine"
	judgingerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	judginghttp "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/transport/http"
	winnerworkflow "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow"
	winnererrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	winnerhttp "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/transport/http"
	_ "github.com/maximally0/maximally-main-website-sub004/internal/platform/httpserver/docs"
	"github.com/maximally0/maximally-main-website-sub004/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	criteria criteriaregistry.Module
	judging  judgingengine.Module
	winners  winnerworkflow.Module
}

func New(
	criteria criteriaregistry.Module,
	judging judgingengine.Module,
	winners winnerworkflow.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		criteria: criteria,
		judging:  judging,
		winners:  winners,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("GET /v1/events/{event_id}/criteria", s.handleListCriteria)

	s.mux.HandleFunc("POST /v1/submissions/{submission_id}/ratings", s.handleSubmitRating)
	s.mux.HandleFunc("GET /v1/submissions/{submission_id}/ratings", s.handleListRatings)
	s.mux.HandleFunc("GET /v1/submissions/{submission_id}/score", s.handleGetScore)
	s.mux.HandleFunc("GET /v1/events/{event_id}/ranking", s.handleGetRanking)
	s.mux.HandleFunc("GET /v1/events/{event_id}/ties", s.handleGetTies)
	s.mux.HandleFunc("GET /v1/judges/{judge_id}/stats", s.handleJudgeStats)

	s.mux.HandleFunc("POST /v1/events/{event_id}/winners/propose", s.handleProposeWinners)
	s.mux.HandleFunc("POST /v1/winners/{winner_id}/approve", s.handleApproveWinner)
	s.mux.HandleFunc("POST /v1/events/{event_id}/winners/announce", s.handleAnnounceWinners)
	s.mux.HandleFunc("GET /v1/events/{event_id}/winners", s.handleListWinners)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCriteria(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("event_id")
	resp, err := s.criteria.Handler.ListCriteriaHandler(r.Context(), eventID)
	if err != nil {
		writeCriteriaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	judgeID := strings.TrimSpace(r.Header.Get("X-Judge-Id"))
	if judgeID == "" {
		writeJudgingError(w, http.StatusUnauthorized, "missing_judge", "X-Judge-Id header is required")
		return
	}

	var req judginghttp.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJudgingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.JudgeID = judgeID

	resp, err := s.judging.Handler.SubmitRatingHandler(r.Context(), r.PathValue("submission_id"), req)
	if err != nil {
		writeJudgingDomainError(w, err)
		return
	}
	metrics.RatingsSubmitted.Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.judging.Handler.ListRatingsHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeJudgingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	resp, err := s.judging.Handler.GetScoreHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeJudgingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRanking(w http.ResponseWriter, r *http.Request) {
	resp, err := s.judging.Handler.GetRankingHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeJudgingDomainError(w, err)
		return
	}
	metrics.RankingsComputed.Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.judging.Handler.GetTiesHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeJudgingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJudgeStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.judging.Handler.GetJudgeStatsHandler(r.Context(), r.PathValue("judge_id"))
	if err != nil {
		writeJudgingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposeWinners(w http.ResponseWriter, r *http.Request) {
	organizerID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if organizerID == "" {
		writeWinnerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req winnerhttp.ProposeWinnersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWinnerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.OrganizerID = organizerID

	resp, err := s.winners.Handler.ProposeWinnersHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		status, code := winnerErrorStatus(err)
		// Rejected batches still report per-item outcomes.
		writeJSON(w, status, winnerhttp.ProposeWinnersErrorResponse{
			Code:     code,
			Message:  err.Error(),
			Outcomes: resp.Outcomes,
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveWinner(w http.ResponseWriter, r *http.Request) {
	organizerID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if organizerID == "" {
		writeWinnerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.winners.Handler.ApproveWinnerHandler(
		r.Context(),
		r.PathValue("winner_id"),
		winnerhttp.ApproveWinnerRequest{OrganizerID: organizerID},
	)
	if err != nil {
		writeWinnerDomainError(w, err)
		return
	}
	metrics.WinnersApproved.Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnnounceWinners(w http.ResponseWriter, r *http.Request) {
	organizerID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if organizerID == "" {
		writeWinnerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.winners.Handler.AnnounceWinnersHandler(
		r.Context(),
		r.PathValue("event_id"),
		winnerhttp.AnnounceWinnersRequest{OrganizerID: organizerID},
	)
	if err != nil {
		writeWinnerDomainError(w, err)
		return
	}
	metrics.WinnersAnnounced.Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListWinners(w http.ResponseWriter, r *http.Request) {
	includeUnannounced := strings.TrimSpace(r.Header.Get("X-User-Id")) != ""
	resp, err := s.winners.Handler.ListWinnersHandler(r.Context(), r.PathValue("event_id"), includeUnannounced)
	if err != nil {
		writeWinnerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCriteriaDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, criteriaerrors.ErrInvalidEventID):
		writeCriteriaError(w, http.StatusUnprocessableEntity, "invalid_event_id", err.Error())
	case errors.Is(err, criteriaerrors.ErrCriterionNotFound):
		writeCriteriaError(w, http.StatusNotFound, "criterion_not_found", err.Error())
	default:
		writeCriteriaError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeJudgingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, judgingerrors.ErrJudgeNotAssigned):
		writeJudgingError(w, http.StatusForbidden, "judge_not_assigned", err.Error())
	case errors.Is(err, judgingerrors.ErrSubmissionNotFound),
		errors.Is(err, judgingerrors.ErrRatingNotFound):
		writeJudgingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, judgingerrors.ErrSubmissionNotRatable):
		writeJudgingError(w, http.StatusConflict, "submission_not_ratable", err.Error())
	case errors.Is(err, judgingerrors.ErrScoreOutOfBounds):
		writeJudgingError(w, http.StatusUnprocessableEntity, "score_out_of_bounds", err.Error())
	case errors.Is(err, judgingerrors.ErrCriterionMismatch):
		writeJudgingError(w, http.StatusUnprocessableEntity, "criterion_mismatch", err.Error())
	case errors.Is(err, judgingerrors.ErrDuplicateCriterionEntry):
		writeJudgingError(w, http.StatusUnprocessableEntity, "duplicate_criterion", err.Error())
	case errors.Is(err, judgingerrors.ErrInvalidRatingInput),
		errors.Is(err, judgingerrors.ErrInvalidEventID),
		errors.Is(err, judgingerrors.ErrInvalidJudgeID):
		writeJudgingError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	default:
		writeJudgingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWinnerDomainError(w http.ResponseWriter, err error) {
	status, code := winnerErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeWinnerError(w, status, code, message)
}

func winnerErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, winnererrors.ErrNotEventOrganizer):
		return http.StatusForbidden, "not_event_organizer"
	case errors.Is(err, winnererrors.ErrEventNotFound),
		errors.Is(err, winnererrors.ErrWinnerNotFound),
		errors.Is(err, winnererrors.ErrSubmissionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, winnererrors.ErrJudgingWindowOpen):
		return http.StatusConflict, "judging_window_open"
	case errors.Is(err, winnererrors.ErrWinnerNotPending):
		return http.StatusConflict, "winner_not_pending"
	case errors.Is(err, winnererrors.ErrPrizePositionTaken):
		return http.StatusConflict, "prize_position_taken"
	case errors.Is(err, winnererrors.ErrDuplicatePrizePosition):
		return http.StatusUnprocessableEntity, "duplicate_prize_position"
	case errors.Is(err, winnererrors.ErrSubmissionNotEligible):
		return http.StatusUnprocessableEntity, "submission_not_eligible"
	case errors.Is(err, winnererrors.ErrInvalidWinnerInput):
		return http.StatusUnprocessableEntity, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeCriteriaError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, criteriahttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJudgingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, judginghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeWinnerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, winnerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
