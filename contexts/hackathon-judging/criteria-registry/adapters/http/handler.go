package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/application"
	httptransport "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/transport/http"
)

type Handler struct {
	Criteria application.Service
	Logger   *slog.Logger
}

func (h Handler) ListCriteriaHandler(ctx context.Context, eventID string) (httptransport.CriteriaResponse, error) {
	criteria, err := h.Criteria.ListCriteria(ctx, eventID)
	if err != nil {
		return httptransport.CriteriaResponse{}, err
	}
	items := make([]httptransport.CriterionItem, 0, len(criteria))
	for _, row := range criteria {
		items = append(items, httptransport.CriterionItem{
			CriterionID:  row.CriterionID,
			EventID:      row.EventID,
			Name:         row.Name,
			Weight:       row.Weight,
			DisplayOrder: row.DisplayOrder,
			CreatedAt:    row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.CriteriaResponse{
		EventID: eventID,
		Items:   items,
	}, nil
}
