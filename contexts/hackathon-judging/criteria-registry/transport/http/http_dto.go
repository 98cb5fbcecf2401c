package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CriterionItem struct {
	CriterionID  string `json:"criterion_id"`
	EventID      string `json:"event_id"`
	Name         string `json:"name"`
	Weight       int    `json:"weight"`
	DisplayOrder int    `json:"display_order"`
	CreatedAt    string `json:"created_at"`
}

type CriteriaResponse struct {
	EventID string          `json:"event_id"`
	Items   []CriterionItem `json:"items"`
}
