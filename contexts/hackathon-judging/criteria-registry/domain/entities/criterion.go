package entities

import "time"

// Criterion is a named scoring dimension. Weight is the tie-break priority
// (higher compares first); DisplayOrder drives presentation order.
type Criterion struct {
	CriterionID  string
	EventID      string
	Name         string
	Weight       int
	DisplayOrder int
	CreatedAt    time.Time
}

// DefaultCriterion is one row of the fixed seed set applied to events that
// have no criteria stored yet.
type DefaultCriterion struct {
	Name   string
	Weight int
}

// DefaultSet returns the seed criteria in display order. Weight doubles as
// the tie-break priority, so the set is weight-descending by construction.
func DefaultSet() []DefaultCriterion {
	return []DefaultCriterion{
		{Name: "Innovation", Weight: 5},
		{Name: "Technical", Weight: 4},
		{Name: "Impact", Weight: 3},
		{Name: "Design", Weight: 2},
		{Name: "Presentation", Weight: 1},
	}
}
