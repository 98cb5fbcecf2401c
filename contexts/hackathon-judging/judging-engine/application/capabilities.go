package application

import (
	"context"
	"strings"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
)

// Capabilities is the single place where assignment state turns into a
// yes/no judging permission. Entry points ask this instead of comparing
// role strings at call sites.
type Capabilities struct {
	Assignments ports.AssignmentReader
}

// CanRateSubmission reports whether the judge holds an active assignment
// for the event. Revoked and missing assignments are indistinguishable to
// callers: both mean no.
func (c Capabilities) CanRateSubmission(ctx context.Context, judgeID string, eventID string) (bool, error) {
	judgeID = strings.TrimSpace(judgeID)
	eventID = strings.TrimSpace(eventID)
	if judgeID == "" || eventID == "" {
		return false, nil
	}
	return c.Assignments.IsActiveAssignment(ctx, judgeID, eventID)
}
