package application

import (
	"context"
	"strings"

	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

// Capabilities centralizes organizer ownership checks so every winner
// command enforces the same rule.
type Capabilities struct {
	Events ports.EventReader
}

// CanProposeWinners loads the event and verifies the caller owns it. The
// projection is returned so callers do not fetch the event twice.
func (c Capabilities) CanProposeWinners(ctx context.Context, userID string, eventID string) (ports.EventProjection, error) {
	event, err := c.Events.GetEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return ports.EventProjection{}, err
	}
	if strings.TrimSpace(userID) == "" || event.OrganizerID != strings.TrimSpace(userID) {
		return ports.EventProjection{}, domainerrors.ErrNotEventOrganizer
	}
	return event, nil
}
