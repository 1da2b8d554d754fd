package moderation

import "vibemarket-backend/internal/domain"

// Action is an admin decision on a pending vibe.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// transitions is the whole lifecycle: pending is the only non-terminal state.
var transitions = map[domain.Status]map[Action]domain.Status{
	domain.StatusPending: {
		ActionApprove: domain.StatusApproved,
		ActionReject:  domain.StatusRejected,
	},
}

// Next returns the state reached from `from` by applying a. ok is false when
// the transition is not allowed (any action on a terminal state).
func Next(from domain.Status, a Action) (domain.Status, bool) {
	to, ok := transitions[from][a]
	return to, ok
}

func (a Action) eventType() string {
	if a == ActionApprove {
		return domain.EventApproved
	}
	return domain.EventRejected
}
