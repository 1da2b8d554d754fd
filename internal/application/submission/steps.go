package submission

import (
	"errors"
	"fmt"
)

// Step is a stage of the multi-step submission form.
type Step string

const (
	StepAuth     Step = "auth"
	StepDetails  Step = "details"
	StepPitch    Step = "pitch"
	StepPlan     Step = "plan"
	StepReceived Step = "received"
	StepPayment  Step = "payment"
)

var ErrInvalidStep = errors.New("invalid step transition")

var allowedSteps = map[Step][]Step{
	StepAuth:     {StepDetails},
	StepDetails:  {StepPitch},
	StepPitch:    {StepPlan, StepDetails},
	StepPlan:     {StepReceived, StepPayment, StepPitch},
	StepReceived: {StepDetails},
	StepPayment:  {StepReceived},
}

// CanTransition reports whether the form may move from one step to another.
func CanTransition(from, to Step) bool {
	for _, s := range allowedSteps[from] {
		if s == to {
			return true
		}
	}
	return false
}

// FirstStep is where a caller starts: anonymous callers must sign in first.
func FirstStep(authenticated bool) Step {
	if authenticated {
		return StepDetails
	}
	return StepAuth
}

// Workflow tracks the current step of one submission session.
type Workflow struct {
	Current Step `json:"current"`
}

func NewWorkflow(authenticated bool) *Workflow {
	return &Workflow{Current: FirstStep(authenticated)}
}

// Advance moves to the next step, or fails leaving the current step unchanged.
func (w *Workflow) Advance(to Step) error {
	if !CanTransition(w.Current, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStep, w.Current, to)
	}
	w.Current = to
	return nil
}
