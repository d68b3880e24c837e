package leave

import leaveerrors "go-hrsuit/internal/leave/errors"

type Transition string

const (
	// TransitionApply puts a new leave into its initial state.
	TransitionApply     Transition = "apply"
	TransitionApprove   Transition = "approve"
	TransitionUnapprove Transition = "unapprove"
	TransitionCancel    Transition = "cancel"
	TransitionUncancel  Transition = "uncancel"
	TransitionReject    Transition = "reject"
	TransitionUnreject  Transition = "unreject"
)

type transitionRule struct {
	allowed func(l *Leave) bool
	to      Status
}

func always(*Leave) bool { return true }

var transitions = map[Transition]transitionRule{
	TransitionApply:     {allowed: func(l *Leave) bool { return l.Status == "" }, to: StatusPending},
	TransitionApprove:   {allowed: func(l *Leave) bool { return !l.IsApproved }, to: StatusApproved},
	TransitionUnapprove: {allowed: func(l *Leave) bool { return l.IsApproved }, to: StatusPending},
	TransitionCancel:    {allowed: always, to: StatusCancelled},
	TransitionUncancel:  {allowed: always, to: StatusPending},
	TransitionReject:    {allowed: always, to: StatusRejected},
	TransitionUnreject:  {allowed: always, to: StatusPending},
}

// apply moves l through t. changed is false when the transition's
// precondition does not hold; l is left untouched in that case.
func (l *Leave) apply(t Transition) (changed bool, err error) {
	rule, ok := transitions[t]
	if !ok {
		return false, leaveerrors.ErrUnknownTransition
	}
	if !rule.allowed(l) {
		return false, nil
	}
	l.Status = rule.to
	l.IsApproved = rule.to == StatusApproved
	return true, nil
}
