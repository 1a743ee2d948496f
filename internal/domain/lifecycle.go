package domain

import "slices"

// Phase is a step of the payment lifecycle driven by this client. It is never
// persisted; each transition is reported to the order record as it happens.
type Phase string

const (
	PhaseCreated              Phase = "CREATED"
	PhaseAwaitingConfirmation Phase = "AWAITING_CONFIRMATION"
	PhasePaid                 Phase = "PAID"
	PhaseRejected             Phase = "REJECTED"
	PhaseErrored              Phase = "ERRORED"
	PhaseRefundRequested      Phase = "REFUND_REQUESTED"
	PhaseRefunded             Phase = "REFUNDED"
	PhaseRefundDenied         Phase = "REFUND_DENIED"
)

type Lifecycle struct {
	phase Phase
}

func NewLifecycle(start Phase) *Lifecycle {
	return &Lifecycle{phase: start}
}

func (l *Lifecycle) Phase() Phase {
	return l.phase
}

// Advance moves to target if the transition is allowed.
func (l *Lifecycle) Advance(target Phase) error {
	if err := canTransition(l.phase, target); err != nil {
		return err
	}
	l.phase = target
	return nil
}

// IsTerminal reports phases no further call can leave.
func (l *Lifecycle) IsTerminal() bool {
	switch l.phase {
	case PhaseRejected, PhaseErrored, PhaseRefunded, PhaseRefundDenied:
		return true
	default:
		return false
	}
}

func canTransition(from, to Phase) error {
	switch from {
	case PhaseCreated:
		return allow(from, to, PhaseAwaitingConfirmation, PhaseErrored)
	case PhaseAwaitingConfirmation:
		return allow(from, to, PhasePaid, PhaseRejected, PhaseErrored)
	case PhasePaid:
		return allow(from, to, PhaseRefundRequested)
	case PhaseRefundRequested:
		return allow(from, to, PhaseRefunded, PhaseRefundDenied)
	}
	return NewInvalidTransitionError(from, to)
}

func allow(from, to Phase, allowed ...Phase) error {
	if slices.Contains(allowed, to) {
		return nil
	}
	return NewInvalidTransitionError(from, to)
}
