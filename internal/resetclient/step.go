package resetclient

import (
	"errors"
	"time"
)

// Step is a stage of the reset flow.
type Step int

const (
	StepRequest Step = iota
	StepVerify
	StepSetSecret
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepRequest:
		return "REQUEST"
	case StepVerify:
		return "VERIFY"
	case StepSetSecret:
		return "SET_SECRET"
	case StepDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

const (
	ResendCooldown    = 60 * time.Second
	MinPasswordLength = 6
)

// State is everything the flow remembers between events.
type State struct {
	Step       Step
	Email      string
	Role       string
	ResetToken string

	// Err is the failure of the last event, nil after a success.
	Err error
	// Notice is the success message of the last event.
	Notice    string
	EmailSent bool
	// ClearCode asks the view to empty the code fields.
	ClearCode bool
	// IssuedAt starts the resend cooldown; zero when no timer runs.
	IssuedAt time.Time
}

// ResendIn is the remaining resend cooldown at now.
func (s State) ResendIn(now time.Time) time.Duration {
	if s.Step != StepVerify || s.IssuedAt.IsZero() {
		return 0
	}
	left := s.IssuedAt.Add(ResendCooldown).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (s State) CanResend(now time.Time) bool {
	return s.Step == StepVerify && s.ResendIn(now) == 0
}

type Event interface{ event() }

type IssueSucceeded struct {
	Email     string
	Message   string
	EmailSent bool
	At        time.Time
}

type IssueFailed struct{ Err error }

type VerifySucceeded struct {
	ResetToken string
	Message    string
}

type VerifyFailed struct{ Err error }

type CommitSucceeded struct{ Message string }

type CommitFailed struct{ Err error }

type ChangeIdentity struct{}

func (IssueSucceeded) event()  {}
func (IssueFailed) event()     {}
func (VerifySucceeded) event() {}
func (VerifyFailed) event()    {}
func (CommitSucceeded) event() {}
func (CommitFailed) event()    {}
func (ChangeIdentity) event()  {}

// Transition returns the state after e. Events that do not apply to the
// current step leave s unchanged.
func Transition(s State, e Event) State {
	next := s
	next.Err = nil
	next.Notice = ""
	next.ClearCode = false

	switch ev := e.(type) {
	case IssueSucceeded:
		if s.Step != StepRequest && s.Step != StepVerify {
			return s
		}
		next.Step = StepVerify
		next.Email = ev.Email
		next.Notice = ev.Message
		next.EmailSent = ev.EmailSent
		next.IssuedAt = ev.At
		next.ResetToken = ""

	case IssueFailed:
		if s.Step != StepRequest && s.Step != StepVerify {
			return s
		}
		next.Err = ev.Err

	case VerifySucceeded:
		if s.Step != StepVerify {
			return s
		}
		next.Step = StepSetSecret
		next.ResetToken = ev.ResetToken
		next.Notice = ev.Message
		next.IssuedAt = time.Time{}

	case VerifyFailed:
		if s.Step != StepVerify {
			return s
		}
		next.Err = ev.Err
		next.ClearCode = errors.Is(ev.Err, ErrInvalidCode)

	case CommitSucceeded:
		if s.Step != StepSetSecret {
			return s
		}
		next.Step = StepDone
		next.Notice = ev.Message

	case CommitFailed:
		if s.Step != StepSetSecret {
			return s
		}
		next.Err = ev.Err

	case ChangeIdentity:
		if s.Step != StepVerify {
			return s
		}
		next.Step = StepRequest
		next.IssuedAt = time.Time{}
		next.ResetToken = ""
		next.EmailSent = false
		next.ClearCode = true

	default:
		return s
	}

	return next
}
