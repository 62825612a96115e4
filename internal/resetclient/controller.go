package resetclient

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mabinihs/portal/internal/pkg/clock"
)

type api interface {
	SendOTP(ctx context.Context, email, role string) (*SendOTPResult, error)
	VerifyOTP(ctx context.Context, email, code, role string) (string, error)
	ResetPassword(ctx context.Context, email, resetToken, newPassword, role string) error
}

// ErrResendCooling is returned by Resend while the cooldown runs.
var ErrResendCooling = errors.New("resend is not available yet")

// Controller drives one reset flow for a fixed role. It is not safe for
// concurrent use.
type Controller struct {
	api   api
	clock clock.Clocker
	state State
	code  *CodeInput
}

func NewController(api api, clk clock.Clocker, role string) *Controller {
	return &Controller{
		api:   api,
		clock: clk,
		state: State{Step: StepRequest, Role: role},
		code:  NewCodeInput(6),
	}
}

func (c *Controller) State() State     { return c.state }
func (c *Controller) Code() *CodeInput { return c.code }

func (c *Controller) ResendIn() time.Duration {
	return c.state.ResendIn(c.clock.Now())
}

func (c *Controller) apply(e Event) error {
	c.state = Transition(c.state, e)
	if c.state.ClearCode {
		c.code.Clear()
	}
	return c.state.Err
}

// Request issues a code for email and moves to the verify step.
func (c *Controller) Request(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return c.apply(IssueFailed{Err: localError(ErrValidation, "Email and role are required")})
	}

	return c.issue(ctx, email)
}

// Resend issues a fresh code for the current identity.
func (c *Controller) Resend(ctx context.Context) error {
	if c.state.Step != StepVerify {
		return ErrResendCooling
	}
	if c.ResendIn() > 0 {
		return ErrResendCooling
	}

	return c.issue(ctx, c.state.Email)
}

func (c *Controller) issue(ctx context.Context, email string) error {
	res, err := c.api.SendOTP(ctx, email, c.state.Role)
	if err != nil {
		return c.apply(IssueFailed{Err: err})
	}

	return c.apply(IssueSucceeded{
		Email:     email,
		Message:   res.Message,
		EmailSent: res.EmailSent,
		At:        c.clock.Now(),
	})
}

// Verify submits the composed code.
func (c *Controller) Verify(ctx context.Context) error {
	code, ok := c.code.Code()
	if !ok {
		return c.apply(VerifyFailed{Err: localError(ErrValidation, "Please enter all 6 digits")})
	}

	token, err := c.api.VerifyOTP(ctx, c.state.Email, code, c.state.Role)
	if err != nil {
		return c.apply(VerifyFailed{Err: err})
	}

	return c.apply(VerifySucceeded{ResetToken: token, Message: "OTP verified successfully!"})
}

// SetSecret checks the two entries locally and commits the new password.
func (c *Controller) SetSecret(ctx context.Context, password, confirm string) error {
	if password != confirm {
		return c.apply(CommitFailed{Err: localError(ErrValidation, "Passwords do not match")})
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return c.apply(CommitFailed{Err: localError(ErrValidation, "Password must be at least 6 characters")})
	}

	if err := c.api.ResetPassword(ctx, c.state.Email, c.state.ResetToken, password, c.state.Role); err != nil {
		return c.apply(CommitFailed{Err: err})
	}

	return c.apply(CommitSucceeded{Message: "Password reset successfully! You can now login with your new password"})
}

// ChangeIdentity returns to the request step and drops the resend timer.
func (c *Controller) ChangeIdentity() {
	_ = c.apply(ChangeIdentity{})
}
