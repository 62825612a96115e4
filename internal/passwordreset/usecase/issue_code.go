package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
)

type IssueCodeInput struct {
	Email string `validate:"required,email"`
	Role  string `validate:"required,role"`
}

type IssueCodeOutput struct {
	EmailSent bool
	ExpiresIn int
}

func (s *Usecase) IssueCode(ctx context.Context, in IssueCodeInput) (out *IssueCodeOutput, err error) {
	ctx, span := s.startSpan(ctx, "IssueCode")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	if in.Email == "" || in.Role == "" {
		return nil, goerror.NewInvalidInputMsg("Email and role are required")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, goerror.NewInvalidInputMsg("Invalid role. Must be student or teacher")
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claimed, err := s.checkCooldown(ctx, role, in.Email)
	if err != nil {
		return nil, err
	}
	if claimed {
		defer func() {
			if err != nil {
				s.releaseCooldown(ctx, role, in.Email)
			}
		}()
	}

	acc, err := s.repoDB.GetAccount(ctx, role, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness(fmt.Sprintf("No %s account found with this email address", role), goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account", "email", in.Email, "role", role.String(), "error", err)
		return nil, goerror.NewServerMsg(err, "Database error occurred")
	}

	if !acc.Active() {
		slog.WarnContext(ctx, "password reset requested for inactive account", "email", in.Email, "role", role.String(), "status", acc.Status)
		return nil, goerror.NewBusiness("Account is not active. Please contact administration", goerror.CodeForbidden)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.codeHash.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	tok := entity.ResetToken{
		ID:        s.uuid.Generate(),
		Role:      role,
		Email:     in.Email,
		CodeHash:  string(codeHash),
		ExpiresAt: now.Add(entity.CodeTTL),
		CreatedAt: now,
	}
	if err := s.repoDB.CreateToken(ctx, tok); err != nil {
		slog.ErrorContext(ctx, "failed to repo create reset token", "email", in.Email, "role", role.String(), "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to generate OTP. Please try again")
	}
	s.count(ctx, s.codesIssued, role)

	out = &IssueCodeOutput{EmailSent: true, ExpiresIn: int(entity.CodeTTL.Seconds())}
	if err := s.repoMail.SendCode(ctx, entity.CodeMail{Account: *acc, Role: role, Code: code, TTL: entity.CodeTTL}); err != nil {
		slog.WarnContext(ctx, "failed to deliver otp email", "email", in.Email, "token_id", tok.ID, "error", err)
		s.count(ctx, s.emailFailures, role)
		out.EmailSent = false
	}

	return out, nil
}

func cooldownKey(role entity.Role, email string) string {
	return "cooldown:" + role.String() + ":" + email
}

// checkCooldown allows one issuance per identity per cooldown window and
// reports whether it claimed the window. A broken throttle backend never
// blocks issuance.
func (s *Usecase) checkCooldown(ctx context.Context, role entity.Role, email string) (bool, error) {
	if s.opts.Cooldown <= 0 {
		return false, nil
	}

	ok, retryAfter, err := s.throttle.Acquire(ctx, cooldownKey(role, email), s.opts.Cooldown)
	if err != nil {
		slog.WarnContext(ctx, "failed to check issuance cooldown", "email", email, "role", role.String(), "error", err)
		return false, nil
	}
	if ok {
		return true, nil
	}

	secs := int(math.Ceil(retryAfter.Seconds()))
	ge, _ := goerror.NewBusiness("Please wait before requesting another code", goerror.CodeTooManyRequest).(*goerror.Error)
	return false, ge.WithField("retryAfter", strconv.Itoa(secs))
}

// releaseCooldown gives the window back when no code was issued.
func (s *Usecase) releaseCooldown(ctx context.Context, role entity.Role, email string) {
	if err := s.throttle.Forget(context.WithoutCancel(ctx), cooldownKey(role, email)); err != nil {
		slog.WarnContext(ctx, "failed to release issuance cooldown", "email", email, "role", role.String(), "error", err)
	}
}
