package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/otp"
)

type VerifyCodeInput struct {
	Email string
	Code  string
	Role  string
}

type VerifyCodeOutput struct {
	ResetToken string
}

func (s *Usecase) VerifyCode(ctx context.Context, in VerifyCodeInput) (*VerifyCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyCode")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.Code = strings.TrimSpace(in.Code)

	if in.Email == "" || in.Code == "" || in.Role == "" {
		return nil, goerror.NewInvalidInputMsg("Email, OTP, and role are required")
	}
	if !otp.Valid(in.Code) {
		return nil, goerror.NewInvalidInputMsg("Invalid OTP format. Must be 6 digits")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, goerror.NewInvalidInputMsg("Invalid role. Must be student or teacher")
	}

	codeHash, err := s.codeHash.Hash(in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	tok, err := s.repoDB.GetLatestUnusedToken(ctx, role, in.Email, string(codeHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp code did not match any unused token", "email", in.Email, "role", role.String())
		return nil, goerror.NewBusiness("Invalid OTP code. Please try again", goerror.CodeRejected)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest unused token", "email", in.Email, "role", role.String(), "error", err)
		return nil, goerror.NewServerMsg(err, "Database error occurred")
	}

	now := s.clock.Now()
	if tok.Expired(now) {
		return nil, goerror.NewBusiness("OTP has expired. Please request a new one", goerror.CodeExpired)
	}

	if err := s.repoDB.MarkTokenVerified(ctx, tok.ID, now); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark token verified", "token_id", tok.ID, "error", err)
		return nil, goerror.NewServerMsg(err, "Database error occurred")
	}

	return &VerifyCodeOutput{ResetToken: tok.ID}, nil
}
