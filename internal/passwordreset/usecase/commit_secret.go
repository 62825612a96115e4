package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/uid"
)

// minPasswordLength counts characters, not bytes.
const minPasswordLength = 6

type CommitSecretInput struct {
	Email       string
	ResetToken  string
	NewPassword string `validate:"password"`
	Role        string
}

func (s *Usecase) CommitSecret(ctx context.Context, in CommitSecretInput) error {
	ctx, span := s.startSpan(ctx, "CommitSecret")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.ResetToken = strings.TrimSpace(in.ResetToken)

	if in.Email == "" || in.ResetToken == "" || in.NewPassword == "" || in.Role == "" {
		return goerror.NewInvalidInputMsg("All fields are required")
	}
	if utf8.RuneCountInString(in.NewPassword) < minPasswordLength {
		return goerror.NewInvalidInputMsg("Password must be at least 6 characters long")
	}
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return goerror.NewInvalidInputMsg("Invalid role. Must be student or teacher")
	}

	invalidToken := goerror.NewBusiness("Invalid or expired reset token", goerror.CodeRejected)
	if !uid.IsUUID(in.ResetToken) {
		return invalidToken
	}

	tok, err := s.repoDB.GetUnusedToken(ctx, in.ResetToken, role, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "reset token not found or already used", "token_id", in.ResetToken, "email", in.Email)
		return invalidToken
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get unused token", "token_id", in.ResetToken, "error", err)
		return goerror.NewServerMsg(err, "Database error occurred")
	}

	if !tok.Verified() {
		return goerror.NewBusiness("Token not verified. Please verify OTP first", goerror.CodeNotVerified)
	}

	now := s.clock.Now()
	if tok.Expired(now) {
		return goerror.NewBusiness("Reset token has expired. Please start over", goerror.CodeExpired)
	}

	stored, err := s.passwordHash.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "token_id", tok.ID, "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.CommitPassword(ctx, entity.CommitPassword{
		TokenID:  tok.ID,
		Role:     role,
		Email:    in.Email,
		Password: string(stored),
		At:       now,
	})
	switch {
	case errors.Is(err, goerror.ErrConflict):
		slog.WarnContext(ctx, "reset token consumed concurrently", "token_id", tok.ID)
		return invalidToken
	case errors.Is(err, goerror.ErrNotFound):
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	case err != nil:
		slog.ErrorContext(ctx, "failed to repo commit password", "token_id", tok.ID, "error", err)
		return goerror.NewServerMsg(err, "Failed to update password. Please try again")
	}
	s.count(ctx, s.commits, role)

	if s.repoMessaging != nil {
		if err := s.repoMessaging.PublishResetCompleted(ctx, ResetCompletedEvent{
			TokenID:     tok.ID,
			Email:       in.Email,
			Role:        role,
			CompletedAt: now,
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish password reset completed", "token_id", tok.ID, "error", err)
		}
	}

	return nil
}
