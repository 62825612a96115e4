package inbound

import (
	"context"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/passwordreset/usecase"
	"github.com/mabinihs/portal/internal/pkg/router"
)

type uc interface {
	IssueCode(ctx context.Context, in usecase.IssueCodeInput) (*usecase.IssueCodeOutput, error)
	VerifyCode(ctx context.Context, in usecase.VerifyCodeInput) (*usecase.VerifyCodeOutput, error)
	CommitSecret(ctx context.Context, in usecase.CommitSecretInput) error

	PurgeTokens(ctx context.Context) (*entity.PurgeResult, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/password-reset/send-otp", end.SendOTP)
	r.POST("/api/password-reset/verify-otp", end.VerifyOTP)
	r.POST("/api/password-reset/reset-password", end.ResetPassword)
}
