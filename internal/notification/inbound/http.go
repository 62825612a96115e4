package inbound

import (
	"context"

	"github.com/mabinihs/portal/internal/notification/usecase"
	"github.com/mabinihs/portal/internal/pkg/router"
)

const (
	scopeEmailSend = "email:send"
	scopeSMSSend   = "sms:send"
)

type uc interface {
	SendEmail(ctx context.Context, in usecase.SendEmailInput) error
	SendSMS(ctx context.Context, in usecase.SendSMSInput) (*usecase.SendSMSOutput, error)
	SendCheckInSMS(ctx context.Context, in usecase.AttendanceSMSInput) (*usecase.SendSMSOutput, error)
	SendCheckOutSMS(ctx context.Context, in usecase.AttendanceSMSInput) (*usecase.SendSMSOutput, error)
	SendAbsenceSMS(ctx context.Context, in usecase.AttendanceSMSInput) (*usecase.SendSMSOutput, error)

	ConsumePasswordResetCompleted(ctx context.Context, in usecase.ConsumePasswordResetCompletedInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/send-email", end.SendEmail, r.ServiceAuth(scopeEmailSend))

	r.POST("/api/sms/send", end.SendSMS, r.ServiceAuth(scopeSMSSend))
	r.POST("/api/sms/check_in", end.SendCheckInSMS, r.ServiceAuth(scopeSMSSend))
	r.POST("/api/sms/check_out", end.SendCheckOutSMS, r.ServiceAuth(scopeSMSSend))
	r.POST("/api/sms/absence", end.SendAbsenceSMS, r.ServiceAuth(scopeSMSSend))
}
