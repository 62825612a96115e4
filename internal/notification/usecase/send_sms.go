package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/valueobject"
)

type SendSMSInput struct {
	Recipient string `validate:"phone"`
	Message   string
}

type SendSMSOutput struct {
	Success   bool
	Response  string
	Recipient string
}

func (s *Usecase) SendSMS(ctx context.Context, in SendSMSInput) (*SendSMSOutput, error) {
	ctx, span := s.startSpan(ctx, "SendSMS")
	defer span.End()

	return s.sendSMS(ctx, entity.SMSKindGeneric, in)
}

func (s *Usecase) sendSMS(ctx context.Context, kind entity.SMSKind, in SendSMSInput) (*SendSMSOutput, error) {
	in.Recipient = strings.TrimSpace(in.Recipient)

	if in.Recipient == "" || strings.TrimSpace(in.Message) == "" {
		return nil, goerror.NewInvalidInputMsg("Recipient and message are required")
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	res, err := s.repoSMS.Send(ctx, in.Recipient, in.Message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send sms", "kind", string(kind), "recipient", in.Recipient, "error", err)
		s.logSMS(ctx, kind, in, false, valueobject.JSONMap{"error": err.Error()})
		return nil, goerror.NewServerMsg(err, "Failed to send SMS")
	}

	s.logSMS(ctx, kind, in, res.OK, valueobject.FromBody([]byte(res.Body)))
	if !res.OK {
		slog.WarnContext(ctx, "sms gateway rejected message", "kind", string(kind), "recipient", in.Recipient, "response", res.Body)
	}

	return &SendSMSOutput{Success: res.OK, Response: res.Body, Recipient: in.Recipient}, nil
}

func (s *Usecase) logSMS(ctx context.Context, kind entity.SMSKind, in SendSMSInput, ok bool, response valueobject.JSONMap) {
	if err := s.repoDB.CreateSMSLog(ctx, entity.SMSLog{
		ID:               s.uid.Generate(),
		Kind:             kind,
		Recipient:        in.Recipient,
		Message:          entity.TruncateRunes(in.Message, entity.SMSLogMessageLimit),
		Status:           entity.DeliveryStatusOf(ok),
		ProviderResponse: response,
		SentAt:           s.clock.Now(),
	}); err != nil {
		slog.WarnContext(ctx, "failed to repo create sms log", "recipient", in.Recipient, "error", err)
	}
}
