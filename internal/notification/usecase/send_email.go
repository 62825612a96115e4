package usecase

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/mail"
)

type SendEmailInput struct {
	To      string `validate:"email"`
	Subject string
	Message string
	HTML    string
}

func (s *Usecase) SendEmail(ctx context.Context, in SendEmailInput) error {
	ctx, span := s.startSpan(ctx, "SendEmail")
	defer span.End()

	in.To = strings.TrimSpace(in.To)
	in.Subject = strings.TrimSpace(in.Subject)

	if in.To == "" || in.Subject == "" || (in.Message == "" && in.HTML == "") {
		return goerror.NewInvalidInputMsg("Missing required fields: to, subject, and (message or html)")
	}
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInputMsg("Invalid email address")
	}

	body := in.HTML
	if body == "" {
		body = plainToHTML(in.Message)
	}

	err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.To},
		Subject:  in.Subject,
		TextBody: in.Message,
		HTMLBody: body,
	})
	s.logEmail(ctx, entity.EmailKindRelay, in.To, in.Subject, err)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send relay email", "to", in.To, "error", err)
		return goerror.NewServerMsg(err, "Failed to send email")
	}

	return nil
}

func plainToHTML(msg string) string {
	return `<div style="font-family: Arial, sans-serif; padding: 20px;">` +
		strings.ReplaceAll(html.EscapeString(msg), "\n", "<br>") +
		`</div>`
}

func (s *Usecase) logEmail(ctx context.Context, kind entity.EmailKind, to, subject string, sendErr error) {
	row := entity.EmailLog{
		ID:        s.uid.Generate(),
		Kind:      kind,
		Recipient: to,
		Subject:   subject,
		Status:    entity.DeliveryStatusOf(sendErr == nil),
		SentAt:    s.clock.Now(),
	}
	if sendErr != nil {
		row.Error = sendErr.Error()
	}

	if err := s.repoDB.CreateEmailLog(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to repo create email log", "to", to, "error", err)
	}
}
