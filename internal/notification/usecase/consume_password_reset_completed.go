package usecase

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"time"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/mail"
)

const subjectPasswordChanged = "Your password was changed - Mabini HS Attendance System"

var passwordChangedTemplate = template.Must(template.New("password_changed").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2c3e50;">Your password was changed</h2>
  <p>The password of your {{.Role}} account ({{.Email}}) was reset on {{.When}}.</p>
  <p>If you did not do this, contact the school administration right away.</p>
  <hr style="border: none; border-top: 1px solid #e0e0e0; margin: 20px 0;">
  <p style="color: #7f8c8d; font-size: 12px;">This is an automated message from Mabini HS Attendance System. Please do not reply.</p>
</div>`))

type ConsumePasswordResetCompletedInput struct {
	TokenID     string `validate:"required"`
	Email       string `validate:"required,email"`
	Role        string `validate:"required,role"`
	CompletedAt time.Time
}

// ConsumePasswordResetCompleted emails the account owner after a reset.
// Invalid payloads and delivery failures are logged and dropped so the
// broker does not redeliver them.
func (s *Usecase) ConsumePasswordResetCompleted(ctx context.Context, in ConsumePasswordResetCompletedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordResetCompleted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "token_id", in.TokenID, "error", err)
		return nil
	}

	when := in.CompletedAt
	if when.IsZero() {
		when = s.clock.Now()
	}

	var body bytes.Buffer
	if err := passwordChangedTemplate.Execute(&body, map[string]string{
		"Role":  in.Role,
		"Email": in.Email,
		"When":  when.In(s.loc).Format("Jan 02, 2006 03:04 PM MST"),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to render password changed email", "token_id", in.TokenID, "error", err)
		return nil
	}

	err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  subjectPasswordChanged,
		HTMLBody: body.String(),
	})
	s.logEmail(ctx, entity.EmailKindPasswordReset, in.Email, subjectPasswordChanged, err)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send password changed email", "token_id", in.TokenID, "error", err)
	}

	return nil
}
