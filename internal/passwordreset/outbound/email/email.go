package email

import (
	"bytes"
	"context"
	"html/template"
	"math"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const subjectCode = "Password Reset OTP - Mabini HS Attendance System"

var codeTemplate = template.Must(template.New("code").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2c3e50;">Password Reset Request</h2>
  <p>Hello {{.FirstName}} {{.LastName}},</p>
  <p>You requested to reset your password for your {{.Role}} account. Use the code below to continue:</p>
  <div style="background: #f4f6f8; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0;">
    <h1 style="color: #2c3e50; letter-spacing: 8px; margin: 0;">{{.Code}}</h1>
  </div>
  <p>This code expires in {{.Minutes}} minutes.</p>
  <p>If you did not request a password reset, you can ignore this email.</p>
  <hr style="border: none; border-top: 1px solid #e0e0e0; margin: 20px 0;">
  <p style="color: #7f8c8d; font-size: 12px;">This is an automated message from Mabini HS Attendance System. Please do not reply.</p>
</div>`))

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) SendCode(ctx context.Context, in entity.CodeMail) error {
	ctx, span := m.ins.Tracer("passwordreset.outbound.email").Start(ctx, "SendCode")
	defer span.End()

	ttl := in.TTL
	if ttl <= 0 {
		ttl = entity.CodeTTL
	}

	var body bytes.Buffer
	if err := codeTemplate.Execute(&body, map[string]any{
		"FirstName": in.Account.FirstName,
		"LastName":  in.Account.LastName,
		"Role":      in.Role.String(),
		"Code":      in.Code,
		"Minutes":   int(math.Ceil(ttl.Minutes())),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Send(ctx, mail.Message{
		To:       []string{in.Account.Email},
		Subject:  subjectCode,
		HTMLBody: body.String(),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
