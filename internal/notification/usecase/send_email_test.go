package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
)

func TestSendEmail_TextBodyWrapped(t *testing.T) {
	// Arrange
	h := newHarness(t)

	// Act
	err := h.uc.SendEmail(context.Background(), SendEmailInput{
		To: "parent@example.com", Subject: "Reminder", Message: "Line one\n<b>Line two</b>",
	})

	// Assert
	if err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	msg := h.mail.sent[0]
	want := `<div style="font-family: Arial, sans-serif; padding: 20px;">Line one<br>&lt;b&gt;Line two&lt;/b&gt;</div>`
	if msg.HTMLBody != want || msg.TextBody != "Line one\n<b>Line two</b>" {
		t.Fatalf("unexpected bodies: %+v", msg)
	}
	if len(h.db.emails) != 1 || h.db.emails[0].Status != entity.DeliveryStatusSent || h.db.emails[0].Kind != entity.EmailKindRelay {
		t.Fatalf("unexpected log: %+v", h.db.emails)
	}
}

func TestSendEmail_HTMLKept(t *testing.T) {
	h := newHarness(t)

	if err := h.uc.SendEmail(context.Background(), SendEmailInput{To: "a@b.co", Subject: "s", HTML: "<p>hi</p>"}); err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	if h.mail.sent[0].HTMLBody != "<p>hi</p>" {
		t.Fatalf("html must be passed through")
	}
}

func TestSendEmail_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      SendEmailInput
		mailErr error
		code    goerror.Code
		msg     string
		logged  bool
	}{
		{name: "missing body", in: SendEmailInput{To: "a@b.co", Subject: "s"}, code: goerror.CodeInvalidInput, msg: "Missing required fields: to, subject, and (message or html)"},
		{name: "missing to", in: SendEmailInput{Subject: "s", Message: "m"}, code: goerror.CodeInvalidInput, msg: "Missing required fields: to, subject, and (message or html)"},
		{name: "bad address", in: SendEmailInput{To: "not-an-email", Subject: "s", Message: "m"}, code: goerror.CodeInvalidInput, msg: "Invalid email address"},
		{name: "provider down", in: SendEmailInput{To: "a@b.co", Subject: "s", Message: "m"}, mailErr: errors.New("503"), code: goerror.CodeInternal, msg: "Failed to send email", logged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.mail.err = tt.mailErr

			err := h.uc.SendEmail(context.Background(), tt.in)

			if goerror.CodeOf(err) != tt.code || msgOf(t, err) != tt.msg {
				t.Fatalf("err = %v", err)
			}
			if tt.logged && (len(h.db.emails) != 1 || h.db.emails[0].Status != entity.DeliveryStatusFailed || h.db.emails[0].Error == "") {
				t.Fatalf("failure should be logged: %+v", h.db.emails)
			}
		})
	}
}
