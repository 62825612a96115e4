package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/mail"
)

type captureMail struct {
	msgs []mail.Message
	err  error
}

func (c *captureMail) Send(_ context.Context, msg mail.Message) error {
	c.msgs = append(c.msgs, msg)
	return c.err
}

func (c *captureMail) Close() error { return nil }

func TestMail_SendCode(t *testing.T) {
	// Arrange
	client := &captureMail{}
	m := New(client, instrument.NewNoop())

	// Act
	err := m.SendCode(context.Background(), entity.CodeMail{
		Account: entity.Account{Email: "ana@mabini.edu.ph", FirstName: "Ana", LastName: "<Reyes>"},
		Role:    entity.RoleStudent,
		Code:    "482913",
		TTL:     entity.CodeTTL,
	})

	// Assert
	if err != nil {
		t.Fatalf("SendCode() error = %v", err)
	}
	if len(client.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(client.msgs))
	}
	msg := client.msgs[0]
	if msg.Subject != "Password Reset OTP - Mabini HS Attendance System" || msg.To[0] != "ana@mabini.edu.ph" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	for _, want := range []string{"Hello Ana &lt;Reyes&gt;,", "482913", "expires in 10 minutes", "student account"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.HTMLBody)
		}
	}
}

func TestMail_SendCodeError(t *testing.T) {
	client := &captureMail{err: errors.New("smtp down")}
	m := New(client, instrument.NewNoop())

	err := m.SendCode(context.Background(), entity.CodeMail{Account: entity.Account{Email: "a@b.c"}, Code: "111111"})
	if err == nil {
		t.Fatalf("expected error from the mail client")
	}
}
