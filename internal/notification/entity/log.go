package entity

import (
	"time"
	"unicode/utf8"

	"github.com/mabinihs/portal/internal/pkg/valueobject"
)

// SMSLogMessageLimit is the number of characters of an SMS kept in the log.
const SMSLogMessageLimit = 160

type SMSKind string

const (
	SMSKindGeneric  SMSKind = "generic"
	SMSKindCheckIn  SMSKind = "check_in"
	SMSKindCheckOut SMSKind = "check_out"
	SMSKindAbsence  SMSKind = "absence"
)

type EmailKind string

const (
	EmailKindRelay         EmailKind = "relay"
	EmailKindPasswordReset EmailKind = "password_reset_completed"
)

type SMSLog struct {
	ID               int64
	Kind             SMSKind
	Recipient        string
	Message          string
	Status           DeliveryStatus
	ProviderResponse valueobject.JSONMap
	SentAt           time.Time
}

type EmailLog struct {
	ID        int64
	Kind      EmailKind
	Recipient string
	Subject   string
	Status    DeliveryStatus
	Error     string
	SentAt    time.Time
}

// TruncateRunes cuts s to at most n characters without splitting a rune.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
