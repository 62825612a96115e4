package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
)

const (
	layoutSMSTime = "03:04 PM"
	layoutSMSDate = "Jan 02, 2006"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type AttendanceSMSInput struct {
	Student     entity.Student
	ParentPhone string
	// Timestamp is the check-in/out instant, or the absence date.
	Timestamp string
}

func (s *Usecase) SendCheckInSMS(ctx context.Context, in AttendanceSMSInput) (*SendSMSOutput, error) {
	ctx, span := s.startSpan(ctx, "SendCheckInSMS")
	defer span.End()

	return s.sendAttendance(ctx, entity.SMSKindCheckIn, in, func(name string, at time.Time) string {
		return fmt.Sprintf("MABINI HS ATTENDANCE\n\nYour child %s has checked IN.\nTime: %s\nDate: %s\n\nHave a great day!",
			name, at.Format(layoutSMSTime), at.Format(layoutSMSDate))
	})
}

func (s *Usecase) SendCheckOutSMS(ctx context.Context, in AttendanceSMSInput) (*SendSMSOutput, error) {
	ctx, span := s.startSpan(ctx, "SendCheckOutSMS")
	defer span.End()

	return s.sendAttendance(ctx, entity.SMSKindCheckOut, in, func(name string, at time.Time) string {
		return fmt.Sprintf("MABINI HS ATTENDANCE\n\nYour child %s has checked OUT.\nTime: %s\nDate: %s\n\nStay safe!",
			name, at.Format(layoutSMSTime), at.Format(layoutSMSDate))
	})
}

func (s *Usecase) SendAbsenceSMS(ctx context.Context, in AttendanceSMSInput) (*SendSMSOutput, error) {
	ctx, span := s.startSpan(ctx, "SendAbsenceSMS")
	defer span.End()

	return s.sendAttendance(ctx, entity.SMSKindAbsence, in, func(name string, at time.Time) string {
		return fmt.Sprintf("MABINI HS ATTENDANCE ALERT\n\nYour child %s was marked ABSENT.\nDate: %s\n\nPlease contact the school if this is incorrect.",
			name, at.Format(layoutSMSDate))
	})
}

func (s *Usecase) sendAttendance(ctx context.Context, kind entity.SMSKind, in AttendanceSMSInput, compose func(string, time.Time) string) (*SendSMSOutput, error) {
	name := in.Student.Name()
	if name == "" || strings.TrimSpace(in.ParentPhone) == "" {
		return nil, goerror.NewInvalidInputMsg("Student and parent_phone are required")
	}

	at, err := s.parseTimestamp(in.Timestamp)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "timestamp", "timestamp must be an ISO-8601 date or date-time")
	}

	return s.sendSMS(ctx, kind, SendSMSInput{Recipient: in.ParentPhone, Message: compose(name, at)})
}

// parseTimestamp reads the instant in the school's time zone. An empty value
// means now. Date-only and zone-less values are taken as local school time.
func (s *Usecase) parseTimestamp(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return s.clock.Now().In(s.loc), nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, v, s.loc)
		if err == nil {
			return t.In(s.loc), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
