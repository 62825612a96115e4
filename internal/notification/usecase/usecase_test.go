package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/mail"
	"github.com/mabinihs/portal/internal/pkg/validator"
)

var t0 = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

type fakeDB struct {
	mu     sync.Mutex
	sms    []entity.SMSLog
	emails []entity.EmailLog
	err    error
}

func (f *fakeDB) CreateSMSLog(_ context.Context, in entity.SMSLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append(f.sms, in)
	return f.err
}

func (f *fakeDB) CreateEmailLog(_ context.Context, in entity.EmailLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, in)
	return f.err
}

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeSMS struct {
	recipient string
	message   string
	res       *SMSResult
	err       error
}

func (f *fakeSMS) Send(_ context.Context, recipient, message string) (*SMSResult, error) {
	f.recipient, f.message = recipient, message
	if f.err != nil {
		return nil, f.err
	}
	if f.res == nil {
		return &SMSResult{OK: true, Body: `{"result":"ok"}`}, nil
	}
	return f.res, nil
}

type seqID struct{ n int64 }

func (s *seqID) Generate() int64 {
	s.n++
	return s.n
}

type harness struct {
	uc   *Usecase
	db   *fakeDB
	mail *fakeMail
	sms  *fakeSMS
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	manila, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		manila = time.FixedZone("PST", 8*3600)
	}

	h := &harness{db: &fakeDB{}, mail: &fakeMail{}, sms: &fakeSMS{}}
	h.uc = New(Dependency{
		RepoDB:     h.db,
		RepoMail:   h.mail,
		RepoSMS:    h.sms,
		Validator:  v,
		UID:        &seqID{},
		Clock:      clock.NewManual(t0),
		Location:   manila,
		Instrument: instrument.NewNoop(),
	})
	return h
}

func msgOf(t *testing.T, err error) string {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T (%v)", err, err)
	}
	return ge.Msg()
}
