package usecase

import (
	"context"
	"time"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/mail"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// SMSResult is what the gateway answered. OK is false when the gateway
// responded with a non-2xx status.
type SMSResult struct {
	OK   bool
	Body string
}

type repoDB interface {
	CreateSMSLog(ctx context.Context, in entity.SMSLog) error
	CreateEmailLog(ctx context.Context, in entity.EmailLog) error
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type repoSMS interface {
	Send(ctx context.Context, recipient, message string) (*SMSResult, error)
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	repoSMS   repoSMS
	validator validator.Validator
	uid       uid.NumberID
	clock     clock.Clocker
	loc       *time.Location
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	RepoSMS    repoSMS
	Validator  validator.Validator
	UID        uid.NumberID
	Clock      clock.Clocker
	Location   *time.Location
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	loc := dep.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		repoSMS:   dep.RepoSMS,
		validator: dep.Validator,
		uid:       dep.UID,
		clock:     dep.Clock,
		loc:       loc,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
