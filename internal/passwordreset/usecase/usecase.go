package usecase

import (
	"context"
	"time"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/hash"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/otp"
	"github.com/mabinihs/portal/internal/pkg/throttle"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type ResetCompletedEvent struct {
	TokenID     string
	Email       string
	Role        entity.Role
	CompletedAt time.Time
}

type repoDB interface {
	GetAccount(ctx context.Context, role entity.Role, email string) (*entity.Account, error)
	GetLatestUnusedToken(ctx context.Context, role entity.Role, email, codeHash string) (*entity.ResetToken, error)
	GetUnusedToken(ctx context.Context, id string, role entity.Role, email string) (*entity.ResetToken, error)
	ListPurgeableTokens(ctx context.Context, cutoff time.Time, limit int) ([]entity.ResetToken, error)

	CreateToken(ctx context.Context, tok entity.ResetToken) error
	MarkTokenVerified(ctx context.Context, id string, at time.Time) error
	CommitPassword(ctx context.Context, in entity.CommitPassword) error

	DeleteTokens(ctx context.Context, ids []string) (int64, error)
}

type repoMail interface {
	SendCode(ctx context.Context, in entity.CodeMail) error
}

type repoMessaging interface {
	PublishResetCompleted(ctx context.Context, ev ResetCompletedEvent) error
}

type repoArchive interface {
	Archive(ctx context.Context, rows []entity.ResetToken) (string, error)
}

// Options are the tunables read from configuration by the module.
type Options struct {
	Cooldown       time.Duration
	PurgeRetention time.Duration
	PurgeBatchSize int
	PurgeLockTTL   time.Duration
	ArchiveEnabled bool
}

type Usecase struct {
	repoDB        repoDB
	repoMail      repoMail
	repoMessaging repoMessaging
	repoArchive   repoArchive
	throttle      throttle.Throttle
	validator     validator.Validator
	codeHash      hash.Hash
	passwordHash  hash.Hash
	otp           otp.Generator
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	opts          Options

	codesIssued   metric.Int64Counter
	emailFailures metric.Int64Counter
	commits       metric.Int64Counter
}

type Dependency struct {
	RepoDB        repoDB
	RepoMail      repoMail
	RepoMessaging repoMessaging
	RepoArchive   repoArchive
	Throttle      throttle.Throttle
	Validator     validator.Validator
	CodeHash      hash.Hash
	PasswordHash  hash.Hash
	OTP           otp.Generator
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Options       Options
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:        dep.RepoDB,
		repoMail:      dep.RepoMail,
		repoMessaging: dep.RepoMessaging,
		repoArchive:   dep.RepoArchive,
		throttle:      dep.Throttle,
		validator:     dep.Validator,
		codeHash:      dep.CodeHash,
		passwordHash:  dep.PasswordHash,
		otp:           dep.OTP,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		opts:          dep.Options,
	}

	if s.throttle == nil {
		s.throttle = throttle.Noop{}
	}
	if s.opts.PurgeBatchSize <= 0 {
		s.opts.PurgeBatchSize = 500
	}
	if s.opts.PurgeLockTTL <= 0 {
		s.opts.PurgeLockTTL = 5 * time.Minute
	}

	meter := s.ins.Meter("passwordreset.usecase")
	s.codesIssued, _ = meter.Int64Counter("password_reset.codes_issued")
	s.emailFailures, _ = meter.Int64Counter("password_reset.email_failures")
	s.commits, _ = meter.Int64Counter("password_reset.commits")

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("passwordreset.usecase").Start(ctx, name)
}
