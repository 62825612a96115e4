package passwordreset

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mabinihs/portal/internal/passwordreset/inbound"
	"github.com/mabinihs/portal/internal/passwordreset/outbound/archive"
	"github.com/mabinihs/portal/internal/passwordreset/outbound/db"
	"github.com/mabinihs/portal/internal/passwordreset/outbound/email"
	"github.com/mabinihs/portal/internal/passwordreset/outbound/mq"
	"github.com/mabinihs/portal/internal/passwordreset/usecase"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/config"
	"github.com/mabinihs/portal/internal/pkg/goroutine"
	"github.com/mabinihs/portal/internal/pkg/hash"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/mail"
	"github.com/mabinihs/portal/internal/pkg/messaging"
	"github.com/mabinihs/portal/internal/pkg/otp"
	"github.com/mabinihs/portal/internal/pkg/router"
	"github.com/mabinihs/portal/internal/pkg/seal"
	"github.com/mabinihs/portal/internal/pkg/storage"
	"github.com/mabinihs/portal/internal/pkg/throttle"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
)

const defaultCooldown = 60 * time.Second

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool       `validate:"required"`
	Throttle   throttle.Throttle   `validate:"required"`
	Goroutine  *goroutine.Manager  `validate:"required"`
	Router     *router.Router      `validate:"required"`
	Messaging  messaging.Messaging `validate:"required"`
	Storage    storage.Storage     `validate:"required"`
	Sealer     seal.Sealer
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	cfg := dep.Config

	pwHash, err := hash.NewPassword(
		cfg.GetString("hash.password.algorithm"),
		cfg.GetInt("hash.password.bcrypt_cost"),
		cfg.GetString("hash.password.pepper"),
	)
	if err != nil {
		return err
	}

	opts := usecase.Options{
		Cooldown:       defaultCooldown,
		PurgeRetention: cfg.GetHour("modules.passwordreset.purge.retention_hours"),
		PurgeBatchSize: cfg.GetInt("modules.passwordreset.purge.batch_size"),
		PurgeLockTTL:   cfg.GetMinute("modules.passwordreset.purge.lock_minutes"),
		ArchiveEnabled: cfg.GetBool("modules.passwordreset.archive.enabled"),
	}
	if cfg.GetString("modules.passwordreset.cooldown_seconds") != "" {
		opts.Cooldown = cfg.GetSecond("modules.passwordreset.cooldown_seconds")
	}
	if opts.PurgeRetention <= 0 {
		opts.PurgeRetention = 24 * time.Hour
	}

	ucDep := usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMail:      email.New(dep.Mail, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Throttle:      dep.Throttle,
		Validator:     dep.Validator,
		CodeHash:      hash.NewHMACSHA256(cfg.GetString("hash.otp.secret")),
		PasswordHash:  pwHash,
		OTP:           otp.NewNumeric(otp.Length),
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Options:       opts,
	}

	if opts.ArchiveEnabled {
		sealer := dep.Sealer
		if sealer == nil {
			if sealer, err = seal.NewAESGCM(cfg.GetBinary("modules.passwordreset.archive.key")); err != nil {
				return err
			}
		}
		repoArchive, err := archive.New(dep.Storage, sealer, dep.OID, dep.Clock, dep.Instrument, archive.Config{
			Bucket: cfg.GetString("modules.passwordreset.archive.bucket"),
			Prefix: cfg.GetString("modules.passwordreset.archive.prefix"),
		})
		if err != nil {
			return err
		}
		ucDep.RepoArchive = repoArchive
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		interval := cfg.GetMinute("modules.passwordreset.purge.interval_minutes")
		if cfg.GetString("modules.passwordreset.purge.interval_minutes") == "" {
			interval = time.Hour
		}
		inbound.RegisterPurgeJob(dep.Ctx, dep.Goroutine, interval, dep.UUID, uc)
	}

	return nil
}
