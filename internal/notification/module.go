package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mabinihs/portal/internal/notification/inbound"
	"github.com/mabinihs/portal/internal/notification/outbound/db"
	"github.com/mabinihs/portal/internal/notification/outbound/email"
	"github.com/mabinihs/portal/internal/notification/outbound/sms"
	"github.com/mabinihs/portal/internal/notification/usecase"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/config"
	"github.com/mabinihs/portal/internal/pkg/goroutine"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/mail"
	"github.com/mabinihs/portal/internal/pkg/messaging"
	"github.com/mabinihs/portal/internal/pkg/router"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
)

const defaultTimezone = "Asia/Manila"

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	cfg := dep.Config

	tz := cfg.GetString("app.timezone")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoMail:   email.New(dep.Mail, dep.Instrument),
		RepoSMS:    sms.Disabled{},
		Validator:  dep.Validator,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Location:   loc,
		Instrument: dep.Instrument,
	}

	gateway, err := sms.New(sms.Config{
		URL:        cfg.GetString("sms.api_url"),
		APIKey:     cfg.GetString("sms.api_key"),
		Timeout:    cfg.GetSecond("sms.timeout_seconds"),
		MaxRetries: uint64(max(cfg.GetInt("sms.max_retries"), 0)),
	}, nil, dep.Instrument)
	switch {
	case err == nil:
		ucDep.RepoSMS = gateway
	case errors.Is(err, sms.ErrAPIKeyRequired):
		slog.Warn("sms api key is not configured, sms relay is disabled")
	default:
		return err
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, cfg, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
