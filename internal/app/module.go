package app

import (
	"log/slog"
	"os"

	"github.com/mabinihs/portal/internal/notification"
	"github.com/mabinihs/portal/internal/passwordreset"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.passwordreset.enabled") {
		if err := passwordreset.New(passwordreset.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Throttle:   a.throttle,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Storage:    a.storage,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			OID:        a.oid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module passwordreset", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
