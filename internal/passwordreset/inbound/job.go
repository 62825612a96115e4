package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/mabinihs/portal/internal/pkg/goroutine"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/uid"
)

// RegisterPurgeJob runs PurgeTokens every interval until ctx is done. A
// non-positive interval disables the job.
func RegisterPurgeJob(ctx context.Context, routine *goroutine.Manager, interval time.Duration, uuid uid.StringID, uc uc) {
	if interval <= 0 {
		slog.InfoContext(ctx, "password reset purge job disabled")
		return
	}

	routine.Go(ctx, func(pCtx context.Context) error {
		slog.InfoContext(pCtx, "Running job for purging password reset tokens", "interval", interval.String())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-pCtx.Done():
				return nil
			case <-ticker.C:
				runPurge(instrument.SetCorrelationID(pCtx, uuid.Generate()), uc)
			}
		}
	})
}

func runPurge(ctx context.Context, uc uc) {
	if _, err := uc.PurgeTokens(ctx); err != nil {
		slog.ErrorContext(ctx, "password reset purge cycle failed", "error", err)
	}
}
