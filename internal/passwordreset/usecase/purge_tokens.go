package usecase

import (
	"context"
	"log/slog"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/samber/lo"
)

const purgeLockKey = "purge:password_reset_tokens"

// PurgeTokens deletes tokens that were used or expired longer than the
// retention window ago. When archiving is on, each batch is archived before
// it is deleted and an archive failure stops the cycle with nothing deleted
// for that batch.
func (s *Usecase) PurgeTokens(ctx context.Context) (*entity.PurgeResult, error) {
	ctx, span := s.startSpan(ctx, "PurgeTokens")
	defer span.End()

	res := &entity.PurgeResult{}

	owner := s.uuid.Generate()
	locked, err := s.throttle.Lock(ctx, purgeLockKey, owner, s.opts.PurgeLockTTL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to take purge lock", "error", err)
		return nil, goerror.NewServer(err)
	}
	if !locked {
		slog.InfoContext(ctx, "purge skipped, another instance holds the lock")
		res.Skipped = true
		return res, nil
	}
	defer func() {
		if err := s.throttle.Release(context.WithoutCancel(ctx), purgeLockKey, owner); err != nil {
			slog.WarnContext(ctx, "failed to release purge lock", "error", err)
		}
	}()

	cutoff := s.clock.Now().Add(-s.opts.PurgeRetention)
	for {
		rows, err := s.repoDB.ListPurgeableTokens(ctx, cutoff, s.opts.PurgeBatchSize)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list purgeable tokens", "error", err)
			return res, goerror.NewServer(err)
		}
		if len(rows) == 0 {
			break
		}

		if s.opts.ArchiveEnabled && s.repoArchive != nil {
			key, err := s.repoArchive.Archive(ctx, rows)
			if err != nil {
				slog.ErrorContext(ctx, "failed to archive purged tokens, deletion aborted", "rows", len(rows), "error", err)
				return res, goerror.NewServer(err)
			}
			res.Archived += len(rows)
			res.ArchiveKeys = append(res.ArchiveKeys, key)
		}

		ids := lo.Map(rows, func(t entity.ResetToken, _ int) string { return t.ID })
		n, err := s.repoDB.DeleteTokens(ctx, ids)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo delete tokens", "rows", len(ids), "error", err)
			return res, goerror.NewServer(err)
		}
		res.Deleted += int(n)

		if n == 0 || len(rows) < s.opts.PurgeBatchSize {
			break
		}
	}

	slog.InfoContext(ctx, "purged password reset tokens", "deleted", res.Deleted, "archived", res.Archived)
	return res, nil
}
