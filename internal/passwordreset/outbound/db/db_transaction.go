package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
)

// CommitPassword claims the token and writes the new password hash in one
// transaction. A token already claimed yields goerror.ErrConflict; a missing
// account yields goerror.ErrNotFound and the claim is rolled back.
func (s *DB) CommitPassword(ctx context.Context, in entity.CommitPassword) (err error) {
	ctx, span := s.startSpan(ctx, "CommitPassword")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	var claimed string
	if err = tx.QueryRow(ctx, queryClaimToken, in.TokenID, in.At).Scan(&claimed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = goerror.ErrConflict
			return err
		}
		err = s.mapError(err)
		return err
	}

	tag, err := tx.Exec(ctx, queryUpdatePassword(in.Role.Table()), in.Password, in.At, in.Email)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		err = s.mapError(err)
		return err
	}

	return nil
}
