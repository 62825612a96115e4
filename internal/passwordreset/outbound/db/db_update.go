package db

import (
	"context"
	"time"

	"github.com/mabinihs/portal/internal/pkg/goerror"
)

func (s *DB) MarkTokenVerified(ctx context.Context, id string, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "MarkTokenVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryMarkTokenVerified, id, at)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
