package db

import (
	"context"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
)

func (s *DB) CreateToken(ctx context.Context, tok entity.ResetToken) (err error) {
	ctx, span := s.startSpan(ctx, "CreateToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateToken,
		tok.ID,
		tok.Role.String(),
		tok.Email,
		tok.CodeHash,
		tok.ExpiresAt,
		tok.CreatedAt,
	)
	err = s.mapError(err)
	return err
}
