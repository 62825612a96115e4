package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mabinihs/portal/internal/passwordreset/entity"
)

func (s *DB) GetAccount(ctx context.Context, role entity.Role, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccount")
	defer func() { s.endSpan(span, err) }()

	var acc entity.Account
	err = s.conn.QueryRow(ctx, queryGetAccount(role.Table()), email).
		Scan(&acc.Email, &acc.FirstName, &acc.LastName, &acc.Status)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &acc, nil
}

func (s *DB) GetLatestUnusedToken(ctx context.Context, role entity.Role, email, codeHash string) (_ *entity.ResetToken, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestUnusedToken")
	defer func() { s.endSpan(span, err) }()

	tok, err := scanToken(s.conn.QueryRow(ctx, queryGetLatestUnusedToken, email, codeHash, role.String()))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return tok, nil
}

func (s *DB) GetUnusedToken(ctx context.Context, id string, role entity.Role, email string) (_ *entity.ResetToken, err error) {
	ctx, span := s.startSpan(ctx, "GetUnusedToken")
	defer func() { s.endSpan(span, err) }()

	tok, err := scanToken(s.conn.QueryRow(ctx, queryGetUnusedToken, id, email, role.String()))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return tok, nil
}

func (s *DB) ListPurgeableTokens(ctx context.Context, cutoff time.Time, limit int) (_ []entity.ResetToken, err error) {
	ctx, span := s.startSpan(ctx, "ListPurgeableTokens")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListPurgeableTokens, cutoff, limit)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ResetToken, 0, limit)
	for rows.Next() {
		tok, sErr := scanToken(rows)
		if sErr != nil {
			err = sErr
			return nil, err
		}
		out = append(out, *tok)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanToken(row pgx.Row) (*entity.ResetToken, error) {
	var (
		tok  entity.ResetToken
		role string
	)

	if err := row.Scan(
		&tok.ID,
		&role,
		&tok.Email,
		&tok.CodeHash,
		&tok.ExpiresAt,
		&tok.VerifiedAt,
		&tok.Used,
		&tok.UsedAt,
		&tok.CreatedAt,
	); err != nil {
		return nil, err
	}
	tok.Role, _ = entity.ParseRole(role)

	return &tok, nil
}
