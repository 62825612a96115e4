package db

import "context"

func (s *DB) DeleteTokens(ctx context.Context, ids []string) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteTokens")
	defer func() { s.endSpan(span, err) }()

	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := s.conn.Exec(ctx, queryDeleteTokens, ids)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
