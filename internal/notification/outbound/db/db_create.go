package db

import (
	"context"

	"github.com/mabinihs/portal/internal/notification/entity"
)

const (
	queryCreateSMSLog = `INSERT INTO sms_logs
	(id, kind, recipient, message, status, provider_response, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	queryCreateEmailLog = `INSERT INTO email_logs
	(id, kind, recipient, subject, status, error, sent_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
)

func (s *DB) CreateSMSLog(ctx context.Context, in entity.SMSLog) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSMSLog")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateSMSLog,
		in.ID,
		string(in.Kind),
		in.Recipient,
		in.Message,
		in.Status.String(),
		in.ProviderResponse,
		in.SentAt,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) CreateEmailLog(ctx context.Context, in entity.EmailLog) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEmailLog")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateEmailLog,
		in.ID,
		string(in.Kind),
		in.Recipient,
		in.Subject,
		in.Status.String(),
		in.Error,
		in.SentAt,
	)
	err = s.mapError(err)
	return err
}
