// Package archive writes purged reset tokens to object storage as sealed
// JSON lines before they are deleted from the database.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path"
	"strconv"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/seal"
	"github.com/mabinihs/portal/internal/pkg/storage"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultPrefix = "password-reset-tokens"
	contentType   = "application/octet-stream"
)

var ErrBucketRequired = errors.New("archive: bucket is required")

type Config struct {
	Bucket string
	Prefix string
}

type Archive struct {
	store  storage.Storage
	sealer seal.Sealer
	oid    uid.StringID
	clock  clock.Clocker
	ins    instrument.Instrumentation
	cfg    Config
}

type row struct {
	ID         string  `json:"id"`
	UserType   string  `json:"user_type"`
	Email      string  `json:"email"`
	ExpiresAt  string  `json:"expires_at"`
	VerifiedAt *string `json:"verified_at"`
	Used       bool    `json:"used"`
	UsedAt     *string `json:"used_at"`
	CreatedAt  string  `json:"created_at"`
}

func New(store storage.Storage, sealer seal.Sealer, oid uid.StringID, clk clock.Clocker, ins instrument.Instrumentation, cfg Config) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}

	return &Archive{store: store, sealer: sealer, oid: oid, clock: clk, ins: ins, cfg: cfg}, nil
}

// Archive uploads rows and returns the object key. The code hash is never
// written out.
func (a *Archive) Archive(ctx context.Context, rows []entity.ResetToken) (string, error) {
	ctx, span := a.ins.Tracer("passwordreset.outbound.archive").Start(ctx, "Archive")
	defer span.End()

	key := path.Join(a.cfg.Prefix, a.clock.Now().UTC().Format("2006/01/02"), a.oid.Generate()+".jsonl.enc")
	span.SetAttributes(attribute.String("archive.key", key), attribute.Int("archive.rows", len(rows)))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, t := range rows {
		if err := enc.Encode(toRow(t)); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", err
		}
	}

	sealed, err := a.sealer.Seal(buf.Bytes(), key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if _, err := a.store.PutObject(ctx, a.cfg.Bucket, key, bytes.NewReader(sealed), storage.PutOptions{
		Size:        int64(len(sealed)),
		ContentType: contentType,
		Metadata:    map[string]string{"rows": strconv.Itoa(len(rows))},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return key, nil
}

func toRow(t entity.ResetToken) row {
	const layout = "2006-01-02T15:04:05.000Z07:00"

	r := row{
		ID:        t.ID,
		UserType:  t.Role.String(),
		Email:     t.Email,
		ExpiresAt: t.ExpiresAt.UTC().Format(layout),
		Used:      t.Used,
		CreatedAt: t.CreatedAt.UTC().Format(layout),
	}
	if t.VerifiedAt != nil {
		s := t.VerifiedAt.UTC().Format(layout)
		r.VerifiedAt = &s
	}
	if t.UsedAt != nil {
		s := t.UsedAt.UTC().Format(layout)
		r.UsedAt = &s
	}

	return r
}
