package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/valueobject"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newDB(t *testing.T) (*DB, *pgxpool.Pool) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("portal"),
		tcpostgres.WithUsername("portal"),
		tcpostgres.WithPassword("portal"),
		tcpostgres.WithInitScripts("testdata/schema.sql"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return NewDB(pool, instrument.NewNoop()), pool
}

func TestDB_CreateLogs(t *testing.T) {
	// Arrange
	db, pool := newDB(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

	// Act
	smsErr := db.CreateSMSLog(ctx, entity.SMSLog{
		ID: 101, Kind: entity.SMSKindCheckIn, Recipient: "09171234567", Message: "MABINI HS ATTENDANCE",
		Status: entity.DeliveryStatusSent, ProviderResponse: valueobject.FromBody([]byte(`{"status":"queued"}`)), SentAt: at,
	})
	emailErr := db.CreateEmailLog(ctx, entity.EmailLog{
		ID: 202, Kind: entity.EmailKindRelay, Recipient: "a@b.co", Subject: "s", Status: entity.DeliveryStatusSent, SentAt: at,
	})

	// Assert
	if smsErr != nil || emailErr != nil {
		t.Fatalf("create errors: sms=%v email=%v", smsErr, emailErr)
	}

	var status string
	var errCol *string
	if err := pool.QueryRow(ctx, `SELECT status, error FROM email_logs WHERE id = 202`).Scan(&status, &errCol); err != nil {
		t.Fatalf("select: %v", err)
	}
	if status != "sent" || errCol != nil {
		t.Fatalf("status=%q error=%v", status, errCol)
	}

	dup := db.CreateSMSLog(ctx, entity.SMSLog{ID: 101, Kind: entity.SMSKindGeneric, Recipient: "x", Message: "y", Status: entity.DeliveryStatusFailed, SentAt: at})
	if !errors.Is(dup, goerror.ErrConflict) {
		t.Fatalf("duplicate id should conflict, got %v", dup)
	}

	var resp valueobject.JSONMap
	if err := pool.QueryRow(ctx, `SELECT provider_response FROM sms_logs WHERE id = 101`).Scan(&resp); err != nil {
		t.Fatalf("select sms log: %v", err)
	}
	if resp.GetString("status") != "queued" {
		t.Fatalf("provider_response = %v", resp)
	}
}
