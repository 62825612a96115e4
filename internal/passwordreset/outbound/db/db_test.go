package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var t0 = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

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

func token(id string, created time.Time) entity.ResetToken {
	return entity.ResetToken{
		ID:        id,
		Role:      entity.RoleStudent,
		Email:     "ana@mabini.edu.ph",
		CodeHash:  "hash-482913",
		ExpiresAt: created.Add(entity.CodeTTL),
		CreatedAt: created,
	}
}

func TestDB_GetAccount(t *testing.T) {
	db, _ := newDB(t)
	ctx := context.Background()

	acc, err := db.GetAccount(ctx, entity.RoleStudent, "ana@mabini.edu.ph")
	if err != nil || acc.FirstName != "Ana" || !acc.Active() {
		t.Fatalf("GetAccount() = %+v, %v", acc, err)
	}

	teacher, err := db.GetAccount(ctx, entity.RoleTeacher, "ben@mabini.edu.ph")
	if err != nil || teacher.Active() {
		t.Fatalf("expected inactive teacher, got %+v, %v", teacher, err)
	}

	if _, err := db.GetAccount(ctx, entity.RoleTeacher, "ana@mabini.edu.ph"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from the other store, got %v", err)
	}
}

func TestDB_TokenLifecycle(t *testing.T) {
	// Arrange
	db, _ := newDB(t)
	ctx := context.Background()
	older := token("0195f3c2-7a10-7000-8000-000000000001", t0)
	newer := token("0195f3c2-7a10-7000-8000-000000000002", t0.Add(time.Minute))
	for _, tok := range []entity.ResetToken{older, newer} {
		if err := db.CreateToken(ctx, tok); err != nil {
			t.Fatalf("CreateToken() error = %v", err)
		}
	}

	// Act
	got, err := db.GetLatestUnusedToken(ctx, entity.RoleStudent, "ana@mabini.edu.ph", "hash-482913")

	// Assert
	if err != nil || got.ID != newer.ID || got.Role != entity.RoleStudent || got.Verified() {
		t.Fatalf("GetLatestUnusedToken() = %+v, %v", got, err)
	}

	if err := db.MarkTokenVerified(ctx, newer.ID, t0.Add(2*time.Minute)); err != nil {
		t.Fatalf("MarkTokenVerified() error = %v", err)
	}
	if err := db.MarkTokenVerified(ctx, newer.ID, t0.Add(5*time.Minute)); err != nil {
		t.Fatalf("MarkTokenVerified() again error = %v", err)
	}
	got, err = db.GetUnusedToken(ctx, newer.ID, entity.RoleStudent, "ana@mabini.edu.ph")
	if err != nil || got.VerifiedAt == nil || !got.VerifiedAt.Equal(t0.Add(2*time.Minute)) {
		t.Fatalf("verified_at should keep the first value: %+v, %v", got, err)
	}

	if err := db.MarkTokenVerified(ctx, "0195f3c2-7a10-7000-8000-0000000000ff", t0); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDB_CommitPassword(t *testing.T) {
	db, pool := newDB(t)
	ctx := context.Background()
	tok := token("0195f3c2-7a10-7000-8000-000000000010", t0)
	if err := db.CreateToken(ctx, tok); err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	in := entity.CommitPassword{TokenID: tok.ID, Role: entity.RoleStudent, Email: tok.Email, Password: "new-hash", At: t0.Add(3 * time.Minute)}
	if err := db.CommitPassword(ctx, in); err != nil {
		t.Fatalf("CommitPassword() error = %v", err)
	}

	var pw string
	if err := pool.QueryRow(ctx, `SELECT password FROM students WHERE email = $1`, tok.Email).Scan(&pw); err != nil || pw != "new-hash" {
		t.Fatalf("password = %q, %v", pw, err)
	}
	if _, err := db.GetUnusedToken(ctx, tok.ID, entity.RoleStudent, tok.Email); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("consumed token must not be returned, got %v", err)
	}

	in.Password = "replayed"
	if err := db.CommitPassword(ctx, in); !errors.Is(err, goerror.ErrConflict) {
		t.Fatalf("replay should conflict, got %v", err)
	}
}

func TestDB_CommitPasswordMissingAccountRollsBack(t *testing.T) {
	db, _ := newDB(t)
	ctx := context.Background()
	tok := token("0195f3c2-7a10-7000-8000-000000000020", t0)
	tok.Email = "ghost@mabini.edu.ph"
	if err := db.CreateToken(ctx, tok); err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	err := db.CommitPassword(ctx, entity.CommitPassword{TokenID: tok.ID, Role: entity.RoleStudent, Email: tok.Email, Password: "x", At: t0})
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := db.GetUnusedToken(ctx, tok.ID, entity.RoleStudent, tok.Email); err != nil {
		t.Fatalf("claim should have been rolled back: %v", err)
	}
}

func TestDB_CommitPasswordConcurrent(t *testing.T) {
	db, _ := newDB(t)
	ctx := context.Background()
	tok := token("0195f3c2-7a10-7000-8000-000000000030", t0)
	if err := db.CreateToken(ctx, tok); err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		won, lost int
	)
	for range 6 {
		wg.Go(func() {
			err := db.CommitPassword(ctx, entity.CommitPassword{TokenID: tok.ID, Role: entity.RoleStudent, Email: tok.Email, Password: "p", At: t0})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case errors.Is(err, goerror.ErrConflict):
				lost++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	if won != 1 || lost != 5 {
		t.Fatalf("won=%d lost=%d", won, lost)
	}
}

func TestDB_PurgeQueries(t *testing.T) {
	db, _ := newDB(t)
	ctx := context.Background()

	old := token("0195f3c2-7a10-7000-8000-000000000040", t0.Add(-48*time.Hour))
	fresh := token("0195f3c2-7a10-7000-8000-000000000041", t0)
	for _, tok := range []entity.ResetToken{old, fresh} {
		if err := db.CreateToken(ctx, tok); err != nil {
			t.Fatalf("CreateToken() error = %v", err)
		}
	}

	rows, err := db.ListPurgeableTokens(ctx, t0.Add(-24*time.Hour), 10)
	if err != nil || len(rows) != 1 || rows[0].ID != old.ID {
		t.Fatalf("ListPurgeableTokens() = %+v, %v", rows, err)
	}

	n, err := db.DeleteTokens(ctx, []string{old.ID})
	if err != nil || n != 1 {
		t.Fatalf("DeleteTokens() = %d, %v", n, err)
	}
	if n, _ := db.DeleteTokens(ctx, nil); n != 0 {
		t.Fatalf("empty delete should be a no-op")
	}
}
