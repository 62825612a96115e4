package archive

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/seal"
	"github.com/mabinihs/portal/internal/pkg/storage"
	"github.com/mabinihs/portal/internal/pkg/uid"
)

func TestArchive_RoundTrip(t *testing.T) {
	// Arrange
	store := storage.NewMemory()
	sealer, err := seal.NewAESGCM(bytes.Repeat([]byte{7}, 32))
	if err != nil {
		t.Fatalf("NewAESGCM() error = %v", err)
	}
	oid, err := uid.NewObjectID()
	if err != nil {
		t.Fatalf("NewObjectID() error = %v", err)
	}
	now := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	a, err := New(store, sealer, oid, clock.NewManual(now), instrument.NewNoop(), Config{Bucket: "archive"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	usedAt := now.Add(-25 * time.Hour)
	rows := []entity.ResetToken{
		{ID: "a", Role: entity.RoleStudent, Email: "ana@mabini.edu.ph", CodeHash: "secret-hash", ExpiresAt: now, CreatedAt: now, Used: true, UsedAt: &usedAt},
		{ID: "b", Role: entity.RoleTeacher, Email: "carla@mabini.edu.ph", ExpiresAt: now, CreatedAt: now},
	}

	// Act
	key, err := a.Archive(context.Background(), rows)

	// Assert
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if !strings.HasPrefix(key, "password-reset-tokens/2026/03/02/") || !strings.HasSuffix(key, ".jsonl.enc") {
		t.Fatalf("unexpected key %q", key)
	}

	rc, info, err := store.GetObject(context.Background(), "archive", key)
	if err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}
	defer rc.Close()
	blob, _ := io.ReadAll(rc)
	if info.Metadata["rows"] != "2" {
		t.Fatalf("metadata = %v", info.Metadata)
	}
	if bytes.Contains(blob, []byte("ana@mabini.edu.ph")) {
		t.Fatalf("archive must be sealed")
	}

	plain, err := sealer.Open(blob, key)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if bytes.Contains(plain, []byte("secret-hash")) {
		t.Fatalf("code hash must not be archived")
	}

	var got []row
	sc := bufio.NewScanner(bytes.NewReader(plain))
	for sc.Scan() {
		var r row
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		got = append(got, r)
	}
	if len(got) != 2 || got[0].UserType != "student" || got[0].UsedAt == nil || got[1].VerifiedAt != nil {
		t.Fatalf("unexpected rows: %+v", got)
	}

	if _, err := sealer.Open(blob, "other-key"); err == nil {
		t.Fatalf("sealed blob must be bound to its key")
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(storage.NewMemory(), nil, nil, nil, instrument.NewNoop(), Config{}); err != ErrBucketRequired {
		t.Fatalf("expected ErrBucketRequired, got %v", err)
	}
}
