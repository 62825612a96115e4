package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestMaskHandler_MasksNestedKeys(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	keys := MaskKeys([]string{" newPassword ", "OTP", ""})
	logger := slog.New(&contextHandler{
		Handler: &maskHandler{next: slog.NewJSONHandler(&buf, nil), keys: keys},
		service: "portal",
	})
	ctx := SetCorrelationID(context.Background(), "cid-1")

	// Act
	logger.InfoContext(ctx, "request received",
		"body", map[string]any{"email": "a@b.co", "newPassword": "hunter22", "otp": "123456"},
		"otp", "654321",
		"raw", `{"otp":"111111","role":"student"}`,
	)

	// Assert
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	body := out["body"].(map[string]any)
	if body["newPassword"] != "***" || body["otp"] != "***" || body["email"] != "a@b.co" {
		t.Fatalf("body not masked: %v", body)
	}
	if out["otp"] != "***" {
		t.Fatalf("top-level otp not masked: %v", out["otp"])
	}
	if out["raw"] != `{"otp":"***","role":"student"}` {
		t.Fatalf("json string not masked: %v", out["raw"])
	}
	if out["_cID"] != "cid-1" || out["service"] != "portal" {
		t.Fatalf("context attrs missing: %v", out)
	}
}

func TestMaskHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&maskHandler{next: slog.NewJSONHandler(&buf, nil), keys: MaskKeys([]string{"apikey"})})

	logger.With("apikey", "secret").Info("sms sent")

	if bytes.Contains(buf.Bytes(), []byte("secret")) {
		t.Fatalf("secret leaked: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != slog.LevelDebug || parseLevel("WARN") != slog.LevelWarn || parseLevel("nonsense") != slog.LevelInfo {
		t.Fatalf("unexpected level parsing")
	}
}

func TestCorrelationID(t *testing.T) {
	if GetCorrelationID(context.Background()) != "" {
		t.Fatalf("expected empty cID")
	}
	ctx := SetCorrelationID(context.Background(), "abc")
	if GetCorrelationID(ctx) != "abc" {
		t.Fatalf("cID not stored")
	}
}

func TestNew_Disabled(t *testing.T) {
	ins, err := New(context.Background(), &Config{Enabled: false, ServiceName: "portal"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()
	if err := ins.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}
