package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/pkg/config"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/jwt"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/pkg/validator"
)

type sendResp struct {
	EmailSent bool `json:"emailSent"`
	ExpiresIn int  `json:"expiresIn"`
}

func (sendResp) Message() string { return "OTP sent successfully to your email" }

func newTestRouter(t *testing.T, yaml string, signer jwt.JWT) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	return NewRouter(Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        signer,
		Instrument: instrument.NewNoop(),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	// Arrange
	r := newTestRouter(t, "app: {}", nil)
	r.POST("/api/password-reset/send-otp", func(*Request) (any, error) {
		return sendResp{EmailSent: true, ExpiresIn: 600}, nil
	})

	// Act
	rec, body := do(t, r, http.MethodPost, "/api/password-reset/send-otp", `{}`, nil)

	// Assert
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != true || body["message"] != "OTP sent successfully to your email" {
		t.Fatalf("unexpected envelope %v", body)
	}
	if body["emailSent"] != true || body["expiresIn"] != float64(600) {
		t.Fatalf("fields not flattened: %v", body)
	}
	if rec.Header().Get(HeaderCorrelationID) == "" {
		t.Fatalf("correlation id header missing")
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantExpired bool
		wantField   string
	}{
		{
			name:        "expired",
			err:         goerror.NewBusiness("OTP has expired. Please request a new one", goerror.CodeExpired),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "OTP has expired. Please request a new one",
			wantExpired: true,
		},
		{
			name:        "validation",
			err:         goerror.NewInvalidInput(validator.V10ValidationError{"email": "email is required"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation error",
			wantField:   "email",
		},
		{
			name:        "not found",
			err:         goerror.NewBusiness("No student account found with this email address", goerror.CodeNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "No student account found with this email address",
		},
		{
			name:        "plain error",
			err:         errors.New("pg down"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, "app: {}", nil)
			r.POST("/x", func(*Request) (any, error) { return nil, tt.err })

			rec, body := do(t, r, http.MethodPost, "/x", `{}`, nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body["success"] != false || body["message"] != tt.wantMessage {
				t.Fatalf("unexpected body %v", body)
			}
			if _, ok := body["code"].(string); !ok {
				t.Fatalf("error code missing in %v", body)
			}
			if _, has := body["expired"]; has != tt.wantExpired {
				t.Fatalf("expired flag presence = %v, want %v", has, tt.wantExpired)
			}
			if tt.wantField != "" {
				fields, _ := body["error"].(map[string]any)
				if _, ok := fields[tt.wantField]; !ok {
					t.Fatalf("field %q missing in %v", tt.wantField, body)
				}
			}
		})
	}
}

func TestRouter_OptionsAndMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, "app: {}", nil)
	r.POST("/api/password-reset/verify-otp", func(*Request) (any, error) { return nil, nil })

	rec, _ := do(t, r, http.MethodOptions, "/api/password-reset/verify-otp", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("OPTIONS status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" ||
		rec.Header().Get("Access-Control-Allow-Methods") != "POST, OPTIONS" ||
		rec.Header().Get("Access-Control-Allow-Headers") != "Content-Type" {
		t.Fatalf("cors headers = %v", rec.Header())
	}

	rec, body := do(t, r, http.MethodGet, "/api/password-reset/verify-otp", "", nil)
	if rec.Code != http.StatusMethodNotAllowed || body["message"] != "Method not allowed" || body["success"] != false {
		t.Fatalf("405 = %d %v", rec.Code, body)
	}
}

func TestRouter_PreflightWithOrigin(t *testing.T) {
	r := newTestRouter(t, "app: {}", nil)
	r.POST("/api/password-reset/reset-password", func(*Request) (any, error) { return nil, nil })

	rec, _ := do(t, r, http.MethodOptions, "/api/password-reset/reset-password", "", map[string]string{
		"Origin":                         "https://portal.example",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Content-Type",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" ||
		rec.Header().Get("Access-Control-Allow-Methods") != "POST, OPTIONS" ||
		rec.Header().Get("Access-Control-Allow-Headers") != "Content-Type" {
		t.Fatalf("preflight cors headers = %v", rec.Header())
	}
}

func TestRouter_PreflightDisallowedOrigin(t *testing.T) {
	r := newTestRouter(t, "http:\n  cors:\n    allowed_origins: [\"https://portal.mabini.edu.ph\"]\n", nil)
	r.POST("/api/password-reset/send-otp", func(*Request) (any, error) { return nil, nil })

	allowed, _ := do(t, r, http.MethodOptions, "/api/password-reset/send-otp", "", map[string]string{
		"Origin":                        "https://portal.mabini.edu.ph",
		"Access-Control-Request-Method": http.MethodPost,
	})
	denied, _ := do(t, r, http.MethodOptions, "/api/password-reset/send-otp", "", map[string]string{
		"Origin":                        "https://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})

	if got := allowed.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.mabini.edu.ph" {
		t.Fatalf("allowed origin = %q", got)
	}
	if got := denied.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin must not be echoed, got %q", got)
	}
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /api/sms/send\n", nil)
	r.POST("/api/sms/send", func(*Request) (any, error) { return nil, nil })

	rec, body := do(t, r, http.MethodPost, "/api/sms/send", `{}`, nil)
	if rec.Code != http.StatusServiceUnavailable || body["success"] != false {
		t.Fatalf("maintenance = %d %v", rec.Code, body)
	}
}

func TestRouter_RecoversPanic(t *testing.T) {
	r := newTestRouter(t, "app: {}", nil)
	r.POST("/boom", func(*Request) (any, error) { panic("nil map") })

	rec, body := do(t, r, http.MethodPost, "/boom", `{}`, nil)
	if rec.Code != http.StatusInternalServerError || body["message"] != "Internal server error" {
		t.Fatalf("panic response = %d %v", rec.Code, body)
	}
}

func TestRouter_ServiceAuth(t *testing.T) {
	// Arrange
	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    bytes.Repeat([]byte("s"), 64),
		Issuer:    "portal",
		Audiences: []string{"relay"},
		TTL:       time.Minute,
		Clock:     clock.New(),
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	r := newTestRouter(t, "app: {}", signer)
	r.POST("/api/sms/send", func(req *Request) (any, error) {
		return map[string]string{"caller": jwt.GetAuth(req.Context()).Subject}, nil
	}, r.ServiceAuth("sms:send"))

	good, _ := signer.Generate("kiosk", "sms:send")
	wrongScope, _ := signer.Generate("kiosk", "email:send")

	// Act & Assert
	rec, _ := do(t, r, http.MethodPost, "/api/sms/send", `{}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d", rec.Code)
	}

	rec, _ = do(t, r, http.MethodPost, "/api/sms/send", `{}`, map[string]string{"Authorization": "Bearer " + wrongScope})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong scope = %d", rec.Code)
	}

	rec, body := do(t, r, http.MethodPost, "/api/sms/send", `{}`, map[string]string{"Authorization": "Bearer " + good})
	if rec.Code != http.StatusOK || body["caller"] != "kiosk" {
		t.Fatalf("good token = %d %v", rec.Code, body)
	}
}

func TestRequest_DecodeBody(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}

	ok := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","extra":1}`))}
	if err := ok.DecodeBody(&dst); err != nil || dst.Email != "a@b.co" {
		t.Fatalf("DecodeBody() = %v %v", dst, err)
	}

	bad := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))}
	err := bad.DecodeBody(&dst, "Email, OTP, and role are required")
	var ge *goerror.Error
	if !errors.As(err, &ge) || ge.Msg() != "Email, OTP, and role are required" {
		t.Fatalf("expected custom invalid format, got %v", err)
	}

	twice := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))}
	if err := twice.DecodeBody(&dst); goerror.CodeOf(err) != goerror.CodeInvalidFormat {
		t.Fatalf("expected invalid format for trailing data, got %v", err)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("clientIP() = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("clientIP() with XFF = %q", got)
	}
}
