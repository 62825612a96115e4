package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"github.com/mabinihs/portal/internal/passwordreset/usecase"
	"github.com/mabinihs/portal/internal/pkg/config"
	"github.com/mabinihs/portal/internal/pkg/goerror"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/router"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"go.uber.org/atomic"
)

type fakeUC struct {
	issueOut  *usecase.IssueCodeOutput
	verifyOut *usecase.VerifyCodeOutput
	err       error

	lastIssue  usecase.IssueCodeInput
	lastVerify usecase.VerifyCodeInput
	lastCommit usecase.CommitSecretInput
	purges     atomic.Int32
}

func (f *fakeUC) IssueCode(_ context.Context, in usecase.IssueCodeInput) (*usecase.IssueCodeOutput, error) {
	f.lastIssue = in
	return f.issueOut, f.err
}

func (f *fakeUC) VerifyCode(_ context.Context, in usecase.VerifyCodeInput) (*usecase.VerifyCodeOutput, error) {
	f.lastVerify = in
	return f.verifyOut, f.err
}

func (f *fakeUC) CommitSecret(_ context.Context, in usecase.CommitSecretInput) error {
	f.lastCommit = in
	return f.err
}

func (f *fakeUC) PurgeTokens(context.Context) (*entity.PurgeResult, error) {
	f.purges.Inc()
	return &entity.PurgeResult{}, f.err
}

func newServer(t *testing.T, f *fakeUC) http.Handler {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: portal\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, f)
	return r
}

func post(t *testing.T, h http.Handler, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %q", rec.Body.String())
	}
	return rec.Code, out
}

func TestSendOTP(t *testing.T) {
	tests := []struct {
		name      string
		emailSent bool
		msg       string
	}{
		{name: "delivered", emailSent: true, msg: "OTP sent successfully to your email"},
		{name: "delivery failed", emailSent: false, msg: "OTP generated but email delivery may have failed. Please check your inbox or contact support."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := &fakeUC{issueOut: &usecase.IssueCodeOutput{EmailSent: tt.emailSent, ExpiresIn: 600}}
			h := newServer(t, f)

			// Act
			code, body := post(t, h, "/api/password-reset/send-otp", `{"email":"ana@mabini.edu.ph","role":"student"}`)

			// Assert
			if code != http.StatusOK || body["success"] != true || body["message"] != tt.msg {
				t.Fatalf("code=%d body=%v", code, body)
			}
			if body["emailSent"] != tt.emailSent || body["expiresIn"] != float64(600) {
				t.Fatalf("unexpected payload: %v", body)
			}
			if f.lastIssue.Email != "ana@mabini.edu.ph" || f.lastIssue.Role != "student" {
				t.Fatalf("input not forwarded: %+v", f.lastIssue)
			}
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	f := &fakeUC{verifyOut: &usecase.VerifyCodeOutput{ResetToken: "0195f3c2-7a10-7000-8000-000000000001"}}
	h := newServer(t, f)

	code, body := post(t, h, "/api/password-reset/verify-otp", `{"email":"ana@mabini.edu.ph","otp":"482913","role":"student"}`)

	if code != http.StatusOK || body["resetToken"] != "0195f3c2-7a10-7000-8000-000000000001" || body["message"] != "OTP verified successfully" {
		t.Fatalf("code=%d body=%v", code, body)
	}
	if f.lastVerify.Code != "482913" {
		t.Fatalf("otp not forwarded: %+v", f.lastVerify)
	}
}

func TestResetPassword(t *testing.T) {
	f := &fakeUC{}
	h := newServer(t, f)

	code, body := post(t, h, "/api/password-reset/reset-password",
		`{"email":"ana@mabini.edu.ph","resetToken":"tok","newPassword":"bagong-sikreto","role":"student"}`)

	if code != http.StatusOK || body["message"] != "Password reset successfully! You can now login with your new password" {
		t.Fatalf("code=%d body=%v", code, body)
	}
	if f.lastCommit.NewPassword != "bagong-sikreto" || f.lastCommit.ResetToken != "tok" {
		t.Fatalf("input not forwarded: %+v", f.lastCommit)
	}
}

func TestEndpoints_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		err     error
		status  int
		msg     string
		expired bool
	}{
		{name: "malformed body", path: "/api/password-reset/send-otp", body: `{`, status: http.StatusBadRequest, msg: "Email and role are required"},
		{name: "not found", path: "/api/password-reset/send-otp", body: `{}`, err: goerror.NewBusiness("No teacher account found with this email address", goerror.CodeNotFound), status: http.StatusNotFound, msg: "No teacher account found with this email address"},
		{name: "forbidden", path: "/api/password-reset/send-otp", body: `{}`, err: goerror.NewBusiness("Account is not active. Please contact administration", goerror.CodeForbidden), status: http.StatusForbidden},
		{name: "throttled", path: "/api/password-reset/send-otp", body: `{}`, err: goerror.NewBusiness("Please wait before requesting another code", goerror.CodeTooManyRequest), status: http.StatusTooManyRequests},
		{name: "invalid code", path: "/api/password-reset/verify-otp", body: `{}`, err: goerror.NewBusiness("Invalid OTP code. Please try again", goerror.CodeRejected), status: http.StatusBadRequest},
		{name: "expired code", path: "/api/password-reset/verify-otp", body: `{}`, err: goerror.NewBusiness("OTP has expired. Please request a new one", goerror.CodeExpired), status: http.StatusBadRequest, expired: true},
		{name: "not verified", path: "/api/password-reset/reset-password", body: `{}`, err: goerror.NewBusiness("Token not verified. Please verify OTP first", goerror.CodeNotVerified), status: http.StatusBadRequest},
		{name: "upstream", path: "/api/password-reset/reset-password", body: `{}`, err: goerror.NewServerMsg(context.DeadlineExceeded, "Failed to update password. Please try again"), status: http.StatusInternalServerError, msg: "Failed to update password. Please try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeUC{err: tt.err}
			h := newServer(t, f)

			code, body := post(t, h, tt.path, tt.body)

			if code != tt.status || body["success"] != false {
				t.Fatalf("code=%d body=%v", code, body)
			}
			if tt.msg != "" && body["message"] != tt.msg {
				t.Fatalf("message = %v, want %q", body["message"], tt.msg)
			}
			if got, _ := body["expired"].(bool); got != tt.expired {
				t.Fatalf("expired = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestEndpoints_Methods(t *testing.T) {
	h := newServer(t, &fakeUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/password-reset/send-otp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed || !strings.Contains(rec.Body.String(), "Method not allowed") {
		t.Fatalf("GET: code=%d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/password-reset/verify-otp", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("OPTIONS: code=%d headers=%v", rec.Code, rec.Header())
	}
}
