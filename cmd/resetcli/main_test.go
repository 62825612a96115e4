package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/resetclient"
)

func TestRun_FullFlow(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch r.URL.Path {
		case "/api/password-reset/send-otp":
			_, _ = w.Write([]byte(`{"success":true,"message":"OTP sent successfully to your email","emailSent":true,"expiresIn":600}`))
		case "/api/password-reset/verify-otp":
			if body["otp"] != "482913" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"success":false,"message":"Invalid OTP code. Please try again","code":"REJECTED"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"message":"OTP verified successfully","resetToken":"tok-1"}`))
		case "/api/password-reset/reset-password":
			_, _ = w.Write([]byte(`{"success":true,"message":"Password reset successfully! You can now login with your new password"}`))
		}
	}))
	defer srv.Close()

	ctrl := resetclient.NewController(resetclient.NewClient(srv.URL, srv.Client()), clock.New(), "student")
	in := strings.NewReader("ana@school.ph\n111111\n482913\nabcdef\nabcdef\n")
	var out bytes.Buffer

	// Act
	err := run(context.Background(), ctrl, in, &out)

	// Assert
	if err != nil {
		t.Fatalf("run() error = %v\n%s", err, out.String())
	}
	for _, want := range []string{
		"OTP sent successfully to your email",
		"Error: Invalid OTP code. Please try again",
		"Password reset successfully!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}
