package resetclient

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func stubServer(t *testing.T, status int, body string, seen *map[string]string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", srv.Client())
}

func TestClient_SendOTP(t *testing.T) {
	// Arrange
	var seen map[string]string
	c := stubServer(t, http.StatusOK, `{"success":true,"message":"OTP sent successfully to your email","emailSent":true,"expiresIn":600}`, &seen)

	// Act
	res, err := c.SendOTP(context.Background(), "ana@school.ph", "student")

	// Assert
	if err != nil {
		t.Fatalf("SendOTP() error = %v", err)
	}
	if !res.EmailSent || res.ExpiresIn != 600 || res.Message != "OTP sent successfully to your email" {
		t.Fatalf("unexpected result %+v", res)
	}
	if seen["email"] != "ana@school.ph" || seen["role"] != "student" {
		t.Fatalf("unexpected request %v", seen)
	}
}

func TestClient_VerifyOTP(t *testing.T) {
	var seen map[string]string
	c := stubServer(t, http.StatusOK, `{"success":true,"message":"OTP verified successfully","resetToken":"tok-1"}`, &seen)

	token, err := c.VerifyOTP(context.Background(), "ana@school.ph", "482913", "student")

	if err != nil || token != "tok-1" || seen["otp"] != "482913" {
		t.Fatalf("token=%q err=%v seen=%v", token, err, seen)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		status   int
		body     string
		wantKind error
		wantMsg  string
	}{
		{
			name:     "invalid code",
			call:     verifyCall,
			status:   400,
			body:     `{"success":false,"message":"Invalid OTP code. Please try again","code":"REJECTED"}`,
			wantKind: ErrInvalidCode,
			wantMsg:  "Invalid OTP code. Please try again",
		},
		{
			name:     "invalid token",
			call:     resetCall,
			status:   400,
			body:     `{"success":false,"message":"Invalid or expired reset token","code":"REJECTED"}`,
			wantKind: ErrInvalidToken,
		},
		{
			name:     "expired flag",
			call:     verifyCall,
			status:   400,
			body:     `{"success":false,"message":"OTP has expired. Please request a new one","code":"EXPIRED","expired":true}`,
			wantKind: ErrExpired,
		},
		{
			name:     "not verified",
			call:     resetCall,
			status:   400,
			body:     `{"success":false,"message":"Token not verified. Please verify OTP first","code":"NOT_VERIFIED"}`,
			wantKind: ErrNotVerified,
		},
		{
			name:     "validation",
			call:     sendCall,
			status:   400,
			body:     `{"success":false,"message":"Validation error","code":"INVALID_INPUT","error":{"email":"email must be a valid email"}}`,
			wantKind: ErrValidation,
		},
		{
			name:     "not found",
			call:     sendCall,
			status:   404,
			body:     `{"success":false,"message":"No student account found with this email address","code":"NOT_FOUND"}`,
			wantKind: ErrNotFound,
		},
		{
			name:     "forbidden",
			call:     sendCall,
			status:   403,
			body:     `{"success":false,"message":"Account is not active. Please contact administration","code":"FORBIDDEN"}`,
			wantKind: ErrForbidden,
		},
		{
			name:     "upstream",
			call:     resetCall,
			status:   500,
			body:     `{"success":false,"message":"Failed to update password","code":"INTERNAL"}`,
			wantKind: ErrUpstream,
		},
		{
			name:     "no code falls back to status",
			call:     sendCall,
			status:   429,
			body:     `{"success":false,"message":"Please wait before requesting another code"}`,
			wantKind: ErrThrottled,
		},
		{
			name:     "non json body",
			call:     sendCall,
			status:   502,
			body:     `<html>bad gateway</html>`,
			wantKind: ErrUpstream,
			wantMsg:  "Unexpected response (502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stubServer(t, tt.status, tt.body, nil)

			err := tt.call(c)

			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Status != tt.status {
				t.Fatalf("expected APIError with status %d, got %#v", tt.status, err)
			}
			if tt.wantMsg != "" && apiErr.Message != tt.wantMsg {
				t.Fatalf("message = %q", apiErr.Message)
			}
		})
	}
}

func TestClient_ThrottledRetryAfter(t *testing.T) {
	c := stubServer(t, 429, `{"success":false,"message":"Please wait before requesting another code","code":"TOO_MANY_REQUESTS","error":{"retryAfter":"42"}}`, nil)

	_, err := c.SendOTP(context.Background(), "ana@school.ph", "student")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.RetryAfter != 42 || !errors.Is(err, ErrThrottled) {
		t.Fatalf("err = %#v", err)
	}
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(srv.URL, nil)
	srv.Close()

	_, err := c.SendOTP(context.Background(), "ana@school.ph", "student")

	if !errors.Is(err, ErrUpstream) || err.Error() != "Connection error. Please try again." {
		t.Fatalf("err = %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Cause == nil {
		t.Fatalf("transport cause lost: %#v", err)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("cause = %v, want *net.OpError reachable", apiErr.Cause)
	}
}

func sendCall(c *Client) error {
	_, err := c.SendOTP(context.Background(), "ana@school.ph", "student")
	return err
}

func verifyCall(c *Client) error {
	_, err := c.VerifyOTP(context.Background(), "ana@school.ph", "482913", "student")
	return err
}

func resetCall(c *Client) error {
	return c.ResetPassword(context.Background(), "ana@school.ph", "tok", "abcdef", "student")
}
