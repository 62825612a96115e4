package resetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 1 << 20

// Client speaks the three password reset endpoints of the portal API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for baseURL. A nil httpClient gets a traced
// client with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type SendOTPResult struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
	ExpiresIn int    `json:"expiresIn"`
}

func (c *Client) SendOTP(ctx context.Context, email, role string) (*SendOTPResult, error) {
	var out SendOTPResult
	err := c.post(ctx, "/api/password-reset/send-otp", map[string]string{
		"email": email,
		"role":  role,
	}, &out, ErrValidation)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, code, role string) (string, error) {
	var out struct {
		ResetToken string `json:"resetToken"`
	}
	err := c.post(ctx, "/api/password-reset/verify-otp", map[string]string{
		"email": email,
		"otp":   code,
		"role":  role,
	}, &out, ErrInvalidCode)
	if err != nil {
		return "", err
	}
	return out.ResetToken, nil
}

func (c *Client) ResetPassword(ctx context.Context, email, resetToken, newPassword, role string) error {
	return c.post(ctx, "/api/password-reset/reset-password", map[string]string{
		"email":       email,
		"resetToken":  resetToken,
		"newPassword": newPassword,
		"role":        role,
	}, nil, ErrInvalidToken)
}

func (c *Client) post(ctx context.Context, path string, in, out any, rejected error) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: ErrUpstream, Message: "Connection error. Please try again.", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &APIError{Kind: ErrUpstream, Status: resp.StatusCode, Message: "Connection error. Please try again.", Cause: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var body errorBody
		if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
			return &APIError{
				Kind:    kindOf(resp.StatusCode, errorBody{}, rejected),
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("Unexpected response (%d)", resp.StatusCode),
			}
		}
		return &APIError{
			Kind:       kindOf(resp.StatusCode, body, rejected),
			Status:     resp.StatusCode,
			Message:    body.Message,
			Expired:    body.Expired,
			Fields:     body.Error,
			RetryAfter: retryAfter(body.Error),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: ErrUpstream, Status: resp.StatusCode, Message: "Malformed response from server"}
	}
	return nil
}
