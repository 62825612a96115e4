package inbound

import (
	"github.com/mabinihs/portal/internal/passwordreset/usecase"
	"github.com/mabinihs/portal/internal/pkg/router"
)

// HTTPEndpoint exposes the three password reset steps.
type HTTPEndpoint struct {
	uc uc
}

// SendOTP issues a one-time code to the account's email.
// @Summary Request a password reset code
// @Description Generates a 6-digit code valid for 10 minutes and emails it. Delivery failure still answers 200 with emailSent=false.
// @Tags Password Reset
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Identity and role"
// @Success 200 {object} SendOTPResponse "Code issued"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 403 {object} router.errorResponse "Account is not active"
// @Failure 404 {object} router.errorResponse "No account found"
// @Failure 429 {object} router.errorResponse "Cooldown in effect"
// @Failure 500 {object} router.errorResponse "Database error occurred"
// @Router /api/password-reset/send-otp [post]
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req, "Email and role are required"); err != nil {
		return nil, err
	}

	resp, err := h.uc.IssueCode(r.Context(), usecase.IssueCodeInput{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{EmailSent: resp.EmailSent, ExpiresIn: resp.ExpiresIn}, nil
}

// VerifyOTP exchanges a valid code for a reset token.
// @Summary Verify a password reset code
// @Tags Password Reset
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Identity, code and role"
// @Success 200 {object} VerifyOTPResponse "Code verified"
// @Failure 400 {object} router.errorResponse "Invalid, malformed or expired code"
// @Failure 500 {object} router.errorResponse "Database error occurred"
// @Router /api/password-reset/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req, "Email, OTP, and role are required"); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyCode(r.Context(), usecase.VerifyCodeInput{
		Email: req.Email,
		Code:  req.OTP,
		Role:  req.Role,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{ResetToken: resp.ResetToken}, nil
}

// ResetPassword sets the new password using a verified reset token.
// @Summary Set a new password
// @Tags Password Reset
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Identity, reset token, new password and role"
// @Success 200 {object} ResetPasswordResponse "Password changed"
// @Failure 400 {object} router.errorResponse "Invalid, unverified or expired token"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Failed to update password"
// @Router /api/password-reset/reset-password [post]
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req, "All fields are required"); err != nil {
		return nil, err
	}

	if err := h.uc.CommitSecret(r.Context(), usecase.CommitSecretInput{
		Email:       req.Email,
		ResetToken:  req.ResetToken,
		NewPassword: req.NewPassword,
		Role:        req.Role,
	}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{}, nil
}
