package inbound

type SendOTPRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SendOTPResponse struct {
	EmailSent bool `json:"emailSent"`
	ExpiresIn int  `json:"expiresIn" example:"600"`
}

func (r SendOTPResponse) Message() string {
	if !r.EmailSent {
		return "OTP generated but email delivery may have failed. Please check your inbox or contact support."
	}
	return "OTP sent successfully to your email"
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Role  string `json:"role"`
}

type VerifyOTPResponse struct {
	ResetToken string `json:"resetToken"`
}

func (VerifyOTPResponse) Message() string {
	return "OTP verified successfully"
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
	Role        string `json:"role"`
}

type ResetPasswordResponse struct{}

func (ResetPasswordResponse) Message() string {
	return "Password reset successfully! You can now login with your new password"
}
