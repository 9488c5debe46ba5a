package otp

// SendEmailOTPRequest represents the request payload for sending an email OTP
type SendEmailOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmEmailOTPRequest represents the request payload for verifying an email OTP
type ConfirmEmailOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// SendPhoneOTPRequest represents the request payload for sending a phone OTP
type SendPhoneOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

// ConfirmPhoneOTPRequest represents the request payload for verifying a phone OTP
type ConfirmPhoneOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// ConfirmResetRequest represents the request payload for completing a password reset
type ConfirmResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required"`
}

// OTPResponse represents the data of an OTP send response
type OTPResponse struct {
	ExpiresAt string `json:"expires_at"`
	OTP       string `json:"otp,omitempty"`
}
