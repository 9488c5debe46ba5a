package otp

import (
	"time"
)

// Channel is the delivery medium of an OTP. Each channel has its own table.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// Table returns the table holding OTP rows of the channel.
func (c Channel) Table() string {
	if c == ChannelPhone {
		return "phone_otps"
	}
	return "email_otps"
}

// OTPPurpose represents the purpose of the OTP
type OTPPurpose string

const (
	OTPPurposeVerification  OTPPurpose = "verification"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTP is a one-time passcode issued to a destination on behalf of an account.
// Rows are never deleted by the engine; older unverified rows are superseded
// by newer ones.
type OTP struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Destination string     `gorm:"type:varchar(255);not null;index" json:"destination"`
	Code        string     `gorm:"type:varchar(6);not null" json:"-"`
	Purpose     OTPPurpose `gorm:"type:varchar(50);not null" json:"purpose"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

// IsExpired checks if the OTP has expired at t
func (o *OTP) IsExpired(t time.Time) bool {
	return o.ExpiresAt.Before(t)
}
