package otp

import (
	"time"
)

// OTPEvent is an audit snapshot of an OTP row taken at a lifecycle event.
type OTPEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	OTPID       uint       `gorm:"column:otp_id;not null;index" json:"otp_id"`
	Channel     Channel    `gorm:"type:varchar(10);not null" json:"channel"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Destination string     `gorm:"type:varchar(255);not null" json:"destination"`
	Purpose     OTPPurpose `gorm:"type:varchar(50);not null" json:"purpose"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	OTPCreated  time.Time  `gorm:"column:otp_created_at" json:"otp_created_at"`

	EventType string    `gorm:"type:varchar(50);not null" json:"event_type"` // created, verified, expired, mismatch
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	EventCreated  = "created"
	EventVerified = "verified"
	EventExpired  = "expired"
	EventMismatch = "mismatch"
)
