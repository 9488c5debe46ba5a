package otp_event

import (
	"admission-portal/models/otp"

	"gorm.io/gorm"
)

// SnapshotOTPToEvent writes a snapshot of an OTP row into OTPEvent with the given event type.
// The code itself is never copied into the audit table.
func SnapshotOTPToEvent(tx *gorm.DB, channel otp.Channel, o *otp.OTP, eventType string) error {
	ev := otp.OTPEvent{
		OTPID:       o.ID,
		Channel:     channel,
		UserID:      o.UserID,
		Destination: o.Destination,
		Purpose:     o.Purpose,
		IsVerified:  o.IsVerified,
		ExpiresAt:   o.ExpiresAt,
		OTPCreated:  o.CreatedAt,
		EventType:   eventType,
	}

	return tx.Create(&ev).Error
}
