package token

import (
	"time"
)

// OutstandingToken records every refresh token handed out.
type OutstandingToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	JTI       string    `gorm:"column:jti;type:varchar(64);not null;unique" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BlacklistedToken marks a refresh token revoked. The unique jti makes a
// second revocation of the same token fail.
type BlacklistedToken struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	JTI           string    `gorm:"column:jti;type:varchar(64);not null;unique" json:"jti"`
	BlacklistedAt time.Time `gorm:"autoCreateTime" json:"blacklisted_at"`
}
