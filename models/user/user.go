package user

import (
	"time"
)

// User is an applicant or admin account.
type User struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string `gorm:"type:varchar(150);not null;unique" json:"username"`
	FirstName     string `gorm:"type:varchar(150)" json:"first_name"`
	LastName      string `gorm:"type:varchar(150)" json:"last_name"`
	Email         string `gorm:"type:varchar(255);not null;unique;index:idx_users_type_email,priority:2" json:"email"`
	EmailVerified bool   `gorm:"type:bool;default:false" json:"email_verified"`
	Phone         string `gorm:"type:varchar(20);not null;unique" json:"phone"`
	PhoneVerified bool   `gorm:"type:bool;default:false" json:"phone_verified"`
	Password      string `gorm:"type:varchar(255);not null" json:"-"`
	UserType      string `gorm:"type:varchar(10);not null;index;index:idx_users_type_email,priority:1" json:"user_type"`
	IsActive      bool   `gorm:"type:bool;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FullyVerified reports whether both channels have been confirmed.
func (u *User) FullyVerified() bool {
	return u.EmailVerified && u.PhoneVerified
}

// PublicUser is the projection of User returned to clients.
type PublicUser struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	UserType      string    `json:"user_type"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		UserType:      u.UserType,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
