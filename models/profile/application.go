package profile

import (
	"time"
)

// Application is the single admission application of an applicant.
type Application struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint   `gorm:"not null;unique" json:"user_id"`
	ApplicationNumber uint   `gorm:"not null;unique" json:"application_number"`
	FormNumber        uint   `gorm:"not null;unique" json:"form_number"`
	Status            string `gorm:"column:application_status;type:varchar(10);not null;index" json:"application_status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
