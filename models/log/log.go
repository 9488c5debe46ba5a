package log

import (
	"time"
)

// Log is one persisted HTTP exchange. Bodies are masked before they get here.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int;index" json:"status_code"`
	UserID          *uint     `gorm:"index" json:"user_id,omitempty"`
	LatencyMs       int64     `json:"latency_ms"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Log) TableName() string {
	return "request_logs"
}
