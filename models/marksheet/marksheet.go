package marksheet

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// ParseRequest records one marksheet upload and what was extracted from it.
type ParseRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID           uint   `json:"user_id" gorm:"not null;index"`
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"` // SHA256 hash
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	Board         string `json:"board" gorm:"type:varchar(255)"`
	RollNumber    string `json:"roll_number" gorm:"type:varchar(50)"`
	ObtainedMarks int    `json:"obtained_marks"`
	TotalMarks    int    `json:"total_marks"`
	YearOfPassing int    `json:"year_of_passing"`

	ErrorMessage string `json:"error_message" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for ParseRequest
func (ParseRequest) TableName() string {
	return "marksheet_parse_requests"
}

// BeforeCreate hook to set default values
func (r *ParseRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusProcessing
	}
	return nil
}

// MarkAsSuccess stores the extracted fields on the request row.
func (r *ParseRequest) MarkAsSuccess(db *gorm.DB, parsed *Result) error {
	r.Status = StatusSuccess
	r.Board = parsed.Board
	r.RollNumber = parsed.RollNumber
	r.ObtainedMarks = parsed.ObtainedMarks
	r.TotalMarks = parsed.TotalMarks
	r.YearOfPassing = parsed.YearOfPassing
	r.ProcessingTimeMs = parsed.ProcessingTimeMs

	return db.Save(r).Error
}

// MarkAsFailed marks the request as failed with error message
func (r *ParseRequest) MarkAsFailed(db *gorm.DB, errorMsg string, processingTime int64) error {
	r.Status = StatusFailed
	r.ErrorMessage = errorMsg
	r.ProcessingTimeMs = processingTime

	return db.Save(r).Error
}

// Result is the extracted marksheet data returned to the client for review.
type Result struct {
	RequestID        string `json:"request_id"`
	Board            string `json:"board"`
	RollNumber       string `json:"roll_number"`
	ObtainedMarks    int    `json:"obtained_marks"`
	TotalMarks       int    `json:"total_marks"`
	YearOfPassing    int    `json:"year_of_passing"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}
