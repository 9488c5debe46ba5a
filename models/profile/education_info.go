package profile

import (
	"strings"
	"time"
)

type EducationInfo struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;unique" json:"user_id"`

	IsAppearing         bool    `gorm:"default:false" json:"is_appearing"`
	SchoolName          string  `gorm:"type:varchar(100)" json:"intermediate_school_name"`
	SchoolBoard         string  `gorm:"type:varchar(100)" json:"intermediate_school_board"`
	Grade               string  `gorm:"type:varchar(100)" json:"intermediate_grade"`
	RollNumber          string  `gorm:"type:varchar(50);index" json:"intermediate_roll_number"`
	ObtainedMarks       int     `json:"intermediate_obtained_marks"`
	TotalMarks          int     `json:"intermediate_total_marks"`
	Percentage          float64 `gorm:"index" json:"intermediate_percentage"`
	YearOfPassing       int     `gorm:"index" json:"intermediate_year_of_passing"`
	LastExamInstitution string  `gorm:"type:varchar(100)" json:"lastappearingexam_institution_name"`
	LastExamPlace       string  `gorm:"type:varchar(100)" json:"lastappearingexam_place"`
	LastExamBoard       string  `gorm:"type:varchar(100)" json:"lastappearingexam_board"`
	LastExamYear        int     `json:"lastappearingexam_year_of_passing"`
	ExtraCurricular     string  `gorm:"type:varchar(100);index" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SetActivities stores activities as a comma separated list.
func (e *EducationInfo) SetActivities(activities []string) {
	e.ExtraCurricular = strings.Join(activities, ",")
}

func (e *EducationInfo) Activities() []string {
	if e.ExtraCurricular == "" {
		return []string{}
	}
	return strings.Split(e.ExtraCurricular, ",")
}
