package profile

import (
	"time"
)

// PersonalInfo is the applicant's personal section. AadhaarNumber holds the
// AES-GCM ciphertext, never the plain number.
type PersonalInfo struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;unique" json:"user_id"`

	DOB           time.Time `gorm:"type:date;not null;index" json:"dob"`
	Gender        string    `gorm:"type:varchar(10);not null" json:"gender"`
	Nationality   string    `gorm:"type:varchar(100);not null" json:"nationality"`
	Religion      string    `gorm:"type:varchar(100)" json:"religion"`
	AadhaarNumber string    `gorm:"type:text;not null" json:"-"`
	BloodGroup    string    `gorm:"type:varchar(10)" json:"blood_group"`

	FatherName          string `gorm:"type:varchar(100)" json:"father_name"`
	FatherQualification string `gorm:"type:varchar(100)" json:"father_qualification"`
	FatherOccupation    string `gorm:"type:varchar(100)" json:"father_occupation"`
	FatherContact       string `gorm:"type:varchar(20)" json:"father_contact"`
	MotherName          string `gorm:"type:varchar(100)" json:"mother_name"`
	MotherQualification string `gorm:"type:varchar(100)" json:"mother_qualification"`
	MotherOccupation    string `gorm:"type:varchar(100)" json:"mother_occupation"`
	MotherContact       string `gorm:"type:varchar(20)" json:"mother_contact"`
	GuardianName        string `gorm:"type:varchar(100)" json:"guardian_name"`
	GuardianRelation    string `gorm:"type:varchar(100)" json:"guardian_relation"`
	GuardianOccupation  string `gorm:"type:varchar(100)" json:"guardian_occupation"`
	GuardianContact     string `gorm:"type:varchar(20)" json:"guardian_contact"`

	PermanentAddress    Address `gorm:"embedded;embeddedPrefix:permanent_" json:"permanent_address"`
	SameAsPermanent     bool    `gorm:"default:false" json:"is_same_as_permanent_address"`
	CurrentAddress      Address `gorm:"embedded;embeddedPrefix:current_" json:"current_address"`
	CasteCategory       string  `gorm:"type:varchar(100);index" json:"caste_category"`
	Caste               string  `gorm:"type:varchar(100)" json:"caste"`
	CertificateIssuedBy string  `gorm:"type:varchar(100)" json:"caste_or_ews_certificate_issued_by"`
	CertificateNumber   string  `gorm:"type:varchar(50)" json:"caste_or_ews_certificate_number"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Address is embedded twice into PersonalInfo.
type Address struct {
	Country string `gorm:"type:varchar(100)" json:"country"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	PinCode string `gorm:"type:varchar(10)" json:"pin_code"`
	Address string `gorm:"type:text" json:"address"`
}
