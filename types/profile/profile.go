package profile

import "admission-portal/models/profile"

// PersonalInfoRequest is the full personal section, used by POST and PUT
type PersonalInfoRequest struct {
	DOB                 string          `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender              string          `json:"gender" validate:"required,oneof=male female other"`
	Nationality         string          `json:"nationality" validate:"required,max=100"`
	Religion            string          `json:"religion" validate:"max=100"`
	AadhaarNumber       string          `json:"aadhaar_number" validate:"required,len=12,numeric"`
	BloodGroup          string          `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	FatherName          string          `json:"father_name" validate:"max=100"`
	FatherQualification string          `json:"father_qualification" validate:"max=100"`
	FatherOccupation    string          `json:"father_occupation" validate:"max=100"`
	FatherContact       string          `json:"father_contact" validate:"omitempty,phone"`
	MotherName          string          `json:"mother_name" validate:"max=100"`
	MotherQualification string          `json:"mother_qualification" validate:"max=100"`
	MotherOccupation    string          `json:"mother_occupation" validate:"max=100"`
	MotherContact       string          `json:"mother_contact" validate:"omitempty,phone"`
	GuardianName        string          `json:"guardian_name" validate:"max=100"`
	GuardianRelation    string          `json:"guardian_relation" validate:"max=100"`
	GuardianOccupation  string          `json:"guardian_occupation" validate:"max=100"`
	GuardianContact     string          `json:"guardian_contact" validate:"omitempty,phone"`
	PermanentAddress    profile.Address `json:"permanent_address"`
	SameAsPermanent     bool            `json:"is_same_as_permanent_address"`
	CurrentAddress      profile.Address `json:"current_address"`
	CasteCategory       string          `json:"caste_category" validate:"omitempty,oneof=GEN OBC SC ST EWS"`
	Caste               string          `json:"caste" validate:"max=100"`
	CertificateIssuedBy string          `json:"caste_or_ews_certificate_issued_by" validate:"max=100"`
	CertificateNumber   string          `json:"caste_or_ews_certificate_number" validate:"max=50"`
}

// PersonalInfoPatch carries only the fields a PATCH wants to change
type PersonalInfoPatch struct {
	DOB              *string          `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string          `json:"gender" validate:"omitempty,oneof=male female other"`
	Nationality      *string          `json:"nationality" validate:"omitempty,max=100"`
	Religion         *string          `json:"religion" validate:"omitempty,max=100"`
	AadhaarNumber    *string          `json:"aadhaar_number" validate:"omitempty,len=12,numeric"`
	BloodGroup       *string          `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	FatherName       *string          `json:"father_name" validate:"omitempty,max=100"`
	FatherContact    *string          `json:"father_contact" validate:"omitempty,phone"`
	MotherName       *string          `json:"mother_name" validate:"omitempty,max=100"`
	MotherContact    *string          `json:"mother_contact" validate:"omitempty,phone"`
	GuardianName     *string          `json:"guardian_name" validate:"omitempty,max=100"`
	GuardianContact  *string          `json:"guardian_contact" validate:"omitempty,phone"`
	PermanentAddress *profile.Address `json:"permanent_address"`
	SameAsPermanent  *bool            `json:"is_same_as_permanent_address"`
	CurrentAddress   *profile.Address `json:"current_address"`
	CasteCategory    *string          `json:"caste_category" validate:"omitempty,oneof=GEN OBC SC ST EWS"`
	Caste            *string          `json:"caste" validate:"omitempty,max=100"`
}

// PersonalInfoResponse is the client view of PersonalInfo
type PersonalInfoResponse struct {
	profile.PersonalInfo
	DOB           string `json:"dob"`
	AadhaarNumber string `json:"aadhaar_number"`
	Age           Age    `json:"age"`
}

type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// EducationInfoRequest is the full education section, used by PUT
type EducationInfoRequest struct {
	IsAppearing         bool     `json:"is_appearing"`
	SchoolName          string   `json:"intermediate_school_name" validate:"required,max=100"`
	SchoolBoard         string   `json:"intermediate_school_board" validate:"required,max=100"`
	Grade               string   `json:"intermediate_grade" validate:"max=100"`
	RollNumber          string   `json:"intermediate_roll_number" validate:"required,max=50"`
	ObtainedMarks       int      `json:"intermediate_obtained_marks" validate:"gte=0,ltefield=TotalMarks"`
	TotalMarks          int      `json:"intermediate_total_marks" validate:"gte=0"`
	Percentage          *float64 `json:"intermediate_percentage" validate:"omitempty,gte=0,lte=100"`
	YearOfPassing       int      `json:"intermediate_year_of_passing" validate:"omitempty,gte=1950,lte=2100"`
	LastExamInstitution string   `json:"lastappearingexam_institution_name" validate:"max=100"`
	LastExamPlace       string   `json:"lastappearingexam_place" validate:"max=100"`
	LastExamBoard       string   `json:"lastappearingexam_board" validate:"max=100"`
	LastExamYear        int      `json:"lastappearingexam_year_of_passing" validate:"omitempty,gte=1950,lte=2100"`
	Activities          []string `json:"extra_curricular_activities" validate:"dive,oneof=NCC LITERACY NSS ATHLETICS CULTURAL ENVIRONMENT GAMES"`
}

// EducationInfoPatch carries only the fields a PATCH wants to change
type EducationInfoPatch struct {
	IsAppearing         *bool     `json:"is_appearing"`
	SchoolName          *string   `json:"intermediate_school_name" validate:"omitempty,max=100"`
	SchoolBoard         *string   `json:"intermediate_school_board" validate:"omitempty,max=100"`
	Grade               *string   `json:"intermediate_grade" validate:"omitempty,max=100"`
	RollNumber          *string   `json:"intermediate_roll_number" validate:"omitempty,max=50"`
	ObtainedMarks       *int      `json:"intermediate_obtained_marks" validate:"omitempty,gte=0"`
	TotalMarks          *int      `json:"intermediate_total_marks" validate:"omitempty,gte=0"`
	Percentage          *float64  `json:"intermediate_percentage" validate:"omitempty,gte=0,lte=100"`
	YearOfPassing       *int      `json:"intermediate_year_of_passing" validate:"omitempty,gte=1950,lte=2100"`
	LastExamInstitution *string   `json:"lastappearingexam_institution_name" validate:"omitempty,max=100"`
	LastExamPlace       *string   `json:"lastappearingexam_place" validate:"omitempty,max=100"`
	LastExamBoard       *string   `json:"lastappearingexam_board" validate:"omitempty,max=100"`
	LastExamYear        *int      `json:"lastappearingexam_year_of_passing" validate:"omitempty,gte=1950,lte=2100"`
	Activities          *[]string `json:"extra_curricular_activities" validate:"omitempty,dive,oneof=NCC LITERACY NSS ATHLETICS CULTURAL ENVIRONMENT GAMES"`
}

// EducationInfoResponse is the client view of EducationInfo
type EducationInfoResponse struct {
	profile.EducationInfo
	Activities []string `json:"extra_curricular_activities"`
}
