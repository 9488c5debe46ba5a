// Package profile stores the personal and education sections of an applicant.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"admission-portal/apperrors"
	"admission-portal/logger"
	"admission-portal/models/profile"
	profiletypes "admission-portal/types/profile"
	"admission-portal/utils"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	db     *gorm.DB
	cipher *utils.Cipher
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for age calculation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *gorm.DB, cipher *utils.Cipher, opts ...Option) *Service {
	s := &Service{db: db, cipher: cipher, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/*=============================================================================
| Personal info
===============================================================================*/

func (s *Service) GetPersonalInfo(ctx context.Context, userID uint) (*profiletypes.PersonalInfoResponse, error) {
	info, err := s.loadPersonalInfo(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return s.personalResponse(info)
}

// CreatePersonalInfo fails with ErrAlreadyExists when the section exists.
func (s *Service) CreatePersonalInfo(ctx context.Context, userID uint, req profiletypes.PersonalInfoRequest) (*profiletypes.PersonalInfoResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&profile.PersonalInfo{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check personal info: %w", err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyExists
	}

	info := &profile.PersonalInfo{UserID: userID}
	if err := s.applyPersonalRequest(info, req); err != nil {
		return nil, err
	}
	if err := db.Create(info).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create personal info: %w", err)
	}

	logger.Success(fmt.Sprintf("Personal info created for user %d", userID))
	return s.personalResponse(info)
}

// UpdatePersonalInfo replaces every field of an existing section.
func (s *Service) UpdatePersonalInfo(ctx context.Context, userID uint, req profiletypes.PersonalInfoRequest) (*profiletypes.PersonalInfoResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	info, err := s.loadPersonalInfo(db, userID)
	if err != nil {
		return nil, err
	}
	if err := s.applyPersonalRequest(info, req); err != nil {
		return nil, err
	}
	if err := db.Save(info).Error; err != nil {
		return nil, fmt.Errorf("failed to update personal info: %w", err)
	}
	return s.personalResponse(info)
}

// PatchPersonalInfo changes only the fields present in patch.
func (s *Service) PatchPersonalInfo(ctx context.Context, userID uint, patch profiletypes.PersonalInfoPatch) (*profiletypes.PersonalInfoResponse, error) {
	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	info, err := s.loadPersonalInfo(db, userID)
	if err != nil {
		return nil, err
	}

	if patch.DOB != nil {
		dob, err := s.parseDOB(*patch.DOB)
		if err != nil {
			return nil, err
		}
		info.DOB = dob
	}
	if patch.AadhaarNumber != nil {
		encrypted, err := s.cipher.Encrypt(*patch.AadhaarNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt aadhaar number: %w", err)
		}
		info.AadhaarNumber = encrypted
	}
	setString(&info.Gender, patch.Gender)
	setString(&info.Nationality, patch.Nationality)
	setString(&info.Religion, patch.Religion)
	setString(&info.BloodGroup, patch.BloodGroup)
	setString(&info.FatherName, patch.FatherName)
	setString(&info.FatherContact, patch.FatherContact)
	setString(&info.MotherName, patch.MotherName)
	setString(&info.MotherContact, patch.MotherContact)
	setString(&info.GuardianName, patch.GuardianName)
	setString(&info.GuardianContact, patch.GuardianContact)
	setString(&info.CasteCategory, patch.CasteCategory)
	setString(&info.Caste, patch.Caste)
	if patch.PermanentAddress != nil {
		info.PermanentAddress = *patch.PermanentAddress
	}
	if patch.CurrentAddress != nil {
		info.CurrentAddress = *patch.CurrentAddress
	}
	if patch.SameAsPermanent != nil {
		info.SameAsPermanent = *patch.SameAsPermanent
	}
	if info.SameAsPermanent {
		info.CurrentAddress = info.PermanentAddress
	}

	if err := db.Save(info).Error; err != nil {
		return nil, fmt.Errorf("failed to patch personal info: %w", err)
	}
	return s.personalResponse(info)
}

func (s *Service) loadPersonalInfo(db *gorm.DB, userID uint) (*profile.PersonalInfo, error) {
	var info profile.PersonalInfo
	if err := db.Where("user_id = ?", userID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load personal info: %w", err)
	}
	return &info, nil
}

func (s *Service) applyPersonalRequest(info *profile.PersonalInfo, req profiletypes.PersonalInfoRequest) error {
	dob, err := s.parseDOB(req.DOB)
	if err != nil {
		return err
	}
	encrypted, err := s.cipher.Encrypt(req.AadhaarNumber)
	if err != nil {
		return fmt.Errorf("failed to encrypt aadhaar number: %w", err)
	}

	info.DOB = dob
	info.Gender = req.Gender
	info.Nationality = req.Nationality
	info.Religion = req.Religion
	info.AadhaarNumber = encrypted
	info.BloodGroup = req.BloodGroup
	info.FatherName = req.FatherName
	info.FatherQualification = req.FatherQualification
	info.FatherOccupation = req.FatherOccupation
	info.FatherContact = req.FatherContact
	info.MotherName = req.MotherName
	info.MotherQualification = req.MotherQualification
	info.MotherOccupation = req.MotherOccupation
	info.MotherContact = req.MotherContact
	info.GuardianName = req.GuardianName
	info.GuardianRelation = req.GuardianRelation
	info.GuardianOccupation = req.GuardianOccupation
	info.GuardianContact = req.GuardianContact
	info.PermanentAddress = req.PermanentAddress
	info.SameAsPermanent = req.SameAsPermanent
	info.CurrentAddress = req.CurrentAddress
	if req.SameAsPermanent {
		info.CurrentAddress = req.PermanentAddress
	}
	info.CasteCategory = req.CasteCategory
	info.Caste = req.Caste
	info.CertificateIssuedBy = req.CertificateIssuedBy
	info.CertificateNumber = req.CertificateNumber
	return nil
}

func (s *Service) parseDOB(value string) (time.Time, error) {
	dob, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidation(apperrors.ErrValidation.Reason, "dob must be a date in YYYY-MM-DD format")
	}
	if dob.After(s.now()) {
		return time.Time{}, apperrors.NewValidation(apperrors.ErrValidation.Reason, "dob cannot be in the future")
	}
	return dob, nil
}

func (s *Service) personalResponse(info *profile.PersonalInfo) (*profiletypes.PersonalInfoResponse, error) {
	aadhaar, err := s.cipher.Decrypt(info.AadhaarNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt aadhaar number: %w", err)
	}
	years, months, days := utils.CalculateAgeAt(info.DOB, s.now())

	return &profiletypes.PersonalInfoResponse{
		PersonalInfo:  *info,
		DOB:           info.DOB.Format(dateLayout),
		AadhaarNumber: utils.MaskTail(aadhaar, 4),
		Age:           profiletypes.Age{Years: years, Months: months, Days: days},
	}, nil
}

/*=============================================================================
| Education info
===============================================================================*/

func (s *Service) GetEducationInfo(ctx context.Context, userID uint) (*profiletypes.EducationInfoResponse, error) {
	info, err := s.loadEducationInfo(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return educationResponse(info), nil
}

// SaveEducationInfo creates the section or replaces it entirely. created
// reports which of the two happened.
func (s *Service) SaveEducationInfo(ctx context.Context, userID uint, req profiletypes.EducationInfoRequest) (*profiletypes.EducationInfoResponse, bool, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, false, err
	}

	db := s.db.WithContext(ctx)
	info, err := s.loadEducationInfo(db, userID)
	created := false
	if errors.Is(err, apperrors.ErrRecordNotFound) {
		info = &profile.EducationInfo{UserID: userID}
		created = true
	} else if err != nil {
		return nil, false, err
	}

	info.IsAppearing = req.IsAppearing
	info.SchoolName = req.SchoolName
	info.SchoolBoard = req.SchoolBoard
	info.Grade = req.Grade
	info.RollNumber = req.RollNumber
	info.ObtainedMarks = req.ObtainedMarks
	info.TotalMarks = req.TotalMarks
	info.Percentage = derivePercentage(req.Percentage, req.ObtainedMarks, req.TotalMarks)
	info.YearOfPassing = req.YearOfPassing
	info.LastExamInstitution = req.LastExamInstitution
	info.LastExamPlace = req.LastExamPlace
	info.LastExamBoard = req.LastExamBoard
	info.LastExamYear = req.LastExamYear
	info.SetActivities(req.Activities)

	if err := db.Save(info).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, apperrors.ErrAlreadyExists
		}
		return nil, false, fmt.Errorf("failed to save education info: %w", err)
	}
	if created {
		logger.Success(fmt.Sprintf("Education info created for user %d", userID))
	}
	return educationResponse(info), created, nil
}

// PatchEducationInfo changes only the fields present in patch.
func (s *Service) PatchEducationInfo(ctx context.Context, userID uint, patch profiletypes.EducationInfoPatch) (*profiletypes.EducationInfoResponse, error) {
	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	info, err := s.loadEducationInfo(db, userID)
	if err != nil {
		return nil, err
	}

	if patch.IsAppearing != nil {
		info.IsAppearing = *patch.IsAppearing
	}
	setString(&info.SchoolName, patch.SchoolName)
	setString(&info.SchoolBoard, patch.SchoolBoard)
	setString(&info.Grade, patch.Grade)
	setString(&info.RollNumber, patch.RollNumber)
	setInt(&info.ObtainedMarks, patch.ObtainedMarks)
	setInt(&info.TotalMarks, patch.TotalMarks)
	setInt(&info.YearOfPassing, patch.YearOfPassing)
	setString(&info.LastExamInstitution, patch.LastExamInstitution)
	setString(&info.LastExamPlace, patch.LastExamPlace)
	setString(&info.LastExamBoard, patch.LastExamBoard)
	setInt(&info.LastExamYear, patch.LastExamYear)
	if patch.Activities != nil {
		info.SetActivities(*patch.Activities)
	}

	if info.ObtainedMarks > info.TotalMarks {
		return nil, apperrors.NewValidation(apperrors.ErrValidation.Reason, "intermediate_obtained_marks cannot exceed intermediate_total_marks")
	}
	if patch.Percentage != nil || patch.ObtainedMarks != nil || patch.TotalMarks != nil {
		info.Percentage = derivePercentage(patch.Percentage, info.ObtainedMarks, info.TotalMarks)
	}

	if err := db.Save(info).Error; err != nil {
		return nil, fmt.Errorf("failed to patch education info: %w", err)
	}
	return educationResponse(info), nil
}

func (s *Service) loadEducationInfo(db *gorm.DB, userID uint) (*profile.EducationInfo, error) {
	var info profile.EducationInfo
	if err := db.Where("user_id = ?", userID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load education info: %w", err)
	}
	return &info, nil
}

func educationResponse(info *profile.EducationInfo) *profiletypes.EducationInfoResponse {
	return &profiletypes.EducationInfoResponse{
		EducationInfo: *info,
		Activities:    info.Activities(),
	}
}

// derivePercentage prefers an explicit value and otherwise computes it from
// the marks, rounded to two decimals.
func derivePercentage(explicit *float64, obtained, total int) float64 {
	if explicit != nil {
		return *explicit
	}
	if total <= 0 {
		return 0
	}
	return math.Round(float64(obtained)/float64(total)*10000) / 100
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
