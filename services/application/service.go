// Package application handles submission and review of admission applications.
package application

import (
	"context"
	"errors"
	"fmt"

	"admission-portal/apperrors"
	"admission-portal/constants"
	"admission-portal/logger"
	"admission-portal/models/profile"
	"admission-portal/models/user"

	"gorm.io/gorm"
)

const (
	applicationNumberBase = 100000
	formNumberBase        = 500000
	allocationAttempts    = 3
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit creates the single application of a fully verified applicant whose
// personal and education sections are complete.
func (s *Service) Submit(ctx context.Context, userID uint) (*profile.Application, error) {
	db := s.db.WithContext(ctx)

	var account user.User
	if err := db.First(&account, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.UserType != constants.RoleApplicant {
		return nil, apperrors.ErrForbidden
	}
	if !account.FullyVerified() {
		return nil, apperrors.ErrNotVerified
	}
	if err := s.requireSections(db, userID); err != nil {
		return nil, err
	}

	var application *profile.Application
	var err error
	for attempt := 0; attempt < allocationAttempts; attempt++ {
		application, err = s.create(db, userID)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, err
	}

	logger.Success(fmt.Sprintf("Application %d submitted by user %d", application.ApplicationNumber, userID))
	return application, nil
}

// create allocates the next application and form numbers and inserts the row.
// A concurrent submission can take the same numbers, which surfaces as
// gorm.ErrDuplicatedKey and is retried by Submit.
func (s *Service) create(db *gorm.DB, userID uint) (*profile.Application, error) {
	var application *profile.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&profile.Application{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check application: %w", err)
		}
		if existing > 0 {
			return apperrors.ErrAlreadyExists
		}

		var numbers struct {
			ApplicationNumber uint
			FormNumber        uint
		}
		if err := tx.Model(&profile.Application{}).
			Select("COALESCE(MAX(application_number), 0) AS application_number, COALESCE(MAX(form_number), 0) AS form_number").
			Scan(&numbers).Error; err != nil {
			return fmt.Errorf("failed to allocate application number: %w", err)
		}

		application = &profile.Application{
			UserID:            userID,
			ApplicationNumber: nextNumber(numbers.ApplicationNumber, applicationNumberBase),
			FormNumber:        nextNumber(numbers.FormNumber, formNumberBase),
			Status:            constants.ApplicationPending,
		}
		return tx.Create(application).Error
	})
	return application, err
}

func nextNumber(current, base uint) uint {
	if current < base {
		return base + 1
	}
	return current + 1
}

func (s *Service) requireSections(db *gorm.DB, userID uint) error {
	var personal, education int64
	if err := db.Model(&profile.PersonalInfo{}).Where("user_id = ?", userID).Count(&personal).Error; err != nil {
		return fmt.Errorf("failed to check personal info: %w", err)
	}
	if err := db.Model(&profile.EducationInfo{}).Where("user_id = ?", userID).Count(&education).Error; err != nil {
		return fmt.Errorf("failed to check education info: %w", err)
	}
	if personal == 0 || education == 0 {
		return apperrors.ErrIncompleteRecord
	}
	return nil
}

// Get returns the caller's application.
func (s *Service) Get(ctx context.Context, userID uint) (*profile.Application, error) {
	var application profile.Application
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &application, nil
}

// List returns applications newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]profile.Application, error) {
	query := s.db.WithContext(ctx).Model(&profile.Application{})
	if status != "" {
		if status != constants.ApplicationPending && status != constants.ApplicationApproved {
			return nil, apperrors.NewValidation(apperrors.ErrValidation.Reason, "status must be pending or approved")
		}
		query = query.Where("application_status = ?", status)
	}

	applications := []profile.Application{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// Approve moves a pending application to approved. Approving twice is a no-op.
func (s *Service) Approve(ctx context.Context, id uint) (*profile.Application, error) {
	db := s.db.WithContext(ctx)

	var application profile.Application
	if err := db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if application.Status == constants.ApplicationApproved {
		return &application, nil
	}

	if err := db.Model(&application).Update("application_status", constants.ApplicationApproved).Error; err != nil {
		return nil, fmt.Errorf("failed to approve application: %w", err)
	}
	application.Status = constants.ApplicationApproved

	logger.Success(fmt.Sprintf("Application %d approved", application.ApplicationNumber))
	return &application, nil
}
