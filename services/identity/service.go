// Package identity orchestrates registration, OTP verification, login,
// logout and password reset.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"admission-portal/apperrors"
	"admission-portal/constants"
	"admission-portal/logger"
	otpmodel "admission-portal/models/otp"
	"admission-portal/models/user"
	otpservice "admission-portal/services/otp"
	"admission-portal/services/token"
	authtypes "admission-portal/types/auth"
	"admission-portal/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type Service struct {
	db         *gorm.DB
	emailOTP   *otpservice.Engine
	phoneOTP   *otpservice.Engine
	issuer     *token.Issuer
	bcryptCost int
}

func NewService(db *gorm.DB, emailOTP, phoneOTP *otpservice.Engine, issuer *token.Issuer, bcryptCost int) *Service {
	return &Service{
		db:         db,
		emailOTP:   emailOTP,
		phoneOTP:   phoneOTP,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Register creates an unverified account and issues its first session pair.
func (s *Service) Register(ctx context.Context, req authtypes.RegisterRequest) (*user.User, token.Pair, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, token.Pair{}, err
	}
	if req.Password != req.Password2 {
		return nil, token.Pair{}, apperrors.ErrPasswordMismatch
	}
	if !constants.IsValidRole(req.UserType) {
		return nil, token.Pair{}, apperrors.ErrInvalidRole
	}
	if err := utils.ValidatePassword(req.Password, utils.PasswordAttributes{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}); err != nil {
		return nil, token.Pair{}, err
	}

	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&user.User{}).
		Where("username = ? OR email = ? OR phone = ?", req.Username, req.Email, req.Phone).
		Count(&existing).Error; err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to check account uniqueness: %w", err)
	}
	if existing > 0 {
		return nil, token.Pair{}, apperrors.ErrDuplicateAccount
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// cases.Caser is stateful, so a new one per call.
	title := cases.Title(language.English)
	account := &user.User{
		Username:      req.Username,
		FirstName:     title.String(strings.TrimSpace(req.FirstName)),
		LastName:      title.String(strings.TrimSpace(req.LastName)),
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      hash,
		UserType:      req.UserType,
		EmailVerified: false,
		PhoneVerified: false,
		IsActive:      true,
	}
	if err := db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, token.Pair{}, apperrors.ErrDuplicateAccount
		}
		return nil, token.Pair{}, fmt.Errorf("failed to create account: %w", err)
	}

	pair, err := s.issuer.Issue(ctx, account)
	if err != nil {
		return nil, token.Pair{}, err
	}

	logger.Success(fmt.Sprintf("Account registered: %s (ID: %d)", account.Username, account.ID))
	return account, pair, nil
}

// RequestEmailOTP sends a verification code to the account owning email.
func (s *Service) RequestEmailOTP(ctx context.Context, email string) (*otpmodel.OTP, error) {
	return s.requestOTP(ctx, s.emailOTP, email, otpmodel.OTPPurposeVerification)
}

// RequestPhoneOTP sends a verification code to the account owning phone.
func (s *Service) RequestPhoneOTP(ctx context.Context, phone string) (*otpmodel.OTP, error) {
	return s.requestOTP(ctx, s.phoneOTP, phone, otpmodel.OTPPurposeVerification)
}

// RequestPasswordReset sends a password reset code by email.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*otpmodel.OTP, error) {
	return s.requestOTP(ctx, s.emailOTP, email, otpmodel.OTPPurposePasswordReset)
}

// ConfirmEmailOTP consumes an email code and marks the email as verified.
func (s *Service) ConfirmEmailOTP(ctx context.Context, email, code string) (*user.User, error) {
	return s.confirmOTP(ctx, s.emailOTP, email, code, "email_verified")
}

// ConfirmPhoneOTP consumes a phone code and marks the phone as verified.
func (s *Service) ConfirmPhoneOTP(ctx context.Context, phone, code string) (*user.User, error) {
	return s.confirmOTP(ctx, s.phoneOTP, phone, code, "phone_verified")
}

// ConfirmPasswordReset consumes a reset code and replaces the password.
// The new password is not run through the password policy.
func (s *Service) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidation(apperrors.ErrValidation.Reason, "new_password is required")
	}

	account, err := s.findByChannel(ctx, otpmodel.ChannelEmail, email)
	if err != nil {
		return err
	}
	if _, err := s.emailOTP.Verify(ctx, account, email, code, otpmodel.OTPPurposePasswordReset); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := s.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", account.ID).Update("password", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}

	logger.Success(fmt.Sprintf("Password reset for user %d", account.ID))
	return nil
}

// Login authenticates a fully verified account and issues a fresh pair.
// Failed attempts never modify the account.
func (s *Service) Login(ctx context.Context, username, password string) (*user.User, token.Pair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, token.Pair{}, apperrors.NewValidation(apperrors.ErrValidation.Reason, "Please provide both username and password")
	}

	var account user.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, token.Pair{}, apperrors.ErrInvalidCredentials
		}
		return nil, token.Pair{}, fmt.Errorf("failed to load account: %w", err)
	}
	if !account.IsActive || !utils.CheckPassword(account.Password, password) {
		logger.Warning("Failed login attempt for " + username)
		return nil, token.Pair{}, apperrors.ErrInvalidCredentials
	}
	if !account.EmailVerified {
		return nil, token.Pair{}, apperrors.ErrEmailUnverified
	}
	if !account.PhoneVerified {
		return nil, token.Pair{}, apperrors.ErrPhoneUnverified
	}

	pair, err := s.issuer.Issue(ctx, &account)
	if err != nil {
		return nil, token.Pair{}, err
	}
	return &account, pair, nil
}

// Logout revokes refreshToken on behalf of callerID.
func (s *Service) Logout(ctx context.Context, callerID uint, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrMissingToken
	}
	return s.issuer.Revoke(ctx, callerID, refreshToken)
}

// Refresh mints a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", apperrors.ErrMissingToken
	}
	return s.issuer.Refresh(ctx, refreshToken)
}

// Account loads the account behind an authenticated request.
func (s *Service) Account(ctx context.Context, userID uint) (*user.User, error) {
	var account user.User
	if err := s.db.WithContext(ctx).First(&account, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}

func (s *Service) requestOTP(ctx context.Context, engine *otpservice.Engine, destination string, purpose otpmodel.OTPPurpose) (*otpmodel.OTP, error) {
	account, err := s.findByChannel(ctx, engine.Channel(), destination)
	if err != nil {
		return nil, err
	}
	return engine.Generate(ctx, account, destination, purpose)
}

func (s *Service) confirmOTP(ctx context.Context, engine *otpservice.Engine, destination, code, flag string) (*user.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.NewValidation(apperrors.ErrValidation.Reason, "otp is required")
	}

	account, err := s.findByChannel(ctx, engine.Channel(), destination)
	if err != nil {
		return nil, err
	}
	if _, err := engine.Verify(ctx, account, destination, code, otpmodel.OTPPurposeVerification); err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", account.ID).Update(flag, true)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update %s: %w", flag, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	return s.Account(ctx, account.ID)
}

// findByChannel resolves an email address or phone number to its account.
func (s *Service) findByChannel(ctx context.Context, channel otpmodel.Channel, value string) (*user.User, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, apperrors.NewValidation(apperrors.ErrValidation.Reason, string(channel)+" is required")
	}

	var account user.User
	if err := s.db.WithContext(ctx).Where(string(channel)+" = ?", value).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}
