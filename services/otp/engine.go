// Package otp issues, rate-limits and verifies one-time passcodes on a
// single channel.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"admission-portal/apperrors"
	"admission-portal/logger"
	"admission-portal/models/otp"
	"admission-portal/models/user"
	"admission-portal/services/notification"
	"admission-portal/services/otp_event"
	"admission-portal/utils"

	"gorm.io/gorm"
)

const codeLength = 6

// RateCounter is a keyed counter with expiring entries.
type RateCounter interface {
	Count(ctx context.Context, key string) (int64, error)
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type Config struct {
	TTL           time.Duration
	RateLimit     int
	RateWindow    time.Duration
	NotifyTimeout time.Duration
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRandom replaces crypto/rand as the digit source.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) { e.random = r }
}

// Engine is bound to one channel and stores its codes in that channel's table.
type Engine struct {
	db      *gorm.DB
	channel otp.Channel
	counter RateCounter
	sender  notification.Sender
	cfg     Config
	now     func() time.Time
	random  io.Reader
}

func NewEngine(db *gorm.DB, channel otp.Channel, counter RateCounter, sender notification.Sender, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		db:      db,
		channel: channel,
		counter: counter,
		sender:  notification.WithTimeout(sender, cfg.NotifyTimeout),
		cfg:     cfg,
		now:     time.Now,
		random:  rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Channel() otp.Channel {
	return e.channel
}

// rateKey is keyed by the literal destination so that the limit follows the
// address or number, not the account.
func (e *Engine) rateKey(destination string) string {
	return fmt.Sprintf("otp:%s:%s", e.channel, destination)
}

// GenerateCode draws each digit independently and uniformly from 0-9.
func (e *Engine) GenerateCode() (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(e.random, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// Generate issues a new code for account at destination. A rate-limited call
// has no side effect. Delivery failures are logged and do not fail the call.
func (e *Engine) Generate(ctx context.Context, account *user.User, destination string, purpose otp.OTPPurpose) (*otp.OTP, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, apperrors.NewValidation(apperrors.ErrValidation.Reason, string(e.channel)+" is required")
	}

	key := e.rateKey(destination)
	count, err := e.counter.Count(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check otp rate limit: %w", err)
	}
	if count >= int64(e.cfg.RateLimit) {
		logger.Warning(fmt.Sprintf("OTP rate limit reached for %s %s", e.channel, maskDestination(destination)))
		return nil, apperrors.ErrRateLimited
	}

	code, err := e.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := e.now()
	record := &otp.OTP{
		UserID:      account.ID,
		Destination: destination,
		Code:        code,
		Purpose:     purpose,
		IsVerified:  false,
		CreatedAt:   now,
		ExpiresAt:   now.Add(e.cfg.TTL),
	}
	if err := e.db.WithContext(ctx).Table(e.channel.Table()).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create OTP record: %w", err)
	}

	if _, err := e.counter.Increment(ctx, key, e.cfg.RateWindow); err != nil {
		logger.Error("Failed to increment OTP rate counter for "+maskDestination(destination), err)
	}

	if err := otp_event.SnapshotOTPToEvent(e.db.WithContext(ctx), e.channel, record, otp.EventCreated); err != nil {
		logger.Error("Failed to record OTP created event", err)
	}

	subject, body := e.message(code, purpose)
	if err := e.sender.Send(ctx, destination, subject, body); err != nil {
		logger.Error(fmt.Sprintf("Failed to deliver %s OTP to %s", e.channel, maskDestination(destination)), err)
	} else {
		logger.Info(fmt.Sprintf("OTP sent via %s to %s (Purpose: %s)", e.channel, maskDestination(destination), purpose))
	}

	return record, nil
}

// Verify consumes the latest unverified code of account at destination.
// Failures leave every OTP row untouched. When two callers race on the same
// row only one wins; the other gets ErrNoOTPFound.
func (e *Engine) Verify(ctx context.Context, account *user.User, destination, code string, purpose otp.OTPPurpose) (*otp.OTP, error) {
	destination = strings.TrimSpace(destination)
	db := e.db.WithContext(ctx)

	var record otp.OTP
	err := db.Table(e.channel.Table()).
		Where("user_id = ? AND destination = ? AND purpose = ? AND is_verified = ?", account.ID, destination, purpose, false).
		Order("created_at DESC").
		Order("id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoOTPFound
		}
		return nil, fmt.Errorf("failed to find OTP record: %w", err)
	}

	if record.IsExpired(e.now()) {
		e.snapshot(db, &record, otp.EventExpired)
		return nil, apperrors.ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		e.snapshot(db, &record, otp.EventMismatch)
		return nil, apperrors.ErrOTPMismatch
	}

	result := db.Model(&otp.OTP{}).
		Table(e.channel.Table()).
		Where("id = ? AND is_verified = ?", record.ID, false).
		Update("is_verified", true)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark OTP as verified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNoOTPFound
	}

	record.IsVerified = true
	e.snapshot(db, &record, otp.EventVerified)
	return &record, nil
}

func (e *Engine) snapshot(db *gorm.DB, record *otp.OTP, eventType string) {
	if err := otp_event.SnapshotOTPToEvent(db, e.channel, record, eventType); err != nil {
		logger.Error("Failed to record OTP "+eventType+" event", err)
	}
}

func (e *Engine) message(code string, purpose otp.OTPPurpose) (string, string) {
	minutes := int(e.cfg.TTL.Minutes())
	switch {
	case purpose == otp.OTPPurposePasswordReset:
		return "Password Reset Code",
			fmt.Sprintf("Your password reset code is: %s\n\nThis code will expire in %d minutes.", code, minutes)
	case e.channel == otp.ChannelPhone:
		return "Phone Verification Code",
			fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, minutes)
	default:
		return "Email Verification Code",
			fmt.Sprintf("Your email verification code is: %s\n\nThis code will expire in %d minutes.", code, minutes)
	}
}

// maskDestination keeps log lines free of full addresses and numbers.
func maskDestination(destination string) string {
	return utils.MaskTail(destination, 4)
}
