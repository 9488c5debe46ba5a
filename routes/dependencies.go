package routes

import (
	"admission-portal/config"
	"admission-portal/logger"
	otpmodel "admission-portal/models/otp"
	"admission-portal/services/application"
	"admission-portal/services/identity"
	"admission-portal/services/marksheet_parser"
	"admission-portal/services/notification"
	otpservice "admission-portal/services/otp"
	"admission-portal/services/profile"
	"admission-portal/services/token"
	"admission-portal/utils"

	"gorm.io/gorm"
)

// Dependencies is everything the HTTP surface needs.
type Dependencies struct {
	Config       *config.Config
	Identity     *identity.Service
	Issuer       *token.Issuer
	Profiles     *profile.Service
	Applications *application.Service
	Marksheets   *marksheet_parser.Service
	// AsyncLogger is optional; without it requests are not persisted.
	AsyncLogger *logger.AsyncLogger
}

// Collaborators are the external pieces wired into the services.
type Collaborators struct {
	Counter     otpservice.RateCounter
	EmailSender notification.Sender
	SMSSender   notification.Sender
	Extractor   marksheet_parser.Extractor
	Cipher      *utils.Cipher
	OTPOptions  []otpservice.Option
	TokenOpts   []token.Option
}

// BuildDependencies wires the services on top of db.
func BuildDependencies(db *gorm.DB, cfg *config.Config, collab Collaborators) Dependencies {
	otpConfig := otpservice.Config{
		TTL:           cfg.OTP.TTL,
		RateLimit:     cfg.OTP.RateLimit,
		RateWindow:    cfg.OTP.RateWindow,
		NotifyTimeout: cfg.OTP.NotifyTimeout,
	}
	emailEngine := otpservice.NewEngine(db, otpmodel.ChannelEmail, collab.Counter, collab.EmailSender, otpConfig, collab.OTPOptions...)
	phoneEngine := otpservice.NewEngine(db, otpmodel.ChannelPhone, collab.Counter, collab.SMSSender, otpConfig, collab.OTPOptions...)
	issuer := token.NewIssuer(db, cfg.JWT, collab.TokenOpts...)

	return Dependencies{
		Config:       cfg,
		Identity:     identity.NewService(db, emailEngine, phoneEngine, issuer, cfg.Security.BcryptCost),
		Issuer:       issuer,
		Profiles:     profile.NewService(db, collab.Cipher),
		Applications: application.NewService(db),
		Marksheets:   marksheet_parser.NewService(db, collab.Extractor),
	}
}
