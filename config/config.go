package config

import (
	"fmt"
	"time"

	"admission-portal/logger"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the service.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	OTP      OTPConfig
	SMTP     SMTPConfig
	Twilio   TwilioConfig
	Gemini   GeminiConfig
	Cleanup  CleanupConfig
	Security SecurityConfig
}

type AppConfig struct {
	Host        string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port        string `env:"APP_PORT" envDefault:"8000"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	LogDir      string `env:"LOG_DIR" envDefault:"log/app"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Database string `env:"DB_DATABASE" envDefault:"admission_portal"`
	Username string `env:"DB_USERNAME" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"24h"`
}

type OTPConfig struct {
	TTL           time.Duration `env:"OTP_TTL" envDefault:"10m"`
	RateLimit     int           `env:"OTP_RATE_LIMIT" envDefault:"3"`
	RateWindow    time.Duration `env:"OTP_RATE_WINDOW" envDefault:"1h"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	// ExposeCode echoes issued codes in send responses. Local development only.
	ExposeCode    bool          `env:"OTP_EXPOSE_CODE" envDefault:"false"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@admission-portal.local"`
}

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
	BaseURL    string `env:"TWILIO_BASE_URL" envDefault:"https://api.twilio.com"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-lite"`
}

type CleanupConfig struct {
	Retention time.Duration `env:"UNVERIFIED_RETENTION" envDefault:"24h"`
	Interval  time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
}

type SecurityConfig struct {
	EncryptionKey string `env:"ENCRYPTION_KEY"`
	BcryptCost    int    `env:"BCRYPT_COST" envDefault:"12"`
}

// Load reads the optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded, relying on process environment")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults covers values explicitly set to zero in the environment.
func (c *Config) applyDefaults() {
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = 10 * time.Minute
	}
	if c.OTP.RateLimit <= 0 {
		c.OTP.RateLimit = 3
	}
	if c.OTP.RateWindow <= 0 {
		c.OTP.RateWindow = time.Hour
	}
	if c.OTP.NotifyTimeout <= 0 {
		c.OTP.NotifyTimeout = 5 * time.Second
	}
	if c.JWT.AccessTTL <= 0 {
		c.JWT.AccessTTL = 15 * time.Minute
	}
	if c.JWT.RefreshTTL <= 0 {
		c.JWT.RefreshTTL = 24 * time.Hour
	}
	if c.Cleanup.Retention <= 0 {
		c.Cleanup.Retention = 24 * time.Hour
	}
	if c.Security.BcryptCost <= 0 {
		c.Security.BcryptCost = 12
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN builds the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.IsProduction() && c.OTP.ExposeCode {
		return fmt.Errorf("OTP_EXPOSE_CODE cannot be enabled in production")
	}
	return nil
}
