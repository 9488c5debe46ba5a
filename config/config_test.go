package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OTP.TTL != 10*time.Minute {
		t.Fatalf("OTP.TTL = %v, want %v", cfg.OTP.TTL, 10*time.Minute)
	}
	if cfg.OTP.RateLimit != 3 {
		t.Fatalf("OTP.RateLimit = %d, want 3", cfg.OTP.RateLimit)
	}
	if cfg.OTP.RateWindow != time.Hour {
		t.Fatalf("OTP.RateWindow = %v, want 1h", cfg.OTP.RateWindow)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute || cfg.JWT.RefreshTTL != 24*time.Hour {
		t.Fatalf("token ttls = %v/%v", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	}
	if cfg.Cleanup.Retention != 24*time.Hour {
		t.Fatalf("Cleanup.Retention = %v, want 24h", cfg.Cleanup.Retention)
	}
	if cfg.OTP.ExposeCode {
		t.Fatal("OTP.ExposeCode must default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("OTP_RATE_LIMIT", "7")
	t.Setenv("REFRESH_TOKEN_TTL", "168h")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OTP.TTL != 5*time.Minute {
		t.Fatalf("OTP.TTL = %v, want 5m", cfg.OTP.TTL)
	}
	if cfg.OTP.RateLimit != 7 {
		t.Fatalf("OTP.RateLimit = %d, want 7", cfg.OTP.RateLimit)
	}
	if cfg.JWT.RefreshTTL != 168*time.Hour {
		t.Fatalf("JWT.RefreshTTL = %v, want 168h", cfg.JWT.RefreshTTL)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production environment")
	}
}

func TestLoadZeroValuesFallBack(t *testing.T) {
	t.Setenv("OTP_RATE_LIMIT", "0")
	t.Setenv("OTP_TTL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OTP.RateLimit != 3 {
		t.Fatalf("OTP.RateLimit = %d, want 3", cfg.OTP.RateLimit)
	}
	if cfg.OTP.TTL != 10*time.Minute {
		t.Fatalf("OTP.TTL = %v, want 10m", cfg.OTP.TTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing secret")
	}

	cfg.JWT.Secret = "short"
	cfg.App.Env = "production"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short production secret")
	}

	cfg.App.Env = "development"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.App.Env = "production"
	cfg.OTP.ExposeCode = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for exposed OTP codes in production")
	}
}

func TestDSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: "5432", Database: "app", Username: "u", Password: "p", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=app sslmode=disable"
	if got := d.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
