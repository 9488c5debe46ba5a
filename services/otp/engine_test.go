package otp

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"admission-portal/apperrors"
	"admission-portal/database/dbtest"
	"admission-portal/models/otp"
	"admission-portal/models/user"
	"admission-portal/services/notification"

	"gorm.io/gorm"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}}
}

func (m *memoryCounter) Count(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key], nil
}

func (m *memoryCounter) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	fails bool
}

func (r *recordingSender) Send(_ context.Context, destination, _, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, destination+"|"+body)
	if r.fails {
		return errors.New("provider unavailable")
	}
	return nil
}

type fixture struct {
	db      *gorm.DB
	engine  *Engine
	counter *memoryCounter
	sender  *recordingSender
	clock   *time.Time
	account *user.User
}

var testConfig = Config{
	TTL:           10 * time.Minute,
	RateLimit:     3,
	RateWindow:    time.Hour,
	NotifyTimeout: time.Second,
}

func newFixture(t *testing.T, channel otp.Channel) *fixture {
	t.Helper()
	db := dbtest.New(t)

	account := &user.User{
		Username: "alice",
		Email:    "alice@x.com",
		Phone:    "5551234",
		Password: "hash",
		UserType: "applicant",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}

	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	f := &fixture{
		db:      db,
		counter: newMemoryCounter(),
		sender:  &recordingSender{},
		clock:   &now,
		account: account,
	}
	f.engine = NewEngine(db, channel, f.counter, f.sender, testConfig,
		WithClock(func() time.Time { return *f.clock }))
	return f
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func (f *fixture) countRows(t *testing.T, channel otp.Channel) int64 {
	t.Helper()
	var n int64
	if err := f.db.Table(channel.Table()).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestGenerateCodeDigits(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	e := NewEngine(f.db, otp.ChannelEmail, f.counter, f.sender, testConfig,
		WithRandom(bytes.NewReader([]byte{0, 1, 2, 3, 4, 5})))

	code, err := e.GenerateCode()
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if code != "012345" {
		t.Fatalf("code = %q, want 012345 (leading zero preserved)", code)
	}

	for i := 0; i < 50; i++ {
		code, err := f.engine.GenerateCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q has non-digit", code)
			}
		}
	}
}

func TestGeneratePersistsAndSends(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	ctx := context.Background()

	record, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if record.IsVerified {
		t.Fatal("new record must be unverified")
	}
	if want := f.clock.Add(10 * time.Minute); !record.ExpiresAt.Equal(want) {
		t.Fatalf("expires_at = %v, want %v", record.ExpiresAt, want)
	}
	if f.countRows(t, otp.ChannelEmail) != 1 || f.countRows(t, otp.ChannelPhone) != 0 {
		t.Fatal("record must be stored in the email table only")
	}
	if n, _ := f.counter.Count(ctx, "otp:email:alice@x.com"); n != 1 {
		t.Fatalf("counter = %d, want 1", n)
	}
	if len(f.sender.sent) != 1 || f.sender.sent[0] != "alice@x.com|Your email verification code is: "+record.Code+"\n\nThis code will expire in 10 minutes." {
		t.Fatalf("sent = %v", f.sender.sent)
	}

	var events int64
	f.db.Model(&otp.OTPEvent{}).Where("otp_id = ? AND event_type = ?", record.ID, otp.EventCreated).Count(&events)
	if events != 1 {
		t.Fatalf("created events = %d, want 1", events)
	}
}

func TestGenerateRejectsEmptyDestination(t *testing.T) {
	f := newFixture(t, otp.ChannelPhone)
	_, err := f.engine.Generate(context.Background(), f.account, "  ", otp.OTPPurposeVerification)
	if apperrors.KindOf(err) != apperrors.Validation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestGenerateSucceedsWhenDeliveryFails(t *testing.T) {
	f := newFixture(t, otp.ChannelPhone)
	f.sender.fails = true

	record, err := f.engine.Generate(context.Background(), f.account, "5551234", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if f.countRows(t, otp.ChannelPhone) != 1 {
		t.Fatal("record must survive a delivery failure")
	}
	if record.Code == "" {
		t.Fatal("expected code on returned record")
	}
}

func TestGenerateIsNotBlockedBySlowSender(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	release := make(chan struct{})
	defer close(release)
	slow := notification.SenderFunc(func(ctx context.Context, destination, subject, body string) error {
		<-release
		return nil
	})
	cfg := testConfig
	cfg.NotifyTimeout = 20 * time.Millisecond
	e := NewEngine(f.db, otp.ChannelEmail, f.counter, slow, cfg)

	start := time.Now()
	if _, err := e.Generate(context.Background(), f.account, "alice@x.com", otp.OTPPurposeVerification); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("generate waited on the slow sender")
	}
}

func TestGenerateRateLimit(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification); err != nil {
			t.Fatalf("generate #%d: %v", i+1, err)
		}
	}

	_, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification)
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatalf("4th generate err = %v, want rate limited", err)
	}
	if n := f.countRows(t, otp.ChannelEmail); n != 3 {
		t.Fatalf("rows = %d, want 3 (no record for the rejected call)", n)
	}
	if len(f.sender.sent) != 3 {
		t.Fatalf("sends = %d, want 3", len(f.sender.sent))
	}

	if _, err := f.engine.Generate(ctx, f.account, "other@x.com", otp.OTPPurposeVerification); err != nil {
		t.Fatalf("other destination must have its own counter: %v", err)
	}
}

func TestVerifyRoundTripExactlyOnce(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	ctx := context.Background()

	record, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	verified, err := f.engine.Verify(ctx, f.account, "alice@x.com", record.Code, otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verified.IsVerified || verified.ID != record.ID {
		t.Fatalf("unexpected verified record %+v", verified)
	}

	_, err = f.engine.Verify(ctx, f.account, "alice@x.com", record.Code, otp.OTPPurposeVerification)
	if !errors.Is(err, apperrors.ErrNoOTPFound) {
		t.Fatalf("replay err = %v, want no otp found", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	f := newFixture(t, otp.ChannelPhone)
	ctx := context.Background()

	record, err := f.engine.Generate(ctx, f.account, "5551234", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wrong := "000000"
	if record.Code == wrong {
		wrong = "111111"
	}

	f.advance(10 * time.Minute)
	if _, err := f.engine.Verify(ctx, f.account, "5551234", wrong, otp.OTPPurposeVerification); !errors.Is(err, apperrors.ErrOTPMismatch) {
		t.Fatalf("at expiry instant err = %v, want mismatch (still valid)", err)
	}

	f.advance(time.Second)
	_, err = f.engine.Verify(ctx, f.account, "5551234", record.Code, otp.OTPPurposeVerification)
	if !errors.Is(err, apperrors.ErrOTPExpired) {
		t.Fatalf("err = %v, want expired even with matching code", err)
	}

	var stored otp.OTP
	f.db.Table(otp.ChannelPhone.Table()).First(&stored, record.ID)
	if stored.IsVerified {
		t.Fatal("expired record must stay unverified")
	}
}

func TestVerifyMismatchLeavesRecordUsable(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	ctx := context.Background()

	record, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	wrong := "000000"
	if record.Code == wrong {
		wrong = "111111"
	}

	if _, err := f.engine.Verify(ctx, f.account, "alice@x.com", wrong, otp.OTPPurposeVerification); !errors.Is(err, apperrors.ErrOTPMismatch) {
		t.Fatalf("err = %v, want mismatch", err)
	}
	if _, err := f.engine.Verify(ctx, f.account, "alice@x.com", record.Code, otp.OTPPurposeVerification); err != nil {
		t.Fatalf("verify after mismatch: %v", err)
	}
}

func TestVerifyUsesLatestRecord(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	ctx := context.Background()

	first, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate first: %v", err)
	}
	f.advance(time.Minute)
	second, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}

	if first.Code != second.Code {
		if _, err := f.engine.Verify(ctx, f.account, "alice@x.com", first.Code, otp.OTPPurposeVerification); !errors.Is(err, apperrors.ErrOTPMismatch) {
			t.Fatalf("superseded code err = %v, want mismatch", err)
		}
	}
	got, err := f.engine.Verify(ctx, f.account, "alice@x.com", second.Code, otp.OTPPurposeVerification)
	if err != nil {
		t.Fatalf("verify latest: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("verified id %d, want %d", got.ID, second.ID)
	}
}

func TestVerifyNoRecord(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	_, err := f.engine.Verify(context.Background(), f.account, "alice@x.com", "123456", otp.OTPPurposeVerification)
	if !errors.Is(err, apperrors.ErrNoOTPFound) {
		t.Fatalf("err = %v, want no otp found", err)
	}
}

func TestVerifyIsScopedByPurpose(t *testing.T) {
	f := newFixture(t, otp.ChannelEmail)
	ctx := context.Background()

	record, err := f.engine.Generate(ctx, f.account, "alice@x.com", otp.OTPPurposePasswordReset)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := f.engine.Verify(ctx, f.account, "alice@x.com", record.Code, otp.OTPPurposeVerification); !errors.Is(err, apperrors.ErrNoOTPFound) {
		t.Fatalf("err = %v, want no otp found for other purpose", err)
	}
	if _, err := f.engine.Verify(ctx, f.account, "alice@x.com", record.Code, otp.OTPPurposePasswordReset); err != nil {
		t.Fatalf("verify reset: %v", err)
	}
}

func TestMaskDestination(t *testing.T) {
	cases := map[string]string{
		"alice@x.com": "XXXXXXX.com",
		"5551234":     "XXX1234",
		"123":         "123",
	}
	for in, want := range cases {
		if got := maskDestination(in); got != want {
			t.Fatalf("maskDestination(%q) = %q, want %q", in, got, want)
		}
	}
}
