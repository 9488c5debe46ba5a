package cleanup

import (
	"context"
	"testing"
	"time"

	"admission-portal/constants"
	"admission-portal/database/dbtest"
	"admission-portal/models/otp"
	"admission-portal/models/token"
	"admission-portal/models/user"

	"gorm.io/gorm"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, db *gorm.DB, name, role string, emailVerified, phoneVerified bool, age time.Duration) *user.User {
	t.Helper()
	u := &user.User{
		Username:      name,
		Email:         name + "@x.com",
		Phone:         "555" + name,
		Password:      "hash",
		UserType:      role,
		EmailVerified: emailVerified,
		PhoneVerified: phoneVerified,
		CreatedAt:     now.Add(-age),
		UpdatedAt:     now.Add(-age),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return u
}

func TestRunDeletesStaleUnverifiedAccounts(t *testing.T) {
	db := dbtest.New(t)

	stale := seedUser(t, db, "stale", constants.RoleApplicant, false, false, 25*time.Hour)
	halfway := seedUser(t, db, "halfway", constants.RoleApplicant, false, true, 48*time.Hour)
	fresh := seedUser(t, db, "fresh", constants.RoleApplicant, false, false, time.Hour)
	verified := seedUser(t, db, "verified", constants.RoleApplicant, true, true, 72*time.Hour)
	emailOnly := seedUser(t, db, "emailonly", constants.RoleApplicant, true, false, 72*time.Hour)
	admin := seedUser(t, db, "admin", constants.RoleAdmin, false, false, 72*time.Hour)

	record := &otp.OTP{UserID: stale.ID, Destination: "stale@x.com", Code: "123456", Purpose: otp.OTPPurposeVerification, CreatedAt: now, ExpiresAt: now}
	if err := db.Table(otp.ChannelEmail.Table()).Create(record).Error; err != nil {
		t.Fatalf("create otp: %v", err)
	}
	if err := db.Create(&token.OutstandingToken{UserID: stale.ID, JTI: "jti-stale", ExpiresAt: now}).Error; err != nil {
		t.Fatalf("create token: %v", err)
	}

	cleaner := NewCleaner(db, 24*time.Hour, WithClock(func() time.Time { return now }))
	deleted, err := cleaner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	for _, gone := range []*user.User{stale, admin} {
		var count int64
		db.Model(&user.User{}).Where("id = ?", gone.ID).Count(&count)
		if count != 0 {
			t.Fatalf("%s should be deleted", gone.Username)
		}
	}
	for _, kept := range []*user.User{fresh, halfway, emailOnly, verified} {
		var count int64
		db.Model(&user.User{}).Where("id = ?", kept.ID).Count(&count)
		if count != 1 {
			t.Fatalf("%s should be kept", kept.Username)
		}
	}

	var otps, tokens int64
	db.Table(otp.ChannelEmail.Table()).Where("user_id = ?", stale.ID).Count(&otps)
	db.Model(&token.OutstandingToken{}).Where("user_id = ?", stale.ID).Count(&tokens)
	if otps != 0 || tokens != 0 {
		t.Fatalf("dependent rows left: otps=%d tokens=%d", otps, tokens)
	}
}

func TestRunKeepsPartiallyVerifiedAccount(t *testing.T) {
	db := dbtest.New(t)
	partial := seedUser(t, db, "partial", constants.RoleApplicant, true, false, 48*time.Hour)

	deleted, err := NewCleaner(db, 24*time.Hour, WithClock(func() time.Time { return now })).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0", deleted)
	}

	var remaining int64
	db.Model(&user.User{}).Where("id = ?", partial.ID).Count(&remaining)
	if remaining != 1 {
		t.Fatal("account with a verified email should survive cleanup")
	}
}

func TestRunWithNothingToDelete(t *testing.T) {
	db := dbtest.New(t)
	seedUser(t, db, "fresh", constants.RoleApplicant, false, false, time.Minute)

	deleted, err := NewCleaner(db, 24*time.Hour, WithClock(func() time.Time { return now })).Run(context.Background())
	if err != nil || deleted != 0 {
		t.Fatalf("deleted = %d, err = %v", deleted, err)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	db := dbtest.New(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewCleaner(db, 24*time.Hour).Start(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
