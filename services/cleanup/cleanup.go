// Package cleanup removes accounts that never verified either channel.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"admission-portal/logger"
	"admission-portal/models/user"

	"gorm.io/gorm"
)

// dependentTables hold rows keyed by user_id that go with the account.
var dependentTables = []string{
	"email_otps",
	"phone_otps",
	"otp_events",
	"outstanding_tokens",
	"blacklisted_tokens",
	"personal_infos",
	"education_infos",
	"applications",
	"marksheet_parse_requests",
}

type Cleaner struct {
	db        *gorm.DB
	retention time.Duration
	now       func() time.Time
}

type Option func(*Cleaner)

func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) { c.now = now }
}

func NewCleaner(db *gorm.DB, retention time.Duration, opts ...Option) *Cleaner {
	c := &Cleaner{db: db, retention: retention, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run deletes accounts created before now-retention that verified neither
// email nor phone, with everything they own. An account with one verified
// channel is kept.
func (c *Cleaner) Run(ctx context.Context) (int, error) {
	threshold := c.now().Add(-c.retention)
	deleted := 0

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&user.User{}).
			Where("created_at <= ?", threshold).
			Where("email_verified = ? AND phone_verified = ?", false, false).
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to find unverified accounts: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		for _, table := range dependentTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE user_id IN ?", ids).Error; err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}

		result := tx.Where("id IN ?", ids).Delete(&user.User{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete unverified accounts: %w", result.Error)
		}
		deleted = int(result.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(fmt.Sprintf("Deleted %d unverified accounts.", deleted))
	return deleted, nil
}

// Start runs the cleaner every interval until ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Unverified account cleanup stopped")
			return
		case <-ticker.C:
			if _, err := c.Run(ctx); err != nil {
				logger.Error("Unverified account cleanup failed", err)
			}
		}
	}
}
