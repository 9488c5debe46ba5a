package database

import (
	"fmt"

	"admission-portal/config"
	"admission-portal/logger"
	"admission-portal/models/log"
	"admission-portal/models/marksheet"
	"admission-portal/models/otp"
	"admission-portal/models/profile"
	"admission-portal/models/token"
	"admission-portal/models/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the PostgreSQL connection and migrates the schema.
func InitDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}

// Migrate creates or updates every table and index. It is safe to run on
// every start.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to execute migrations", err)
		return err
	}
	logger.Success("All migrations completed successfully")

	if db.Dialector.Name() == "postgres" {
		if err := createForeignKeyConstraints(db); err != nil {
			logger.Error("Failed to create foreign key constraints", err)
			return err
		}
	}

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")
	return nil
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	// Stage 1: accounts
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &user.User{}, err)
	}

	// Stage 2: one OTP table per channel, same shape
	for _, channel := range []otp.Channel{otp.ChannelEmail, otp.ChannelPhone} {
		if err := db.Table(channel.Table()).AutoMigrate(&otp.OTP{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", channel.Table(), err)
		}
	}

	// Stage 3: models referencing accounts
	remainingModels := []interface{}{
		&otp.OTPEvent{},
		&token.OutstandingToken{},
		&token.BlacklistedToken{},
		&profile.PersonalInfo{},
		&profile.EducationInfo{},
		&profile.Application{},
		&marksheet.ParseRequest{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates the composite indexes the hot queries rely on
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_email_otps_lookup", "CREATE INDEX IF NOT EXISTS idx_email_otps_lookup ON email_otps(user_id, destination, purpose, is_verified, created_at)"},
		{"idx_phone_otps_lookup", "CREATE INDEX IF NOT EXISTS idx_phone_otps_lookup ON phone_otps(user_id, destination, purpose, is_verified, created_at)"},
		{"idx_applications_status_created", "CREATE INDEX IF NOT EXISTS idx_applications_status_created ON applications(application_status, created_at)"},
		{"idx_education_percentage_year", "CREATE INDEX IF NOT EXISTS idx_education_percentage_year ON education_infos(percentage, year_of_passing)"},
		{"idx_personal_caste_created", "CREATE INDEX IF NOT EXISTS idx_personal_caste_created ON personal_infos(caste_category, created_at)"},
		{"idx_request_logs_method", "CREATE INDEX IF NOT EXISTS idx_request_logs_method ON request_logs(method)"},
	}

	for _, index := range indexes {
		if err := db.Exec(index.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", index.name, err)
		}
	}
	return nil
}

// createForeignKeyConstraints ties every per-account table to users so that
// deleting an account removes its rows.
func createForeignKeyConstraints(db *gorm.DB) error {
	tables := []string{
		"email_otps",
		"phone_otps",
		"outstanding_tokens",
		"blacklisted_tokens",
		"personal_infos",
		"education_infos",
		"applications",
	}

	for _, table := range tables {
		name := "fk_" + table + "_user"
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		if err := db.Raw(checkSQL, name).Scan(&exists).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", name, err))
			continue
		}
		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", name))
			continue
		}

		sql := fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s
			FOREIGN KEY (user_id) REFERENCES users(id)
			ON UPDATE CASCADE ON DELETE CASCADE`, table, name)
		if err := db.Exec(sql).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", name, err))
		} else {
			logger.Success(fmt.Sprintf("Successfully created constraint: %s", name))
		}
	}

	return nil
}
