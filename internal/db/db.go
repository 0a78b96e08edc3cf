package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brandbase/internal/config"
	"brandbase/internal/models"
	console "brandbase/internal/utils/logger"
)

var DB *gorm.DB
var log = console.New("DB")

func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	log.Info("Connecting to database...")
	maxRetries := 5
	var err error
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:                                   logger.Default.LogMode(logger.Warn),
			DisableForeignKeyConstraintWhenMigrating: true,
			PrepareStmt:                              true,
			AllowGlobalUpdate:                        false,
		})
		if err == nil {
			log.Success("Connected to database")

			sqlDB, err := DB.DB()
			if err != nil {
				return log.Error("Failed to get underlying *sql.DB instance", err)
			}

			sqlDB.SetMaxOpenConns(100)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxLifetime(time.Hour)
			sqlDB.SetConnMaxIdleTime(time.Minute * 30)

			if err := Migrate(DB); err != nil {
				return log.Error("Failed to run migrations", err)
			}

			log.Success("Migrations completed")
			return nil
		}
		log.Warn("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Second * 5)
	}
	return log.Error("giving up on database", fmt.Errorf("failed to connect after %d attempts", maxRetries))
}

// Migrate runs AutoMigrate for every model inside one transaction. Shared
// with the test suite, which runs it against an in-memory SQLite database.
func Migrate(gdb *gorm.DB) error {
	tx := gdb.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.AutoMigrate(
		// Base models without foreign keys
		&models.User{},

		// Auth bookkeeping
		&models.PasswordReset{},
		&models.AuthTransaction{},

		// Owned marketing entities
		&models.BrandProfile{},
		&models.Channel{},
		&models.Post{},
		&models.Campaign{},
		&models.Contact{},
		&models.ContactActivity{},
		&models.Voucher{},
		&models.VoucherRedemption{},
		&models.CalendarEvent{},
		&models.GrowthExperiment{},
		&models.AiSettings{},
		&models.MediaAsset{},
	); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return DB
}
