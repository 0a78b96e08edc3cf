package services

import (
	"testing"

	"brandbase/internal/db"
	"brandbase/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// Each connection to :memory: is its own database; pin the pool to one.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return gdb
}

func newTestUser(t *testing.T, gdb *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email: email,
		Name:  "Test User",
		Role:  models.UserRoleUser,
		Tier:  models.TierEnterprise,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}
