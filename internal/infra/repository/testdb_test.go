package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/garage-coop/internal/db"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedAccount(t *testing.T, gdb *gorm.DB, email string) *models.Account {
	t.Helper()
	acc := &models.Account{
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: "x",
		Status:       "active",
	}
	require.NoError(t, gdb.Create(acc).Error)
	return acc
}
