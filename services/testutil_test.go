package services

import (
	"fmt"
	"strings"
	"testing"

	"trivianight/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database migrated with the full
// schema. The database is named after the test so parallel tests do not
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Round{},
		&models.Question{},
		&models.Game{},
		&models.GameRound{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestRound(t *testing.T, db *gorm.DB, userID uint, title, label string) *models.Round {
	t.Helper()

	round := models.Round{
		Title:    title,
		Label:    label,
		UserID:   userID,
		IsActive: true,
	}
	require.NoError(t, db.Create(&round).Error)
	return &round
}

func intPtr(v int) *int {
	return &v
}
