package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mockchat/models"
)

// setupTestDB opens an in-memory sqlite database with the production schema
// and the reserved accounts seeded.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.Account{}, &models.Message{}))

	for _, id := range models.ReservedIdentifiers {
		acct := models.Account{Identifier: id, Name: "User " + id}
		require.NoError(t, database.Create(&acct).Error)
	}
	return database
}

func countMessages(t *testing.T, db *gorm.DB, user string) int64 {
	t.Helper()
	var count int64
	q := db.Model(&models.Message{})
	if user != "" {
		q = q.Where(`"user" = ?`, user)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}
