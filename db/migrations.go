package db

import (
	"fmt"

	"gorm.io/gorm"

	"mockchat/models"
)

// EnsureReservedAccounts seeds the built-in accounts. Safe to call on every
// startup: existing rows are left untouched so renames survive restarts.
func EnsureReservedAccounts(db *gorm.DB) error {
	for _, id := range models.ReservedIdentifiers {
		var count int64
		if err := db.Model(&models.Account{}).Where("identifier = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check reserved account %s: %w", id, err)
		}
		if count > 0 {
			continue
		}
		acct := models.Account{Identifier: id, Name: "User " + id}
		if err := db.Create(&acct).Error; err != nil {
			return fmt.Errorf("failed to seed reserved account %s: %w", id, err)
		}
	}
	return nil
}
