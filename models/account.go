package models

import (
	"time"
)

// ReservedIdentifiers are the built-in accounts seeded at startup. They can
// be renamed but never deleted.
var ReservedIdentifiers = []string{"A", "B"}

// IsReservedIdentifier reports whether id names a built-in account.
func IsReservedIdentifier(id string) bool {
	for _, r := range ReservedIdentifiers {
		if id == r {
			return true
		}
	}
	return false
}

// Account is a chat identity. PasswordHash is empty when the account needs no
// password; otherwise it holds "<hexsalt>$<hexhash>" (argon2id).
type Account struct {
	Identifier   string    `gorm:"size:48;primaryKey" json:"identifier"`
	Name         string    `gorm:"size:150" json:"name"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// DisplayName returns the account name or the "User {id}" fallback when the
// name is blank.
func (a *Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return "User " + a.Identifier
}
