package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mockchat/models"
)

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// AccountUpdate is a partial update. Nil fields are left alone; a non-nil
// blank Password clears the stored hash, removing password protection.
type AccountUpdate struct {
	Name     *string
	Password *string
}

// Create generates a short random identifier, hashes the password when one is
// given and persists the account.
func (s *AccountService) Create(ctx context.Context, name, password string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("field 'name' must be a non-empty string")
	}

	var passwordHash string
	if password != "" {
		var err error
		passwordHash, err = hashPassword(password)
		if err != nil {
			return nil, internal("failed to hash password", err)
		}
	}

	// 8 hex chars from crypto/rand. Collisions are astronomically unlikely
	// at this scale but the primary key catches them, so retry a few times.
	for attempt := 0; attempt < 3; attempt++ {
		acct := models.Account{
			Identifier:   randomIdentifier(),
			Name:         name,
			PasswordHash: passwordHash,
		}
		err := s.db.WithContext(ctx).Create(&acct).Error
		if err == nil {
			return &acct, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal("failed to create account", err)
		}
	}
	return nil, internal("failed to allocate a unique identifier", nil)
}

func randomIdentifier() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble.
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func (s *AccountService) Get(ctx context.Context, identifier string) (*models.Account, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, validationf("identifier is required")
	}
	var acct models.Account
	err := s.db.WithContext(ctx).Where("identifier = ?", identifier).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("account %s not found", identifier)
	}
	if err != nil {
		return nil, internal("failed to load account", err)
	}
	return &acct, nil
}

// Update applies a partial update. The name changes only when a non-blank
// value is supplied; the password re-hashes when supplied, and an explicit
// blank password clears the hash.
func (s *AccountService) Update(ctx context.Context, identifier string, upd AccountUpdate) (*models.Account, error) {
	acct, err := s.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		acct.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			acct.PasswordHash = ""
		} else {
			hash, err := hashPassword(*upd.Password)
			if err != nil {
				return nil, internal("failed to hash password", err)
			}
			acct.PasswordHash = hash
		}
	}

	if err := s.db.WithContext(ctx).Save(acct).Error; err != nil {
		return nil, internal("failed to update account", err)
	}
	return acct, nil
}

// Delete removes an account. The built-in identifiers are refused before the
// store is touched.
func (s *AccountService) Delete(ctx context.Context, identifier string) error {
	if models.IsReservedIdentifier(identifier) {
		return forbiddenf("builtin account %s cannot be deleted", identifier)
	}
	if _, err := s.Get(ctx, identifier); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("identifier = ?", identifier).Delete(&models.Account{})
	if res.Error != nil {
		return internal("failed to delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("account %s not found", identifier)
	}
	return nil
}
