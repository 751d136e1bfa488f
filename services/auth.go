package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type AuthService struct {
	db       *gorm.DB
	accounts *AccountService
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, accounts: NewAccountService(db)}
}

// LoginResult is the public identity returned on a successful login. No
// token or session is issued; session machinery lives outside this service.
type LoginResult struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// Login checks the identifier and, when the account stores a hash, the
// password. Accounts without a stored hash log in regardless of the supplied
// password.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, validationf("field 'identifier' is required")
	}

	acct, err := s.accounts.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if acct.PasswordHash != "" {
		if password == "" {
			return nil, validationf("password required")
		}
		ok, err := verifyPassword(acct.PasswordHash, password)
		if err != nil {
			return nil, internal("failed to verify password", err)
		}
		if !ok {
			return nil, forbiddenf("incorrect password")
		}
	}

	return &LoginResult{Identifier: acct.Identifier, Name: acct.DisplayName()}, nil
}
