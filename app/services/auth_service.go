package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/pkg/auth"
)

// AuthService implements signup and login. Roles are fixed at account
// creation; only buyer and seller can self-register.
type AuthService struct {
	accounts AccountStore
}

func NewAuthService(accounts AccountStore) *AuthService {
	return &AuthService{accounts: accounts}
}

// Signup creates a new account with a bcrypt-hashed credential.
func (s *AuthService) Signup(ctx context.Context, username, password, role string) (models.Account, error) {
	if role != models.RoleBuyer && role != models.RoleSeller {
		return models.Account{}, fmt.Errorf("%w: role must be buyer or seller", models.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Login verifies credentials and issues a signed token. The same error is
// returned for an unknown username and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return "", models.ErrInvalidCredentials
	}

	return auth.GenerateToken(account.ID.Hex(), account.Username, account.Role)
}
