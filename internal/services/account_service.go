package services

import (
	"context"
	"errors"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Client-facing account messages.
const (
	MsgPasswordMismatch   = "Passwords do not match!"
	MsgSignupFieldsNeeded = "Name, email, password and confirmation are required!"
	MsgAlreadyRegistered  = "Error: Email or Phone already registered."
	MsgSignupInsertErr    = "Error inserting data"
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoginErr           = "Login Error"
)

// AccountService handles admin signup and signin. Passwords are stored and
// compared exactly as submitted; no token or session is issued.
type AccountService struct {
	accountRepo repositories.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repositories.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// Signup stores a new account after checking the password confirmation.
func (s *AccountService) Signup(ctx context.Context, account *models.Account) error {
	if account.Password != account.ConfirmPassword {
		return apperr.Invalid(MsgPasswordMismatch)
	}
	if account.Name == "" || account.Email == "" || account.Password == "" {
		return apperr.Invalid(MsgSignupFieldsNeeded)
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return apperr.Conflict(MsgAlreadyRegistered, err)
		}
		return apperr.Internal(MsgSignupInsertErr, err)
	}
	return nil
}

// Signin returns the stored account matching email and password exactly.
// Bad input and bad credentials are reported the same way.
func (s *AccountService) Signin(ctx context.Context, email, password string) (*models.Account, error) {
	if email == "" || password == "" {
		return nil, apperr.Invalid(MsgInvalidCredentials)
	}

	account, err := s.accountRepo.FindByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Invalid(MsgInvalidCredentials)
		}
		return nil, apperr.Internal(MsgLoginErr, err)
	}
	return account, nil
}
