// Package service implements the application's business operations on top of
// the repository layer.
package service

import (
	"context"
	"time"

	"ripple/internal/auth"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

// AccountService handles registration, login, and account deletion.
type AccountService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenService
	registerTTL time.Duration
	loginTTL    time.Duration
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries the login request fields.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is the success payload of register and login: a bearer token and
// the public account view (the credential hash never leaves the service).
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAccountService(
	userRepo repository.UserRepository,
	tokens *auth.TokenService,
	registerTTL, loginTTL time.Duration,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		tokens:      tokens,
		registerTTL: registerTTL,
		loginTTL:    loginTTL,
	}
}

// Register validates the input, enforces email uniqueness, persists the
// account with a hashed credential, and issues a short-lived token.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	// Report the first failing field, in request order.
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		// Hash failure is a server fault, never a silent false negative.
		return nil, models.NewStorageError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, s.registerTTL)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a long-lived token. Unknown email and
// wrong password surface the same InvalidCredentials result.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}

	if !auth.CheckPassword(in.Password, user.Password) {
		return nil, models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID, s.loginTTL)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// DeleteAccount removes the caller's posts and then the account in a single
// transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID uint) error {
	return s.userRepo.DeleteWithPosts(ctx, callerID)
}
