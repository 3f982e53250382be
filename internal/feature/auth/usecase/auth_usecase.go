package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"estate_backend/internal/feature/auth/domain/entity"
	"estate_backend/internal/shared/apperr"
)

const (
	// minPasswordLength is the minimum number of characters accepted for a password.
	minPasswordLength = 6

	// dummyHash is compared when the user does not exist so both login failure paths do the same work.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// It returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with exactly this email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// List returns all users.
	List(ctx context.Context) ([]entity.User, error)
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare returns ErrInvalidPassword on mismatch.
	Compare(hash, plain string) error
}

// TokenIssuer issues signed identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthUsecase implements registration, credential checks and login.
type AuthUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// validateRegistration checks the registration input before any store access.
func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Invalid("name", "is required")
	}
	if strings.TrimSpace(email) == "" {
		return apperr.Invalid("email", "is required")
	}
	if len(password) < minPasswordLength {
		return apperr.Invalid("password", fmt.Sprintf("must be at least %d characters long", minPasswordLength))
	}
	return nil
}

// Register creates a new user with a hashed password.
// The email is matched exactly as given; an existing match fails with ErrEmailAlreadyExists.
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:             name,
		Email:            email,
		Password:         hashed,
		OwnedResidencies: []entity.Residency{},
		Favorites:        []string{},
		Wishlist:         []string{},
	}
	// the unique index still guards against a concurrent registration
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// VerifyCredentials looks up the user by exact email and checks the password.
// It fails with ErrUserNotFound or ErrInvalidPassword.
func (u *AuthUsecase) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := u.hasher.Compare(passwordHash, password)

	if err != nil {
		return nil, ErrUserNotFound
	}
	if compareErr != nil {
		if errors.Is(compareErr, ErrInvalidPassword) {
			return nil, ErrInvalidPassword
		}
		return nil, compareErr
	}
	return user, nil
}

// Login authenticates the user and returns a signed token together with the user.
// Unknown emails and wrong passwords both surface as ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ListUsers returns every registered user.
func (u *AuthUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// GetUser returns a single user by ID.
func (u *AuthUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
