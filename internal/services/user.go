package services

import (
	"context"
	"errors"
	"strings"

	"github.com/siteforge/apiserver/internal/store"
	"github.com/siteforge/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned when a signup reuses a registered email.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned for both an unknown email and a
// wrong password, so login gives no user-enumeration signal.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates signup and login rules.
type UserService struct {
	repo       UserRepository
	bcryptCost int
}

func NewUserService(repo UserRepository, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

// NormalizeEmail produces the uniqueness key used for lookup and
// storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account. The email is normalized before the
// uniqueness check and before storage.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (types.User, error) {
	normalized := NormalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, normalized); err == nil {
		return types.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		PasswordHash: string(hashed),
	})
}

// Login verifies credentials. No session token is issued at this
// layer.
func (s *UserService) Login(ctx context.Context, email, password string) error {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
