package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService creates and authenticates dashboard accounts.
type UserService struct {
	db              *gorm.DB
	bootstrapSecret string
}

// BootstrapInput is the body of the create-user endpoint.
type BootstrapInput struct {
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Hash     string `json:"hash"`
}

// NewUserService creates a UserService. An empty bootstrapSecret disables Bootstrap.
func NewUserService(gdb *gorm.DB, bootstrapSecret string) *UserService {
	return &UserService{db: gdb, bootstrapSecret: strings.TrimSpace(bootstrapSecret)}
}

// Bootstrap creates a user when the caller presents the configured secret.
// Missing credentials are reported before the secret is checked.
func (s *UserService) Bootstrap(ctx context.Context, input BootstrapInput) (*db.User, error) {
	input.Email = db.NormalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	if !s.secretMatches(input.Hash) {
		return nil, ErrForbidden
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, storageError("check user email", err)
	}
	if count > 0 {
		return nil, invalidField("email", "is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{Email: input.Email, Password: string(hashed)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, storageError("create user", err)
	}
	return &user, nil
}

// Authenticate returns the user whose email and password match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	email = db.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) secretMatches(hash string) bool {
	if s.bootstrapSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(hash)), []byte(s.bootstrapSecret)) == 1
}
