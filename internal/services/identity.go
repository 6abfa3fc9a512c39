package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/models"
)

// IdentityService owns user records and credential checks. Token minting
// lives in internal/auth; this service never sees tokens.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Register creates a user. Email matching is exact and case-sensitive; a
// duplicate is a Conflict.
func (s *IdentityService) Register(email, password, fullName string) (*models.User, error) {
	var existing models.User

	err := s.db.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil, apperr.New(apperr.Conflict, "Email already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "Failed to check existing user", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to hash password", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the pre-check and lose to
		// the unique index on email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "Email already registered")
		}

		return nil, apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}

	return &user, nil
}

// Authenticate checks credentials. Unknown email and wrong password return
// the same Unauthorized error so callers cannot enumerate accounts.
func (s *IdentityService) Authenticate(email, password string) (*models.User, error) {
	var user models.User

	err := s.db.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.Unauthorized, "Incorrect email or password")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.New(apperr.Unauthorized, "Incorrect email or password")
	}

	return &user, nil
}

// UserByID loads a user by id, for resolving authenticated callers.
func (s *IdentityService) UserByID(id string) (*models.User, error) {
	var user models.User

	err := s.db.Where("id = ?", id).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch user", err)
	}

	return &user, nil
}
