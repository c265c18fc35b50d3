package auth

import (
	"errors"
	"fmt"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/validation"
)

// UserStore defines the user data access the service needs.
type UserStore interface {
	CreateUser(name, email, passwordHash string) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
	GetUserByEmail(email string) (*entities.User, error)
	UpdateUser(id uint, upd entities.UserUpdate) error
	UpdatePasswordHash(id uint, hash string) error
}

// RegisterRequest is a new member's sign-up data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate changes any of a member's name, email or password. Empty
// fields are left untouched.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// Service handles registration, login and credential changes.
type Service struct {
	users  UserStore
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Register validates the request, hashes the password and stores the user.
func (s *Service) Register(req RegisterRequest) (*entities.User, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	return s.users.CreateUser(req.Name, req.Email, hash)
}

// Login returns the user whose email and password match. An unknown email
// yields entities.ErrUserNotFound, a wrong password ErrInvalidPassword.
func (s *Service) Login(email, password string) (*entities.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return user, nil
}

// ResetPassword replaces the password of the user registered under email.
func (s *Service) ResetPassword(email, newPassword string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePasswordHash(user.ID, hash)
}

// ChangeProfile applies the non-empty fields of upd and returns the
// refreshed user.
func (s *Service) ChangeProfile(userID uint, upd ProfileUpdate) (*entities.User, error) {
	if err := validation.ValidateStruct(&upd); err != nil {
		return nil, err
	}

	change := entities.UserUpdate{Name: upd.Name, Email: upd.Email}
	if upd.Password != "" {
		hash, err := s.hash(upd.Password)
		if err != nil {
			return nil, err
		}
		change.PasswordHash = hash
	}

	if err := s.users.UpdateUser(userID, change); err != nil {
		return nil, err
	}

	return s.users.GetUserByID(userID)
}

func (s *Service) hash(password string) (string, error) {
	if err := ValidatePassword(password, s.config.MinPasswordLength); err != nil {
		return "", err
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		if errors.Is(err, entities.ErrValidation) {
			return "", err
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
