// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.CreateUser("Ana", "ana@mail.com", hash)
//	user, err = repo.GetUserByEmail("ana@mail.com")
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user with an already hashed password.
func (r *Repository) CreateUser(name, email, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := r.db.Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.GetUserByID(user.ID)
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ListUsers returns every user ordered by name.
func (r *Repository) ListUsers() ([]entities.UserSummary, error) {
	var users []entities.UserSummary
	err := r.db.Model(&entities.User{}).
		Select("id, nome, email").
		Order("nome ASC, id ASC").
		Scan(&users).Error
	return users, err
}

// UpdateUser changes the non-empty fields of upd.
func (r *Repository) UpdateUser(id uint, upd entities.UserUpdate) error {
	if upd.IsEmpty() {
		return entities.ErrNothingToUpdate
	}

	values := map[string]interface{}{}
	if upd.Name != "" {
		values["nome"] = upd.Name
	}
	if upd.Email != "" {
		values["email"] = upd.Email
	}
	if upd.PasswordHash != "" {
		values["senha_hash"] = upd.PasswordHash
	}

	return r.update(id, values)
}

// UpdateName renames a user.
func (r *Repository) UpdateName(id uint, name string) error {
	return r.UpdateUser(id, entities.UserUpdate{Name: name})
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *Repository) UpdatePasswordHash(id uint, hash string) error {
	return r.UpdateUser(id, entities.UserUpdate{PasswordHash: hash})
}

// DeleteUser removes a user. Friendships, loans, favourites, ratings,
// reviews, reservations and access logs go with it; owned materials stay
// with a null owner.
func (r *Repository) DeleteUser(id uint) error {
	result := r.db.Delete(&entities.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func (r *Repository) update(id uint, values map[string]interface{}) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return entities.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ErrUserNotFound
	}
	return err
}
