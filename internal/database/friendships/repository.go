// Package friendships stores the unordered friendship graph between users.
//
// A pair is stored once, in the order it was first added; lookups and
// removals match either order.
package friendships

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all friendship database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new friendships repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFriend befriends two distinct users.
func (r *Repository) AddFriend(userID, friendID uint) error {
	if userID == friendID {
		return entities.ErrSelfFriendship
	}

	exists, err := r.AreFriends(userID, friendID)
	if err != nil {
		return err
	}
	if exists {
		return entities.ErrFriendshipExists
	}

	friendship := &entities.Friendship{UserID1: userID, UserID2: friendID}
	if err := r.db.Create(friendship).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return entities.ErrFriendshipExists
		}
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// AreFriends reports whether the pair exists in either order.
func (r *Repository) AreFriends(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Friendship{}).
		Where(pairCondition, userID, friendID, friendID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return count > 0, nil
}

// RemoveFriend deletes the friendship regardless of argument order.
func (r *Repository) RemoveFriend(userID, friendID uint) error {
	result := r.db.Where(pairCondition, userID, friendID, friendID, userID).
		Delete(&entities.Friendship{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove friend: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrFriendshipNotFound
	}
	return nil
}

// ListFriends returns the counterpart of every friendship touching userID,
// ordered by name.
func (r *Repository) ListFriends(userID uint) ([]entities.UserSummary, error) {
	var friends []entities.UserSummary
	err := r.db.Raw(`
		SELECT u.id, u.nome, u.email
		FROM amizade a
		JOIN usuario u ON u.id = CASE WHEN a.usuario_id1 = ? THEN a.usuario_id2 ELSE a.usuario_id1 END
		WHERE a.usuario_id1 = ? OR a.usuario_id2 = ?
		ORDER BY u.nome ASC, u.id ASC`, userID, userID, userID).
		Scan(&friends).Error
	return friends, err
}

const pairCondition = "(usuario_id1 = ? AND usuario_id2 = ?) OR (usuario_id1 = ? AND usuario_id2 = ?)"
