// Package reviews stores written reviews, one per user and material.
package reviews

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WriteReview stores the user's review of a material.
func (r *Repository) WriteReview(userID, materialID uint, text string) error {
	review := &entities.Review{UserID: userID, MaterialID: materialID, Text: text}
	if err := r.db.Create(review).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return entities.ErrReviewExists
		}
		return fmt.Errorf("failed to write review: %w", err)
	}
	return nil
}

// EditReview replaces the text and timestamp of an existing review. It
// never creates one.
func (r *Repository) EditReview(userID, materialID uint, text string) error {
	result := r.db.Table(entities.Review{}.TableName()).
		Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Updates(map[string]interface{}{
			"texto_resenha": text,
			"data_resenha":  gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to edit review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrReviewNotFound
	}
	return nil
}

// RemoveReview deletes the user's review of a material.
func (r *Repository) RemoveReview(userID, materialID uint) error {
	result := r.db.Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Delete(&entities.Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrReviewNotFound
	}
	return nil
}

// GetReview returns the user's review of a material.
func (r *Repository) GetReview(userID, materialID uint) (*entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Limit(1).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, entities.ErrReviewNotFound
	}
	return &reviews[0], nil
}

// ListMaterialReviews returns every review of a material with the
// reviewer's name, newest first.
func (r *Repository) ListMaterialReviews(materialID uint) ([]entities.MaterialReview, error) {
	var reviews []entities.MaterialReview
	err := r.db.Raw(`
		SELECT r.id, r.usuario_id, r.material_id, r.texto_resenha, r.data_resenha, u.nome
		FROM resenha r
		JOIN usuario u ON u.id = r.usuario_id
		WHERE r.material_id = ?
		ORDER BY r.data_resenha DESC, r.id DESC`, materialID).
		Scan(&reviews).Error
	return reviews, err
}

// ListUserReviews returns every review written by a user with the material
// title, newest first.
func (r *Repository) ListUserReviews(userID uint) ([]entities.UserReview, error) {
	var reviews []entities.UserReview
	err := r.db.Raw(`
		SELECT r.id, r.usuario_id, r.material_id, r.texto_resenha, r.data_resenha, m.titulo
		FROM resenha r
		JOIN material_bibliografico m ON m.id = r.material_id
		WHERE r.usuario_id = ?
		ORDER BY r.data_resenha DESC, r.id DESC`, userID).
		Scan(&reviews).Error
	return reviews, err
}
