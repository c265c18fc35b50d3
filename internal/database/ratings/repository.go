// Package ratings stores one 0..5 rating per user and material.
package ratings

import (
	"database/sql"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all rating database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new ratings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ValidateRating rejects NaN and values outside [0, 5].
func ValidateRating(value float64) error {
	if math.IsNaN(value) || value < entities.MinRating || value > entities.MaxRating {
		return entities.ErrInvalidRating
	}
	return nil
}

// RateMaterial records the user's first rating of a material.
func (r *Repository) RateMaterial(userID, materialID uint, value float64) error {
	if err := ValidateRating(value); err != nil {
		return err
	}

	rating := &entities.Rating{UserID: userID, MaterialID: materialID, Value: value}
	if err := r.db.Create(rating).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return entities.ErrRatingExists
		}
		return fmt.Errorf("failed to rate material: %w", err)
	}
	return nil
}

// UpdateRating replaces an existing rating and refreshes its timestamp.
func (r *Repository) UpdateRating(userID, materialID uint, value float64) error {
	if err := ValidateRating(value); err != nil {
		return err
	}

	// Table, not Model: data_avaliacao is read-only on the entity.
	result := r.db.Table(entities.Rating{}.TableName()).
		Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Updates(map[string]interface{}{
			"nota":           value,
			"data_avaliacao": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrRatingNotFound
	}
	return nil
}

// RemoveRating deletes the user's rating of a material.
func (r *Repository) RemoveRating(userID, materialID uint) error {
	result := r.db.Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Delete(&entities.Rating{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrRatingNotFound
	}
	return nil
}

// GetRating returns the user's rating of a material.
func (r *Repository) GetRating(userID, materialID uint) (*entities.Rating, error) {
	var ratings []entities.Rating
	err := r.db.Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Limit(1).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, entities.ErrRatingNotFound
	}
	return &ratings[0], nil
}

// AverageRating returns the mean rating of a material rounded to two
// decimals, or nil when nobody rated it.
func (r *Repository) AverageRating(materialID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.Raw("SELECT ROUND(AVG(nota), 2) FROM avaliacao WHERE material_id = ?", materialID).
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
