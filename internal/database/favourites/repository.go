// Package favourites provides database operations for favourite materials.
//
// This package implements the FavouritesStore interface defined in internal/http/favourites.go.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	err := repo.AddFavourite(userID, materialID)
//	list, err := repo.ListUserFavourites(userID)
package favourites

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavourite marks a material as a favourite of the user.
func (r *Repository) AddFavourite(userID, materialID uint) error {
	favourite := &entities.Favourite{UserID: userID, MaterialID: materialID}
	if err := r.db.Create(favourite).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return entities.ErrFavouriteExists
		}
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// RemoveFavourite unmarks a favourite.
func (r *Repository) RemoveFavourite(userID, materialID uint) error {
	result := r.db.Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Delete(&entities.Favourite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favourite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrFavouriteNotFound
	}
	return nil
}

// IsFavourite reports whether the user has marked the material.
func (r *Repository) IsFavourite(userID, materialID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Favourite{}).
		Where("usuario_id = ? AND material_id = ?", userID, materialID).
		Count(&count).Error
	return count > 0, err
}

// ListUserFavourites returns the user's favourites, newest first.
func (r *Repository) ListUserFavourites(userID uint) ([]entities.FavouriteMaterial, error) {
	var favourites []entities.FavouriteMaterial
	err := r.db.Raw(`
		SELECT f.material_id, m.titulo, m.autor, m.categoria, f.data_favorito
		FROM favorita f
		JOIN material_bibliografico m ON m.id = f.material_id
		WHERE f.usuario_id = ?
		ORDER BY f.data_favorito DESC, f.id DESC`, userID).
		Scan(&favourites).Error
	return favourites, err
}
