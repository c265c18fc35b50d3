// Package ebooks records e-book access sessions.
package ebooks

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles e-book access log operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new e-book access repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RegisterAccess logs that a user opened an e-book. Duration is in minutes
// and may be nil. Ids that are not e-books fail the foreign key.
func (r *Repository) RegisterAccess(userID, ebookID uint, duration *int) (uint, error) {
	access := &entities.EbookAccess{UserID: userID, EbookID: ebookID, Duration: duration}
	if err := r.db.Create(access).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, entities.ErrMaterialNotFound
		}
		return 0, fmt.Errorf("failed to register e-book access: %w", err)
	}
	return access.ID, nil
}

// ListUserAccesses returns a user's access log with e-book titles, newest
// first.
func (r *Repository) ListUserAccesses(userID uint) ([]entities.EbookAccessWithTitle, error) {
	var accesses []entities.EbookAccessWithTitle
	err := r.db.Raw(`
		SELECT a.id, a.usuario_id, a.ebook_id, a.data_acesso, a.duracao_acesso, m.titulo
		FROM acesso_ebook a
		JOIN material_bibliografico m ON m.id = a.ebook_id
		WHERE a.usuario_id = ?
		ORDER BY a.data_acesso DESC, a.id DESC`, userID).
		Scan(&accesses).Error
	return accesses, err
}
