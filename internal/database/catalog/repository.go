// Package catalog persists bibliographic materials.
//
// A material is one material_bibliografico row plus exactly one row in the
// specialization table of its kind (livro, apostila, ebook, revista, trabalho
// or resenha_material) sharing the same id. Removing the supertype row
// cascades to the specialization and to every interaction that references it.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	id, err := repo.AddMaterial(entities.Material{
//	    Author:  "J.R.R. Tolkien",
//	    Title:   "O Hobbit",
//	    Details: entities.BookDetails{Genre: "Fantasia"},
//	})
//	status, err := repo.GetMaterialStatus(id)
package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/validation"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddMaterial stores the supertype and specialization rows in one
// transaction and returns the new id. Either both rows exist afterwards or
// neither does.
func (r *Repository) AddMaterial(m entities.Material) (uint, error) {
	details, err := concreteDetails(m.Details)
	if err != nil {
		return 0, err
	}
	m.Details = details
	if err := validation.ValidateStruct(&m); err != nil {
		return 0, err
	}

	record := entities.MaterialRecord{
		OwnerID:  m.OwnerID,
		Author:   m.Author,
		Title:    m.Title,
		Year:     m.Year,
		Category: m.Kind(),
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to insert material: %w", err)
		}
		values, err := specializationValues(record.ID, m.Details)
		if err != nil {
			return err
		}
		if err := tx.Table(m.Kind().Table()).Create(values).Error; err != nil {
			return fmt.Errorf("failed to insert %s details: %w", m.Kind(), err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return record.ID, nil
}

// ListCatalog returns every material, optionally restricted to one category,
// with its details and average rating. Ordered by id.
func (r *Repository) ListCatalog(category entities.MaterialKind) ([]entities.CatalogEntry, error) {
	query := r.db.Raw(catalogQuery(false) + " ORDER BY mb.id ASC")
	if category != "" {
		query = r.db.Raw(catalogQuery(false)+" WHERE mb.categoria = ? ORDER BY mb.id ASC", category)
	}
	return scanEntries(query)
}

// ListCatalogWithStatus is ListCatalog without a filter and with each
// material's derived status.
func (r *Repository) ListCatalogWithStatus() ([]entities.CatalogEntry, error) {
	return scanEntries(r.db.Raw(catalogQuery(true) + " ORDER BY mb.id ASC"))
}

// GetMaterialByID returns one material with its details, average rating and
// status.
func (r *Repository) GetMaterialByID(id uint) (*entities.CatalogEntry, error) {
	entries, err := scanEntries(r.db.Raw(catalogQuery(true)+" WHERE mb.id = ?", id))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, entities.ErrMaterialNotFound
	}
	return &entries[0], nil
}

// GetMaterialStatus derives the status of one material.
func (r *Repository) GetMaterialStatus(id uint) (entities.MaterialStatus, error) {
	var rows []statusRow
	err := r.db.Raw("SELECT mb.id, "+statusExpr+" AS status FROM material_bibliografico mb WHERE mb.id = ?", id).
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("failed to compute status: %w", err)
	}
	if len(rows) == 0 {
		return "", entities.ErrMaterialNotFound
	}
	return entities.MaterialStatus(rows[0].Status), nil
}

// SearchByTitle matches substring anywhere in the title using LIKE, so the
// match is case-insensitive for ASCII letters.
func (r *Repository) SearchByTitle(substring string) ([]entities.MaterialSummary, error) {
	var results []entities.MaterialSummary
	err := r.db.Model(&entities.MaterialRecord{}).
		Select("id, autor, titulo, ano, categoria").
		Where("titulo LIKE ?", "%"+substring+"%").
		Order("id ASC").
		Scan(&results).Error
	return results, err
}

// SearchByTitleWithStatus is SearchByTitle plus each hit's status.
func (r *Repository) SearchByTitleWithStatus(substring string) ([]entities.MaterialSummary, error) {
	var rows []statusRow
	err := r.db.Raw("SELECT mb.id, mb.autor, mb.titulo, mb.ano, mb.categoria, "+statusExpr+" AS status"+
		" FROM material_bibliografico mb WHERE mb.titulo LIKE ? ORDER BY mb.id ASC", "%"+substring+"%").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]entities.MaterialSummary, len(rows))
	for i, row := range rows {
		results[i] = entities.MaterialSummary{
			ID:     row.ID,
			Author: row.Author,
			Title:  row.Title,
			Year:   row.Year,
			Kind:   row.Category,
			Status: entities.MaterialStatus(row.Status),
		}
	}
	return results, nil
}

// MaterialExists reports whether a material with id exists.
func (r *Repository) MaterialExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.MaterialRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// RemoveMaterial deletes a material together with its specialization and
// every loan, reservation, favourite, rating, review and access log of it.
func (r *Repository) RemoveMaterial(id uint) error {
	result := r.db.Delete(&entities.MaterialRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to remove material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMaterialNotFound
	}
	return nil
}

func scanEntries(query *gorm.DB) ([]entities.CatalogEntry, error) {
	var rows []catalogRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	entries := make([]entities.CatalogEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.entry()
	}
	return entries, nil
}
