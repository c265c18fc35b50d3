// Package loans records material loans and their returns.
//
// A loan is open while data_devolucao_real is NULL. A material with at least
// one open loan is on loan.
package loans

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all loan database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// RegisterLoan opens a loan stamped with the current time. The expected
// return date is stored as given.
func (r *Repository) RegisterLoan(userID, materialID uint, expectedReturn time.Time) (uint, error) {
	loan := &entities.Loan{
		UserID:           userID,
		MaterialID:       materialID,
		ExpectedReturnAt: expectedReturn.UTC(),
	}
	if err := r.db.Create(loan).Error; err != nil {
		return 0, fmt.Errorf("failed to register loan: %w", err)
	}
	return loan.ID, nil
}

// RegisterReturn stamps the actual return of an open loan. Returning the
// same loan twice fails with ErrLoanAlreadyReturned and keeps the first
// stamp.
func (r *Repository) RegisterReturn(loanID uint) error {
	result := r.db.Model(&entities.Loan{}).
		Where("id = ? AND data_devolucao_real IS NULL", loanID).
		Update("data_devolucao_real", r.now())
	if result.Error != nil {
		return fmt.Errorf("failed to register return: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.GetLoan(loanID); err != nil {
		return err
	}
	return entities.ErrLoanAlreadyReturned
}

// GetLoan retrieves a loan by ID.
func (r *Repository) GetLoan(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	if err := r.db.First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// FindOpenLoan returns the open loan of materialID held by userID.
func (r *Repository) FindOpenLoan(userID, materialID uint) (*entities.OpenLoan, error) {
	return r.findOpen(r.db.Where("usuario_id = ? AND material_id = ?", userID, materialID))
}

// FindOpenLoanForMaterial returns the open loan of materialID, whoever holds it.
func (r *Repository) FindOpenLoanForMaterial(materialID uint) (*entities.OpenLoan, error) {
	return r.findOpen(r.db.Where("material_id = ?", materialID))
}

func (r *Repository) findOpen(scope *gorm.DB) (*entities.OpenLoan, error) {
	var loans []entities.OpenLoan
	err := scope.Model(&entities.Loan{}).
		Select("id, usuario_id").
		Where("data_devolucao_real IS NULL").
		Order("id ASC").
		Limit(1).
		Scan(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find open loan: %w", err)
	}
	if len(loans) == 0 {
		return nil, entities.ErrLoanNotFound
	}
	return &loans[0], nil
}

// ListUserLoans returns every loan of userID, most recent first.
func (r *Repository) ListUserLoans(userID uint) ([]entities.LoanWithTitle, error) {
	var loans []entities.LoanWithTitle
	err := r.db.Raw(`
		SELECT e.id, e.usuario_id, e.material_id, e.data_emprestimo,
			e.data_devolucao_prevista, e.data_devolucao_real, m.titulo
		FROM emprestimo e
		JOIN material_bibliografico m ON m.id = e.material_id
		WHERE e.usuario_id = ?
		ORDER BY e.data_emprestimo DESC, e.id DESC`, userID).
		Scan(&loans).Error
	return loans, err
}

// ListOverdue returns open loans whose expected return is before now,
// oldest due date first.
func (r *Repository) ListOverdue(now time.Time) ([]entities.OverdueLoan, error) {
	var loans []entities.OverdueLoan
	err := r.db.Raw(`
		SELECT e.id, e.usuario_id, e.material_id, e.data_emprestimo,
			e.data_devolucao_prevista, e.data_devolucao_real,
			m.titulo, u.nome, u.email
		FROM emprestimo e
		JOIN material_bibliografico m ON m.id = e.material_id
		JOIN usuario u ON u.id = e.usuario_id
		WHERE e.data_devolucao_real IS NULL AND e.data_devolucao_prevista < ?
		ORDER BY e.data_devolucao_prevista ASC, e.id ASC`, now.UTC()).
		Scan(&loans).Error
	return loans, err
}
