// Package recommend suggests untouched materials from the categories a user
// interacts with most.
//
// An interaction is any loan, e-book access, favourite or rating. The
// recommender first ranks the user's categories by interaction count, then
// returns materials from the top categories the user has never interacted
// with. There is no randomization: the same data yields the same list.
package recommend

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/entities"
)

const (
	DefaultLimit         = 5
	DefaultTopCategories = 3
)

// interactedMaterials lists every material id the user touched, once per
// interaction. Takes the user id four times.
const interactedMaterials = `
	SELECT material_id FROM emprestimo WHERE usuario_id = ?
	UNION ALL
	SELECT ebook_id FROM acesso_ebook WHERE usuario_id = ?
	UNION ALL
	SELECT material_id FROM favorita WHERE usuario_id = ?
	UNION ALL
	SELECT material_id FROM avaliacao WHERE usuario_id = ?`

// CategoryCount is one ranked category of a user's interactions.
type CategoryCount struct {
	Category entities.MaterialKind `gorm:"column:categoria" json:"category"`
	Count    int                   `gorm:"column:total" json:"count"`
}

// Recommender runs the two-stage recommendation queries.
type Recommender struct {
	db            *gorm.DB
	limit         int
	topCategories int
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithLimit sets the default number of recommendations.
func WithLimit(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithTopCategories sets how many ranked categories feed the second stage.
func WithTopCategories(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.topCategories = n
		}
	}
}

// NewRecommender creates a recommender over db.
func NewRecommender(db *gorm.DB, opts ...Option) *Recommender {
	r := &Recommender{db: db, limit: DefaultLimit, topCategories: DefaultTopCategories}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TopCategories ranks the user's categories by interaction count, highest
// first, ties broken by category name.
func (r *Recommender) TopCategories(userID uint) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := r.db.Raw(`
		SELECT mb.categoria, COUNT(*) AS total
		FROM (`+interactedMaterials+`) i
		JOIN material_bibliografico mb ON mb.id = i.material_id
		GROUP BY mb.categoria
		ORDER BY total DESC, mb.categoria ASC
		LIMIT ?`, userID, userID, userID, userID, r.topCategories).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank categories: %w", err)
	}
	return counts, nil
}

// Recommend returns up to limit materials from the user's top categories
// that the user never interacted with, ordered by id. A non-positive limit
// uses the configured default. A user without interactions gets an empty
// slice.
func (r *Recommender) Recommend(userID uint, limit int) ([]entities.MaterialSummary, error) {
	if limit <= 0 {
		limit = r.limit
	}

	top, err := r.TopCategories(userID)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return []entities.MaterialSummary{}, nil
	}

	categories := make([]string, len(top))
	for i, c := range top {
		categories[i] = string(c.Category)
	}

	results := []entities.MaterialSummary{}
	err = r.db.Raw(`
		SELECT id, autor, titulo, ano, categoria
		FROM material_bibliografico
		WHERE categoria IN ?
		  AND id NOT IN (`+interactedMaterials+`)
		ORDER BY id ASC
		LIMIT ?`, categories, userID, userID, userID, userID, limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	return results, nil
}
