package ratings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database/dbtest"
	"github.com/mrlokans/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	db := dbtest.Open(t, "ratings")
	return db, NewRepository(db)
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		value float64
		valid bool
	}{
		{0, true},
		{5, true},
		{2.5, true},
		{-0.01, false},
		{5.01, false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		err := ValidateRating(tt.value)
		if tt.valid {
			assert.NoError(t, err, "value %v", tt.value)
		} else {
			assert.ErrorIs(t, err, entities.ErrInvalidRating, "value %v", tt.value)
		}
	}
}

func TestRepository_RateMaterial_Bounds(t *testing.T) {
	db, repo := setupTestDB(t)

	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	for i, value := range []float64{0, 5} {
		user := dbtest.InsertUser(t, db, "Leitor", []string{"a@x.com", "b@x.com"}[i])
		assert.NoError(t, repo.RateMaterial(user, book, value))
	}

	user := dbtest.InsertUser(t, db, "Leitor", "c@x.com")
	for _, value := range []float64{-0.01, 5.01} {
		err := repo.RateMaterial(user, book, value)
		assert.ErrorIs(t, err, entities.ErrInvalidRating)
	}

	var count int64
	db.Table("avaliacao").Where("usuario_id = ?", user).Count(&count)
	assert.Zero(t, count)
}

func TestRepository_RateMaterial_Duplicate(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	require.NoError(t, repo.RateMaterial(user, book, 4.5))

	err := repo.RateMaterial(user, book, 3)
	assert.ErrorIs(t, err, entities.ErrRatingExists)

	rating, err := repo.GetRating(user, book)
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.Value)
}

func TestRepository_UpdateRating(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")
	require.NoError(t, repo.RateMaterial(user, book, 2))

	require.NoError(t, repo.UpdateRating(user, book, 3.5))
	rating, err := repo.GetRating(user, book)
	require.NoError(t, err)
	assert.Equal(t, 3.5, rating.Value)

	assert.ErrorIs(t, repo.UpdateRating(user, book, 6), entities.ErrInvalidRating)
	assert.ErrorIs(t, repo.UpdateRating(user, 9999, 3), entities.ErrRatingNotFound)
}

func TestRepository_RemoveRating(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")
	require.NoError(t, repo.RateMaterial(user, book, 2))

	require.NoError(t, repo.RemoveRating(user, book))
	_, err := repo.GetRating(user, book)
	assert.ErrorIs(t, err, entities.ErrRatingNotFound)
	assert.ErrorIs(t, repo.RemoveRating(user, book), entities.ErrRatingNotFound)

	// The material can be rated again afterwards.
	assert.NoError(t, repo.RateMaterial(user, book, 1))
}

func TestRepository_AverageRating(t *testing.T) {
	db, repo := setupTestDB(t)

	joao := dbtest.InsertUser(t, db, "João", "joao@email.com")
	maria := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	avg, err := repo.AverageRating(book)
	require.NoError(t, err)
	assert.Nil(t, avg)

	require.NoError(t, repo.RateMaterial(joao, book, 4.5))
	require.NoError(t, repo.RateMaterial(maria, book, 5.0))

	avg, err = repo.AverageRating(book)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 4.75, *avg)
}
