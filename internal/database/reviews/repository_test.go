package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database/dbtest"
	"github.com/mrlokans/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	db := dbtest.Open(t, "reviews")
	return db, NewRepository(db)
}

func TestRepository_WriteReview(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	require.NoError(t, repo.WriteReview(user, book, "Uma aventura incrível."))

	review, err := repo.GetReview(user, book)
	require.NoError(t, err)
	assert.Equal(t, "Uma aventura incrível.", review.Text)
	assert.False(t, review.ReviewedAt.IsZero())

	err = repo.WriteReview(user, book, "De novo")
	assert.ErrorIs(t, err, entities.ErrReviewExists)
}

func TestRepository_EditReview(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	t.Run("no review yet is not upserted", func(t *testing.T) {
		err := repo.EditReview(user, book, "texto")
		assert.ErrorIs(t, err, entities.ErrReviewNotFound)

		_, err = repo.GetReview(user, book)
		assert.ErrorIs(t, err, entities.ErrReviewNotFound)
	})

	t.Run("replaces text and timestamp", func(t *testing.T) {
		require.NoError(t, repo.WriteReview(user, book, "primeira"))
		require.NoError(t, db.Exec("UPDATE resenha SET data_resenha = '2000-01-01 00:00:00'").Error)

		require.NoError(t, repo.EditReview(user, book, "revisada"))

		review, err := repo.GetReview(user, book)
		require.NoError(t, err)
		assert.Equal(t, "revisada", review.Text)
		assert.Greater(t, review.ReviewedAt.Year(), 2000)
	})
}

func TestRepository_RemoveReview(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")
	require.NoError(t, repo.WriteReview(user, book, "texto"))

	require.NoError(t, repo.RemoveReview(user, book))
	assert.ErrorIs(t, repo.RemoveReview(user, book), entities.ErrReviewNotFound)
}

func TestRepository_ListReviews(t *testing.T) {
	db, repo := setupTestDB(t)

	joao := dbtest.InsertUser(t, db, "João", "joao@email.com")
	maria := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	hobbit := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")
	duna := dbtest.InsertMaterial(t, db, "Duna", "livro")

	require.NoError(t, repo.WriteReview(joao, hobbit, "bom"))
	require.NoError(t, repo.WriteReview(maria, hobbit, "ótimo"))
	require.NoError(t, repo.WriteReview(joao, duna, "longo"))

	t.Run("per material", func(t *testing.T) {
		reviews, err := repo.ListMaterialReviews(hobbit)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Maria", reviews[0].UserName)
		assert.Equal(t, "ótimo", reviews[0].Text)
		assert.Equal(t, "João", reviews[1].UserName)
	})

	t.Run("per user", func(t *testing.T) {
		reviews, err := repo.ListUserReviews(joao)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Duna", reviews[0].Title)
		assert.Equal(t, "O Hobbit", reviews[1].Title)
	})
}
