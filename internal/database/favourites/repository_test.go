package favourites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database/dbtest"
	"github.com/mrlokans/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	db := dbtest.Open(t, "favourites")
	return db, NewRepository(db)
}

func TestRepository_AddFavourite(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	require.NoError(t, repo.AddFavourite(user, book))

	ok, err := repo.IsFavourite(user, book)
	require.NoError(t, err)
	assert.True(t, ok)

	err = repo.AddFavourite(user, book)
	assert.ErrorIs(t, err, entities.ErrFavouriteExists)
	assert.ErrorIs(t, err, entities.ErrAlreadyExists)
}

func TestRepository_AddFavourite_UnknownMaterial(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "Maria", "maria@email.com")

	err := repo.AddFavourite(user, 9999)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrAlreadyExists)
}

func TestRepository_RemoveFavourite(t *testing.T) {
	db, repo := setupTestDB(t)

	user := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")
	require.NoError(t, repo.AddFavourite(user, book))

	require.NoError(t, repo.RemoveFavourite(user, book))

	ok, err := repo.IsFavourite(user, book)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, repo.RemoveFavourite(user, book), entities.ErrFavouriteNotFound)
}

func TestRepository_ListUserFavourites(t *testing.T) {
	db, repo := setupTestDB(t)

	maria := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	joao := dbtest.InsertUser(t, db, "João", "joao@email.com")
	hobbit := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")
	veja := dbtest.InsertMaterial(t, db, "Veja", "revista")

	require.NoError(t, repo.AddFavourite(maria, hobbit))
	require.NoError(t, repo.AddFavourite(maria, veja))
	require.NoError(t, repo.AddFavourite(joao, hobbit))

	list, err := repo.ListUserFavourites(maria)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, veja, list[0].MaterialID)
	assert.Equal(t, entities.KindMagazine, list[0].Kind)
	assert.Equal(t, "O Hobbit", list[1].Title)
	assert.False(t, list[1].FavouriteAt.IsZero())
}
