package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database/dbtest"
	"github.com/mrlokans/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	db := dbtest.Open(t, "catalog")
	return db, NewRepository(db)
}

func intPtr(v int) *int { return &v }

func addHobbit(t *testing.T, repo *Repository) uint {
	t.Helper()
	id, err := repo.AddMaterial(entities.Material{
		Author: "J.R.R. Tolkien",
		Title:  "O Hobbit",
		Year:   intPtr(1937),
		Details: entities.BookDetails{
			Genre:     "Fantasia",
			Movement:  "Literatura fantástica",
			Publisher: "HarperCollins",
		},
	})
	require.NoError(t, err)
	return id
}

// specializationRows counts rows with id across every specialization table.
func specializationRows(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var total int64
	for _, kind := range entities.MaterialKinds {
		var n int64
		require.NoError(t, db.Table(kind.Table()).Where("id = ?", id).Count(&n).Error)
		total += n
	}
	return total
}

func TestRepository_AddMaterial_EveryKind(t *testing.T) {
	db, repo := setupTestDB(t)

	materials := []entities.Material{
		{Author: "Tolkien", Title: "O Hobbit", Year: intPtr(1937), Details: entities.BookDetails{Genre: "Fantasia"}},
		{Author: "Prof. Lima", Title: "Cálculo I", Details: entities.HandoutDetails{Class: "T01", Subject: "Matemática"}},
		{Author: "Machado de Assis", Title: "Dom Casmurro", Details: entities.EbookDetails{URL: "https://example.com/dc.epub"}},
		{Author: "Vários", Title: "Superinteressante", Details: entities.MagazineDetails{Publisher: "Abril"}},
		{Author: "Ana", Title: "TCC sobre grafos", Details: entities.ThesisDetails{}},
		{Author: "Bia", Title: "Resenha de Dom Casmurro", Details: entities.ReviewArtifactDetails{}},
	}

	for _, m := range materials {
		t.Run(string(m.Kind()), func(t *testing.T) {
			id, err := repo.AddMaterial(m)
			require.NoError(t, err)
			assert.NotZero(t, id)

			assert.Equal(t, int64(1), specializationRows(t, db, id))

			var n int64
			require.NoError(t, db.Table(m.Kind().Table()).Where("id = ?", id).Count(&n).Error)
			assert.Equal(t, int64(1), n, "row must live in %s", m.Kind().Table())

			entry, err := repo.GetMaterialByID(id)
			require.NoError(t, err)
			assert.Equal(t, m.Kind(), entry.Kind)
			assert.Equal(t, m.Details, entry.Details)
		})
	}
}

func TestRepository_AddMaterial_Validation(t *testing.T) {
	db, repo := setupTestDB(t)

	tests := []struct {
		name    string
		input   entities.Material
		wantErr error
	}{
		{"no details", entities.Material{Author: "A", Title: "T"}, entities.ErrInvalidMaterialKind},
		{"missing title", entities.Material{Author: "A", Details: entities.ThesisDetails{}}, entities.ErrValidation},
		{"missing author", entities.Material{Title: "T", Details: entities.ThesisDetails{}}, entities.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.AddMaterial(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	db.Table("material_bibliografico").Count(&count)
	assert.Zero(t, count)
}

func TestRepository_AddMaterial_RollsBackOnSpecializationFailure(t *testing.T) {
	db, repo := setupTestDB(t)

	require.NoError(t, db.Exec(`CREATE TRIGGER reject_livro BEFORE INSERT ON livro
		BEGIN SELECT RAISE(ABORT, 'livro rejected'); END`).Error)

	_, err := repo.AddMaterial(entities.Material{Author: "A", Title: "T", Details: entities.BookDetails{}})
	require.Error(t, err)

	var count int64
	db.Table("material_bibliografico").Count(&count)
	assert.Zero(t, count, "supertype row must not survive a failed specialization insert")
}

func TestRepository_AddMaterial_UnknownOwner(t *testing.T) {
	db, repo := setupTestDB(t)

	owner := uint(4242)
	_, err := repo.AddMaterial(entities.Material{OwnerID: &owner, Author: "A", Title: "T", Details: entities.ThesisDetails{}})
	require.Error(t, err)

	var count int64
	db.Table("material_bibliografico").Count(&count)
	assert.Zero(t, count)
}

func TestRepository_AddMaterial_PointerDetails(t *testing.T) {
	db, repo := setupTestDB(t)

	id, err := repo.AddMaterial(entities.Material{
		Author:  "Tolkien",
		Title:   "O Hobbit",
		Details: &entities.BookDetails{Genre: "Fantasia", Publisher: "HarperCollins"},
	})
	require.NoError(t, err)

	entry, err := repo.GetMaterialByID(id)
	require.NoError(t, err)
	assert.Equal(t, entities.BookDetails{Genre: "Fantasia", Publisher: "HarperCollins"}, entry.Details)

	t.Run("nil pointer is rejected", func(t *testing.T) {
		_, err := repo.AddMaterial(entities.Material{
			Author:  "Tolkien",
			Title:   "O Silmarillion",
			Details: (*entities.BookDetails)(nil),
		})
		assert.ErrorIs(t, err, entities.ErrInvalidMaterialKind)

		var count int64
		db.Table("material_bibliografico").Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestRepository_ListCatalog(t *testing.T) {
	db, repo := setupTestDB(t)

	hobbit := addHobbit(t, repo)
	magazine, err := repo.AddMaterial(entities.Material{Author: "Vários", Title: "Veja", Details: entities.MagazineDetails{Publisher: "Abril"}})
	require.NoError(t, err)

	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	require.NoError(t, db.Exec("INSERT INTO avaliacao (usuario_id, material_id, nota) VALUES (?, ?, 4)", user, hobbit).Error)

	t.Run("all materials", func(t *testing.T) {
		entries, err := repo.ListCatalog("")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, hobbit, entries[0].ID)
		assert.Equal(t, "O Hobbit", entries[0].Title)
		assert.Equal(t, 1937, *entries[0].Year)
		assert.Equal(t, entities.BookDetails{Genre: "Fantasia", Movement: "Literatura fantástica", Publisher: "HarperCollins"}, entries[0].Details)
		require.NotNil(t, entries[0].AverageRating)
		assert.InDelta(t, 4.0, *entries[0].AverageRating, 0.0001)
		assert.Empty(t, entries[0].Status)

		assert.Equal(t, magazine, entries[1].ID)
		assert.Nil(t, entries[1].AverageRating)
		assert.Nil(t, entries[1].Year)
	})

	t.Run("category filter", func(t *testing.T) {
		entries, err := repo.ListCatalog(entities.KindMagazine)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Veja", entries[0].Title)
		assert.Equal(t, entities.MagazineDetails{Publisher: "Abril"}, entries[0].Details)
	})

	t.Run("empty category", func(t *testing.T) {
		entries, err := repo.ListCatalog(entities.KindHandout)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRepository_AverageRating_Rounded(t *testing.T) {
	db, repo := setupTestDB(t)

	hobbit := addHobbit(t, repo)
	a := dbtest.InsertUser(t, db, "João", "joao@email.com")
	b := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	c := dbtest.InsertUser(t, db, "Pedro", "pedro@email.com")

	require.NoError(t, db.Exec("INSERT INTO avaliacao (usuario_id, material_id, nota) VALUES (?, ?, 4.5)", a, hobbit).Error)
	require.NoError(t, db.Exec("INSERT INTO avaliacao (usuario_id, material_id, nota) VALUES (?, ?, 5.0)", b, hobbit).Error)

	entry, err := repo.GetMaterialByID(hobbit)
	require.NoError(t, err)
	require.NotNil(t, entry.AverageRating)
	assert.Equal(t, 4.75, *entry.AverageRating)

	require.NoError(t, db.Exec("INSERT INTO avaliacao (usuario_id, material_id, nota) VALUES (?, ?, 4.0)", c, hobbit).Error)

	entry, err = repo.GetMaterialByID(hobbit)
	require.NoError(t, err)
	assert.Equal(t, 4.5, *entry.AverageRating)
}

func TestRepository_Status(t *testing.T) {
	db, repo := setupTestDB(t)

	hobbit := addHobbit(t, repo)
	reader := dbtest.InsertUser(t, db, "João", "joao@email.com")
	waiting := dbtest.InsertUser(t, db, "Pedro", "pedro@email.com")

	status, err := repo.GetMaterialStatus(hobbit)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, status)

	require.NoError(t, db.Exec("INSERT INTO reserva (usuario_id, material_id) VALUES (?, ?)", waiting, hobbit).Error)
	status, err = repo.GetMaterialStatus(hobbit)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReserved, status)

	require.NoError(t, db.Exec("INSERT INTO emprestimo (usuario_id, material_id, data_devolucao_prevista) VALUES (?, ?, datetime('now', '+15 days'))", reader, hobbit).Error)

	t.Run("open loan dominates pending reservation", func(t *testing.T) {
		status, err := repo.GetMaterialStatus(hobbit)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusLoaned, status)

		entries, err := repo.ListCatalogWithStatus()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entities.StatusLoaned, entries[0].Status)
	})

	t.Run("returned loan falls back to reservation", func(t *testing.T) {
		require.NoError(t, db.Exec("UPDATE emprestimo SET data_devolucao_real = CURRENT_TIMESTAMP WHERE material_id = ?", hobbit).Error)
		status, err := repo.GetMaterialStatus(hobbit)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusReserved, status)
	})

	t.Run("non-pending reservation does not count", func(t *testing.T) {
		require.NoError(t, db.Exec("UPDATE reserva SET status_reserva = 'expirada' WHERE material_id = ?", hobbit).Error)
		status, err := repo.GetMaterialStatus(hobbit)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusAvailable, status)
	})

	t.Run("unknown material", func(t *testing.T) {
		_, err := repo.GetMaterialStatus(9999)
		assert.ErrorIs(t, err, entities.ErrMaterialNotFound)
	})
}

func TestRepository_GetMaterialByID_NotFound(t *testing.T) {
	_, repo := setupTestDB(t)

	_, err := repo.GetMaterialByID(1)
	assert.ErrorIs(t, err, entities.ErrMaterialNotFound)
}

func TestRepository_SearchByTitle(t *testing.T) {
	db, repo := setupTestDB(t)

	hobbit := addHobbit(t, repo)
	_, err := repo.AddMaterial(entities.Material{Author: "Tolkien", Title: "O Senhor dos Anéis", Details: entities.BookDetails{}})
	require.NoError(t, err)

	t.Run("case-insensitive substring", func(t *testing.T) {
		results, err := repo.SearchByTitle("hobb")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, entities.MaterialSummary{
			ID:     hobbit,
			Author: "J.R.R. Tolkien",
			Title:  "O Hobbit",
			Year:   intPtr(1937),
			Kind:   entities.KindBook,
		}, results[0])
	})

	t.Run("matches anywhere", func(t *testing.T) {
		results, err := repo.SearchByTitle("o ")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := repo.SearchByTitle("duna")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("with status", func(t *testing.T) {
		user := dbtest.InsertUser(t, db, "João", "joao@email.com")
		require.NoError(t, db.Exec("INSERT INTO reserva (usuario_id, material_id) VALUES (?, ?)", user, hobbit).Error)

		results, err := repo.SearchByTitleWithStatus("HOBBIT")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, entities.StatusReserved, results[0].Status)
	})
}

func TestRepository_RemoveMaterial(t *testing.T) {
	db, repo := setupTestDB(t)

	hobbit := addHobbit(t, repo)
	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	require.NoError(t, db.Exec("INSERT INTO favorita (usuario_id, material_id) VALUES (?, ?)", user, hobbit).Error)
	require.NoError(t, db.Exec("INSERT INTO avaliacao (usuario_id, material_id, nota) VALUES (?, ?, 3)", user, hobbit).Error)
	require.NoError(t, db.Exec("INSERT INTO resenha (usuario_id, material_id, texto_resenha) VALUES (?, ?, 'bom')", user, hobbit).Error)
	require.NoError(t, db.Exec("INSERT INTO reserva (usuario_id, material_id) VALUES (?, ?)", user, hobbit).Error)
	require.NoError(t, db.Exec("INSERT INTO emprestimo (usuario_id, material_id, data_devolucao_prevista) VALUES (?, ?, CURRENT_TIMESTAMP)", user, hobbit).Error)

	require.NoError(t, repo.RemoveMaterial(hobbit))

	assert.Zero(t, specializationRows(t, db, hobbit))
	for _, table := range []string{"favorita", "avaliacao", "resenha", "reserva", "emprestimo"} {
		var n int64
		require.NoError(t, db.Table(table).Where("material_id = ?", hobbit).Count(&n).Error)
		assert.Zero(t, n, table)
	}

	exists, err := repo.MaterialExists(hobbit)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.RemoveMaterial(hobbit), entities.ErrMaterialNotFound)
}

func TestRepository_RemoveMaterial_CascadesEbookAccess(t *testing.T) {
	db, repo := setupTestDB(t)

	id, err := repo.AddMaterial(entities.Material{Author: "A", Title: "E", Details: entities.EbookDetails{URL: "u"}})
	require.NoError(t, err)
	user := dbtest.InsertUser(t, db, "João", "joao@email.com")
	require.NoError(t, db.Exec("INSERT INTO acesso_ebook (usuario_id, ebook_id, duracao_acesso) VALUES (?, ?, 30)", user, id).Error)

	require.NoError(t, repo.RemoveMaterial(id))

	var n int64
	db.Table("acesso_ebook").Count(&n)
	assert.Zero(t, n)
}
