// Package dbtest opens throwaway databases for repository tests.
package dbtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblioteca/internal/database"
)

// Open creates a bootstrapped database file named after the test and removes
// it when the test finishes.
func Open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbPath := filepath.Join(t.TempDir(), "test_"+prefix+"_"+name+".db")

	db, err := database.NewDatabase(dbPath, database.WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db.DB
}

// InsertUser adds a user row directly and returns its id.
func InsertUser(t *testing.T, db *gorm.DB, name, email string) uint {
	t.Helper()
	require.NoError(t, db.Exec("INSERT INTO usuario (nome, email, senha_hash) VALUES (?, ?, ?)", name, email, "hash").Error)
	return lastID(t, db, "usuario")
}

// InsertMaterial adds a material with its specialization row and returns its id.
func InsertMaterial(t *testing.T, db *gorm.DB, title, category string) uint {
	t.Helper()
	require.NoError(t, db.Exec("INSERT INTO material_bibliografico (autor, titulo, ano, categoria) VALUES (?, ?, ?, ?)",
		"Autor", title, 2000, category).Error)
	id := lastID(t, db, "material_bibliografico")

	table := category
	if category == "resenha" {
		table = "resenha_material"
	}
	require.NoError(t, db.Exec("INSERT INTO "+table+" (id) VALUES (?)", id).Error)
	return id
}

func lastID(t *testing.T, db *gorm.DB, table string) uint {
	t.Helper()
	var id uint
	require.NoError(t, db.Raw("SELECT MAX(id) FROM "+table).Scan(&id).Error)
	return id
}
