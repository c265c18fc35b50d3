package database

import (
	"context"
	"os"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath, WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func countRows(t *testing.T, db *gorm.DB, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Raw(query, args...).Scan(&n).Error)
	return n
}

func TestNewDatabase_CreatesSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range Tables {
		n := countRows(t, db.DB, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		assert.Equal(t, int64(1), n, "table %s", table)
	}

	n := countRows(t, db.DB, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger' AND name = 'atualizar_timestamp_usuario'")
	assert.Equal(t, int64(1), n)
}

func TestBootstrap_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Exec("INSERT INTO usuario (nome, email, senha_hash) VALUES ('Ana', 'ana@x.com', 'h')").Error)

	require.NoError(t, Bootstrap(db.DB))
	require.NoError(t, Bootstrap(db.DB))

	assert.Equal(t, int64(1), countRows(t, db.DB, "SELECT COUNT(*) FROM usuario"))
}

func TestNewDatabase_ReopenKeepsData(t *testing.T) {
	dbPath := "./test_reopen.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath, WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	require.NoError(t, db.DB.Exec("INSERT INTO usuario (nome, email, senha_hash) VALUES ('Ana', 'ana@x.com', 'h')").Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(dbPath, WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, int64(1), countRows(t, db.DB, "SELECT COUNT(*) FROM usuario"))
	assert.Equal(t, dbPath, db.Path())
}

func TestForeignKeys_Enforced(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("pragma is on", func(t *testing.T) {
		assert.Equal(t, int64(1), countRows(t, db.DB, "PRAGMA foreign_keys"))
	})

	t.Run("dangling reference is rejected", func(t *testing.T) {
		err := db.DB.Exec("INSERT INTO livro (id, genero) VALUES (999, 'x')").Error
		require.Error(t, err)
		assert.True(t, IsForeignKeyViolation(err))
	})

	t.Run("deleting a user nulls material ownership and cascades interactions", func(t *testing.T) {
		require.NoError(t, db.DB.Exec("INSERT INTO usuario (id, nome, email, senha_hash) VALUES (10, 'Ana', 'ana@fk.com', 'h')").Error)
		require.NoError(t, db.DB.Exec("INSERT INTO material_bibliografico (id, usuario_id, autor, titulo, categoria) VALUES (20, 10, 'A', 'T', 'livro')").Error)
		require.NoError(t, db.DB.Exec("INSERT INTO favorita (usuario_id, material_id) VALUES (10, 20)").Error)

		require.NoError(t, db.DB.Exec("DELETE FROM usuario WHERE id = 10").Error)

		assert.Equal(t, int64(1), countRows(t, db.DB, "SELECT COUNT(*) FROM material_bibliografico WHERE id = 20 AND usuario_id IS NULL"))
		assert.Equal(t, int64(0), countRows(t, db.DB, "SELECT COUNT(*) FROM favorita WHERE usuario_id = 10"))
	})
}

func TestConstraints_Classification(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Exec("INSERT INTO usuario (nome, email, senha_hash) VALUES ('Ana', 'dup@x.com', 'h')").Error)

	err := db.DB.Exec("INSERT INTO usuario (nome, email, senha_hash) VALUES ('Bia', 'dup@x.com', 'h')").Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	require.NoError(t, db.DB.Exec("INSERT INTO material_bibliografico (id, autor, titulo, categoria) VALUES (1, 'A', 'T', 'livro')").Error)
	err = db.DB.Exec("INSERT INTO avaliacao (usuario_id, material_id, nota) VALUES (1, 1, 7)").Error
	require.Error(t, err)
	assert.True(t, IsCheckViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
}

func TestTrigger_RefreshesModificationTimestamp(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Exec("INSERT INTO usuario (id, nome, email, senha_hash) VALUES (1, 'Ana', 'ana@x.com', 'h')").Error)
	// Explicitly assigned columns keep the assigned value.
	require.NoError(t, db.DB.Exec("UPDATE usuario SET data_modificacao = '2000-01-01 00:00:00' WHERE id = 1").Error)

	require.NoError(t, db.DB.Exec("UPDATE usuario SET nome = 'Ana Maria' WHERE id = 1").Error)

	var modified string
	require.NoError(t, db.DB.Raw("SELECT CAST(data_modificacao AS TEXT) FROM usuario WHERE id = 1").Scan(&modified).Error)
	assert.NotEqual(t, "2000-01-01 00:00:00", modified)
}

func TestDatabase_PingAndClose(t *testing.T) {
	db, err := NewDatabase(":memory:", WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	assert.NoError(t, db.Ping(context.Background()))
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}
