package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblioteca/internal/logging"
)

// Database owns the single connection every store shares.
type Database struct {
	DB   *gorm.DB
	path string
}

// Option customizes NewDatabase.
type Option func(*options)

type options struct {
	logger  logger.Interface
	plugins []gorm.Plugin
}

// WithLogger replaces the default zerolog-backed gorm logger.
func WithLogger(l logger.Interface) Option {
	return func(o *options) { o.logger = l }
}

// WithPlugins registers gorm plugins (metrics, tracing) on the connection.
func WithPlugins(plugins ...gorm.Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, plugins...) }
}

// NewDatabase opens the SQLite file at dbPath with foreign keys enforced and
// bootstraps the schema. ":memory:" is accepted for tests.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logger: logging.NewGormLogger(false)}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:         o.logger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	// One logical connection. It also keeps a :memory: database alive.
	sqlDB.SetMaxOpenConns(1)

	for _, p := range o.plugins {
		if err := db.Use(p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to register plugin %s: %w", p.Name(), err)
		}
	}

	if err := Bootstrap(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	logging.Info().Str("path", dbPath).Msg("database initialized")

	return &Database{DB: db, path: dbPath}, nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on"
}

// Path returns the path the database was opened with.
func (d *Database) Path() string {
	return d.path
}

// Ping checks that the connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
