package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies SQL migrations from a directory against postgres,
// wrapping golang-migrate with logging and no-change handling.
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New builds a Migrator over an open database connection
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source %s: %w", migrationsPath, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{m: m, logger: logger}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("schema already up to date")
		return nil
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}
	mg.logVersion("migrations applied")
	return nil
}

// Down rolls back every applied migration
func (mg *Migrator) Down() error {
	err := mg.m.Down()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("nothing to roll back")
		return nil
	case err != nil:
		return fmt.Errorf("roll back migrations: %w", err)
	}
	mg.logger.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations; negative n rolls back
func (mg *Migrator) Steps(n int) error {
	err := mg.m.Steps(n)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("schema already up to date")
		return nil
	case err != nil:
		return fmt.Errorf("apply %d migration steps: %w", n, err)
	}
	mg.logVersion("migration steps applied")
	return nil
}

// GoTo migrates up or down until the schema sits at version
func (mg *Migrator) GoTo(version uint) error {
	err := mg.m.Migrate(version)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("already at requested version", zap.Uint("version", version))
		return nil
	case err != nil:
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}
	mg.logVersion("migrated to version")
	return nil
}

// Version reports the current schema version and dirty flag.
// A fresh database reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL.
// Only for recovering a dirty schema after a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database
func (mg *Migrator) Drop() error {
	mg.logger.Warn("dropping all database objects")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database objects: %w", err)
	}
	return nil
}

// Close releases the migration source and database handles
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		return
	}
	mg.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
