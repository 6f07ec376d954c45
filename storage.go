package identity

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/goliatone/go-errors"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenSQLite opens a sqlite database through the shim driver; the logical
// schema is one user record per identity with a unique index on email.
func OpenSQLite(dsn string) (*sql.DB, error) {
	return sql.Open(sqliteshim.ShimName, dsn)
}

// SetupPersistence registers the package models, runs the embedded
// migrations, and returns the bun handle repositories are built on.
func SetupPersistence(ctx context.Context, cfg persistence.Config, sqldb *sql.DB) (*bun.DB, error) {
	persistence.RegisterModel((*User)(nil))

	client, err := persistence.New(cfg, sqldb, sqlitedialect.New())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create persistence client")
	}

	migrations, err := fs.Sub(GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to mount migrations")
	}

	client.RegisterDialectMigrations(
		migrations,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "migration dialect validation failed")
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to run migrations")
	}

	return client.DB(), nil
}
