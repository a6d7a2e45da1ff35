package postgres

import (
	"context"
	"database/sql"
	"sync"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"accounts/internal/infra/persistence/migrations"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Migrate applies every embedded migration that has not run yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}
