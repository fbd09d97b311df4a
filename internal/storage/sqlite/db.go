package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/agalitsyn/sqlite"

	"github.com/agalitsyn/taskdash/internal/storage/sqlite/migrations"
)

// Open connects to dsn and applies the embedded migrations. Each connection
// to ":memory:" is a separate database, so the pool is pinned to one.
func Open(dsn string) (*sql.DB, error) {
	db, err := sqlite.Connect(dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := sqlite.MigrateUp(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}
	return db, nil
}
