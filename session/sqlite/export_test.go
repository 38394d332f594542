// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"io/fs"
)

// ApplyMigrationsForTest runs the migrator on a fresh database at path.
// The migrations are applied twice to prove they run once.
func ApplyMigrationsForTest(ctx context.Context, path string, fsys fs.FS) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = applyMigrations(ctx, db, fsys, "."); err != nil {
		return err
	}

	return applyMigrations(ctx, db, fsys, ".")
}
