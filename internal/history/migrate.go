// apps/go-server/internal/history/migrate.go
//
// Schema migrations for the history database.
//   - Scripts are the embedded assets/sql/*.sql files, applied in lexical order.
//   - Applied names are recorded in _migrations; reruns are no-ops.
//   - Scripts that manage their own transaction (BEGIN TRANSACTION, or
//     toggling foreign keys) run outside an outer transaction.

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/assets"
)

// Migrate applies every pending script from assets.Migrations.
func Migrate(db *sql.DB) error {
	return migrateFS(db, assets.Migrations)
}

func migrateFS(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if err := apply(db, f, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func apply(db *sql.DB, name, script string) error {
	upper := strings.ToUpper(script)
	selfManaged := strings.Contains(upper, "BEGIN TRANSACTION") ||
		strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
		strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")

	if selfManaged {
		if _, err := db.Exec(script); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied (self-managed)")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply %s: %w", name, err)
	}
	if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	log.Info().Str("migration", name).Msg("applied")
	return nil
}
