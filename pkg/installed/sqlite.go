package installed

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/glorpus-work/pakr/pkg/model"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS packages (
    name TEXT PRIMARY KEY,
    version TEXT NOT NULL,
    download_url TEXT NOT NULL,
    hash TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    install_date TEXT NOT NULL
);
`

// SQLiteBackend stores the mapping in a SQLite database, one row per package.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// OpenSQLiteBackend opens (creating if needed) the database at path.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := fsutil.EnsureFileDir(path); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	b := &SQLiteBackend{db: db, path: path}
	if err := b.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) initSchema() error {
	if _, err := b.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to initialise schema in %s: %w", b.path, err)
	}
	return nil
}

// Load reads every row.
func (b *SQLiteBackend) Load() (map[string]*model.InstalledPackage, error) {
	rows, err := b.db.Query(`
        SELECT name, version, download_url, hash, description, install_date
        FROM packages ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	packages := map[string]*model.InstalledPackage{}
	for rows.Next() {
		pkg := &model.InstalledPackage{}
		var installDate string
		if err := rows.Scan(&pkg.Name, &pkg.Version, &pkg.DownloadURL, &pkg.Hash, &pkg.Description, &installDate); err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		pkg.InstallDate, err = time.Parse(time.RFC3339Nano, installDate)
		if err != nil {
			return nil, fmt.Errorf("invalid install date %q for %s: %w", installDate, pkg.Name, err)
		}
		packages[pkg.Name] = pkg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read package rows: %w", err)
	}
	return packages, nil
}

// Save replaces all rows in a single transaction.
func (b *SQLiteBackend) Save(packages map[string]*model.InstalledPackage) (err error) {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec(`DELETE FROM packages`); err != nil {
		return fmt.Errorf("failed to clear packages: %w", err)
	}
	stmt, err := tx.Prepare(`
        INSERT INTO packages (name, version, download_url, hash, description, install_date)
        VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, pkg := range packages {
		if _, err := stmt.Exec(pkg.Name, pkg.Version, pkg.DownloadURL, pkg.Hash, pkg.Description,
			pkg.InstallDate.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", pkg.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit packages: %w", err)
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
