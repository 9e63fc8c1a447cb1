package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source/tabular"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ApplicantSource = (*Store)(nil)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a SQLite-based applicant source.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at path and applies migrations.
// MemoryPath opens a database that lives as long as the Store.
func NewStore(path string) (*Store, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_applicants.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// Load reads every applicant in stored order. An empty database yields an
// empty set with the default columns.
func (s *Store) Load(ctx context.Context) (domain.RecordSet, error) {
	header, err := s.columns(ctx)
	if err != nil {
		return domain.RecordSet{}, err
	}
	if len(header) == 0 {
		header = domain.DefaultColumns
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT applicant_id, application_date, full_name, status, details, extra
		FROM applicants
		ORDER BY position
	`)
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("querying applicants: %w", err)
	}
	defer rows.Close()

	table := [][]string{header}
	for rows.Next() {
		var id, date, name, status, details, extraJSON string
		if err := rows.Scan(&id, &date, &name, &status, &details, &extraJSON); err != nil {
			return domain.RecordSet{}, fmt.Errorf("scanning applicant: %w", err)
		}
		var extra map[string]string
		if err := json.Unmarshal([]byte(extraJSON), &extra); err != nil {
			return domain.RecordSet{}, fmt.Errorf("applicant %s: decoding extra columns: %w", id, err)
		}
		core := map[string]string{
			domain.ColumnID:              id,
			domain.ColumnApplicationDate: date,
			domain.ColumnFullName:        name,
			domain.ColumnStatus:          status,
			domain.ColumnDetails:         details,
		}
		row := make([]string, len(header))
		for i, col := range header {
			if v, ok := core[col]; ok {
				row[i] = v
			} else {
				row[i] = extra[col]
			}
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return domain.RecordSet{}, fmt.Errorf("iterating applicants: %w", err)
	}

	return tabular.Decode(s.path, table)
}

func (s *Store) columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM applicant_columns ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		header = append(header, name)
	}
	return header, rows.Err()
}

// Save replaces every stored applicant inside one transaction.
func (s *Store) Save(ctx context.Context, set domain.RecordSet) error {
	if err := s.save(ctx, set); err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) save(ctx context.Context, set domain.RecordSet) (err error) {
	table := tabular.Encode(set)
	header := set.Columns
	if len(header) == 0 {
		header = domain.DefaultColumns
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM applicant_columns"); err != nil {
		return fmt.Errorf("clearing columns: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM applicants"); err != nil {
		return fmt.Errorf("clearing applicants: %w", err)
	}

	for i, col := range header {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO applicant_columns (position, name) VALUES (?, ?)", i, col); err != nil {
			return fmt.Errorf("saving column %q: %w", col, err)
		}
	}

	for pos, row := range table[1:] {
		core := make(map[string]string, len(domain.RequiredColumns))
		extra := make(map[string]string)
		for i, col := range header {
			if slices.Contains(domain.RequiredColumns, col) {
				core[col] = row[i]
			} else {
				extra[col] = row[i]
			}
		}
		var extraJSON []byte
		extraJSON, err = json.Marshal(extra)
		if err != nil {
			return fmt.Errorf("encoding extra columns: %w", err)
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO applicants (position, applicant_id, application_date, full_name, status, details, extra)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, pos, core[domain.ColumnID], core[domain.ColumnApplicationDate], core[domain.ColumnFullName],
			core[domain.ColumnStatus], core[domain.ColumnDetails], string(extraJSON)); err != nil {
			return fmt.Errorf("saving applicant %s: %w", core[domain.ColumnID], err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
