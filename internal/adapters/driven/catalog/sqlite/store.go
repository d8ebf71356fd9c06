package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/sqlite/migrations"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
)

// Table is the table holding the catalog.
const Table = "animals"

// Ensure Source and Writer implement the interfaces.
var (
	_ driven.CatalogSource = (*Source)(nil)
	_ driven.CatalogWriter = (*Writer)(nil)
)

// open opens the database with WAL mode and a busy timeout.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// Source loads a catalog from the animals table.
type Source struct {
	path string
}

// NewSource creates an SQLite catalog source.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Location returns the database path.
func (s *Source) Location() string {
	return s.path
}

// Load reads every row of the animals table in rowid order, which is id
// order for tables created by Writer.
func (s *Source) Load(ctx context.Context) (*domain.Catalog, error) {
	// sql.Open would silently create a missing file.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	db, err := open(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+Table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("%s: querying %s: %w", s.path, Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: reading columns: %w", s.path, err)
	}
	header, err := catalog.ParseHeader(s.path, cols)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var animals []domain.Animal
	for row := int64(1); rows.Next(); row++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", s.path, row, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = text(v)
		}
		a, err := header.Decode(record, row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", s.path, row, err)
		}
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return catalog.Assemble(s.path, animals)
}

// text renders a dynamically typed column value the way the CSV loader
// would see it.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.DateOnly)
	default:
		return fmt.Sprint(x)
	}
}

// Writer replaces the content of the animals table.
type Writer struct {
	path string
}

// NewWriter creates an SQLite catalog writer.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write creates the database if needed and replaces every row.
func (w *Writer) Write(ctx context.Context, animals []domain.Animal) error {
	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}

	db, err := open(w.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(ctx, db, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+Table); err != nil {
		return fmt.Errorf("clearing %s: %w", Table, err)
	}

	cols := catalog.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", Table, strings.Join(cols, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range animals {
		_, err := stmt.ExecContext(ctx,
			a.ID, a.Species.String(), a.Name, a.Breed, a.AgeYears, a.Sex, a.Color,
			a.WeightKg, a.ArrivalDate, boolInt(a.Vaccinated), boolInt(a.Microchipped),
			a.EnergyLevel, a.FriendlinessLevel, a.PersonalityDescription, a.ImageURL)
		if err != nil {
			return fmt.Errorf("inserting animal %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// migrate runs all pending migrations.
func migrate(ctx context.Context, db *sql.DB, fsys embed.FS) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_animals.up.sql" -> 1
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
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
