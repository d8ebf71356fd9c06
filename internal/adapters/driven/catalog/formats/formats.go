// Package formats opens catalog sources and writers by storage format.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/csvfile"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/sqlite"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
)

// Detect returns the format implied by a file extension, or def when the
// extension is not recognised.
func Detect(path string, def domain.CatalogFormat) domain.CatalogFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return domain.CatalogFormatCSV
	case ".db", ".sqlite", ".sqlite3":
		return domain.CatalogFormatSQLite
	}
	return def
}

// NewSource opens the catalog described by settings.
func NewSource(settings domain.CatalogSettings) (driven.CatalogSource, error) {
	if settings.Path == "" {
		return nil, fmt.Errorf("%w: catalog.path is empty", domain.ErrInvalidInput)
	}
	switch settings.Format {
	case domain.CatalogFormatCSV, "":
		return csvfile.NewSource(settings.Path), nil
	case domain.CatalogFormatSQLite:
		return sqlite.NewSource(settings.Path), nil
	default:
		return nil, fmt.Errorf("%w: catalog format %q", domain.ErrUnsupportedType, settings.Format)
	}
}

// NewWriter creates a writer for the given format.
func NewWriter(format domain.CatalogFormat, path string) (driven.CatalogWriter, error) {
	switch format {
	case domain.CatalogFormatCSV:
		return csvfile.NewWriter(path), nil
	case domain.CatalogFormatSQLite:
		return sqlite.NewWriter(path), nil
	default:
		return nil, fmt.Errorf("%w: catalog format %q", domain.ErrUnsupportedType, format)
	}
}
