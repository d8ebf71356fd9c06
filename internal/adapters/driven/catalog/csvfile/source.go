// Package csvfile reads and writes the animal catalog as a CSV file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
)

// Ensure Source and Writer implement the interfaces.
var (
	_ driven.CatalogSource = (*Source)(nil)
	_ driven.CatalogWriter = (*Writer)(nil)
)

// Source loads a catalog from a CSV file with a header row.
type Source struct {
	path string
}

// NewSource creates a CSV catalog source.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Location returns the file path.
func (s *Source) Location() string {
	return s.path
}

// Load reads the whole file. Rows without an id column are numbered from 1.
func (s *Source) Load(ctx context.Context) (*domain.Catalog, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Read(ctx, s.path, f)
}

// Read decodes CSV catalog data from r. location names the data in errors.
func Read(ctx context.Context, location string, r io.Reader) (*domain.Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	raw, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", location, domain.ErrMissingDescriptionColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", location, err)
	}

	header, err := catalog.ParseHeader(location, raw)
	if err != nil {
		return nil, err
	}

	var animals []domain.Animal
	for row := int64(1); ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}

		a, err := header.Decode(rec, row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", location, row, err)
		}
		animals = append(animals, a)
	}

	return catalog.Assemble(location, animals)
}

// Writer writes a catalog to a CSV file, replacing any existing file.
type Writer struct {
	path string
}

// NewWriter creates a CSV catalog writer.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write writes the header and one row per animal.
func (w *Writer) Write(_ context.Context, animals []domain.Animal) error {
	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(catalog.Columns()); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range animals {
		if err := cw.Write(catalog.Encode(a)); err != nil {
			f.Close()
			return fmt.Errorf("write animal %d: %w", a.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush catalog: %w", err)
	}
	return f.Close()
}
