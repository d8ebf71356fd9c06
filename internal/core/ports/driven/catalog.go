package driven

import (
	"context"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// CatalogSource loads the animal dataset.
//
// Loaders lower-case column names, rename image_url to img_url, and reject
// a dataset lacking a personality_description column with
// domain.ErrMissingDescriptionColumn.
type CatalogSource interface {
	// Load reads every record in source order.
	Load(ctx context.Context) (*domain.Catalog, error)

	// Location describes where the data lives (file path, DSN).
	Location() string
}

// CatalogWriter persists a dataset, used by the synthetic generator.
type CatalogWriter interface {
	// Write stores the animals, replacing any previous content.
	Write(ctx context.Context, animals []domain.Animal) error
}

// CatalogWatcher signals when the catalog behind a source changes.
type CatalogWatcher interface {
	// Watch calls onChange after each settled change until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error

	// Close releases resources.
	Close() error
}
