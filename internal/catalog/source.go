// internal/catalog/source.go
package catalog

import (
	"context"
	"fmt"

	apperrors "foresight-workers/internal/common/errors"
	"foresight-workers/internal/common/metrics"
	"foresight-workers/internal/models"
)

// Source yields technique descriptors in a stable order.
type Source interface {
	Name() string
	Techniques(ctx context.Context) ([]models.TechniqueDescriptor, error)
}

// Load reads src once and freezes the result into a Catalog. An empty
// catalog is returned as-is; the orchestrator decides what that means.
func Load(ctx context.Context, src Source) (*models.Catalog, error) {
	techniques, err := src.Techniques(ctx)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(src.Name(), err)
	}

	c, err := models.NewCatalog(techniques)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(src.Name(), fmt.Errorf("invalid catalog: %w", err))
	}

	metrics.CatalogTechniques.Set(float64(c.Len()))
	return c, nil
}
