package repositories

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// SourceRepository scans the project's Java sources into an index.
type SourceRepository interface {
	// Scan walks the content roots under rootDir (module directories
	// included) and returns the source index. Paths matching an exclude
	// glob are skipped.
	Scan(ctx context.Context, rootDir string, contentRoots, excludes []string) (*entities.SourceIndex, error)
}
