//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// SpySourceRepository implements repositories.SourceRepository as a configurable spy.
type SpySourceRepository struct {
	// --- Scan ---
	Index       *entities.SourceIndex
	ScanErr     error
	ScannedDirs []string
}

var _ repositories.SourceRepository = (*SpySourceRepository)(nil)

func (s *SpySourceRepository) Scan(
	_ context.Context, rootDir string, _ []string, _ []string,
) (*entities.SourceIndex, error) {
	s.ScannedDirs = append(s.ScannedDirs, rootDir)
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	if s.Index != nil {
		return s.Index, nil
	}
	return &entities.SourceIndex{
		Packages:   map[string]*entities.PackageSources{},
		ClassOwner: map[string]string{},
	}, nil
}
