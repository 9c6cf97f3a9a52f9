//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// SpyBuildFileRepository implements repositories.BuildFileRepository as an
// in-memory spy: parsed files come from ExistingFiles, saved files are
// collected in SavedFiles.
type SpyBuildFileRepository struct {
	// --- Exists / Parse ---
	ExistingFiles map[string]*entities.BuildFile
	ParseErr      error

	// --- Save ---
	SaveErr    error
	SavedFiles []*entities.BuildFile

	// --- Preview ---
	PreviewErr   error
	PreviewCalls int
}

var _ repositories.BuildFileRepository = (*SpyBuildFileRepository)(nil)

func (b *SpyBuildFileRepository) Exists(path string) bool {
	_, ok := b.ExistingFiles[path]
	return ok
}

func (b *SpyBuildFileRepository) Parse(path string) (*entities.BuildFile, error) {
	if b.ParseErr != nil {
		return nil, b.ParseErr
	}
	if file, ok := b.ExistingFiles[path]; ok {
		return file, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (b *SpyBuildFileRepository) Save(file *entities.BuildFile) error {
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.SavedFiles = append(b.SavedFiles, file)
	return nil
}

func (b *SpyBuildFileRepository) Preview(file *entities.BuildFile) (string, error) {
	b.PreviewCalls++
	if b.PreviewErr != nil {
		return "", b.PreviewErr
	}
	return file.Render(), nil
}

// SavedFile returns the saved file with the given path, if any.
func (b *SpyBuildFileRepository) SavedFile(path string) (*entities.BuildFile, bool) {
	for _, f := range b.SavedFiles {
		if f.Path == path {
			return f, true
		}
	}
	return nil, false
}
