package bazel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// DiskBuildFileRepository reads and writes build description files on disk.
type DiskBuildFileRepository struct{}

var _ domainRepos.BuildFileRepository = (*DiskBuildFileRepository)(nil)

// NewBuildFileRepository creates a new DiskBuildFileRepository.
func NewBuildFileRepository() *DiskBuildFileRepository {
	return &DiskBuildFileRepository{}
}

// Exists reports whether a build file is present at the path.
func (it *DiskBuildFileRepository) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Parse reads a build description file into its rule model.
func (it *DiskBuildFileRepository) Parse(path string) (*entities.BuildFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file %q: %w", path, err)
	}
	return parseBuildFile(path, data)
}

// Save renders the rule model and writes it to file.Path.
func (it *DiskBuildFileRepository) Save(file *entities.BuildFile) error {
	dir := filepath.Dir(file.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", dir, err)
	}
	if err := os.WriteFile(file.Path, []byte(file.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write build file %q: %w", file.Path, err)
	}
	return nil
}

// Preview returns a unified diff between the on-disk content and the
// rendered model.
func (it *DiskBuildFileRepository) Preview(file *entities.BuildFile) (string, error) {
	var current string
	data, err := os.ReadFile(file.Path)
	switch {
	case err == nil:
		current = string(data)
	case os.IsNotExist(err):
		current = ""
	default:
		return "", fmt.Errorf("failed to read build file %q: %w", file.Path, err)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(current, file.Render(), false)
	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		return "", nil
	}
	return dmp.DiffPrettyText(diffs), nil
}
