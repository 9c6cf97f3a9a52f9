package repositories

import (
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// BuildFileRepository reads and writes build description files.
type BuildFileRepository interface {
	// Exists reports whether a build file is already present at the path.
	Exists(path string) bool

	// Parse reads a build description file into its rule model.
	Parse(path string) (*entities.BuildFile, error)

	// Save renders the rule model and writes it to file.Path.
	Save(file *entities.BuildFile) error

	// Preview returns a unified diff between the on-disk content (empty
	// when the file does not exist) and the rendered model, for dry runs.
	Preview(file *entities.BuildFile) (string, error)
}
