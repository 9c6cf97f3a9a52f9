package repositories

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// ProjectRepository loads the Maven module tree of a project directory.
type ProjectRepository interface {
	// Detect returns true if the given directory is a Maven project root.
	Detect(rootDir string) bool

	// Load parses the root pom.xml and every aggregated module, with
	// properties interpolated and managed versions resolved.
	Load(ctx context.Context, rootDir string) (*entities.MavenProject, error)
}
