//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// SpyProjectRepository implements repositories.ProjectRepository as a configurable spy.
type SpyProjectRepository struct {
	// --- Detect ---
	DetectResult bool
	DetectedDirs []string

	// --- Load ---
	Project    *entities.MavenProject
	LoadErr    error
	LoadedDirs []string
}

var _ repositories.ProjectRepository = (*SpyProjectRepository)(nil)

func (p *SpyProjectRepository) Detect(dir string) bool {
	p.DetectedDirs = append(p.DetectedDirs, dir)
	return p.DetectResult
}

func (p *SpyProjectRepository) Load(_ context.Context, dir string) (*entities.MavenProject, error) {
	p.LoadedDirs = append(p.LoadedDirs, dir)
	if p.LoadErr != nil {
		return nil, p.LoadErr
	}
	if p.Project != nil {
		return p.Project, nil
	}
	return &entities.MavenProject{}, nil
}
