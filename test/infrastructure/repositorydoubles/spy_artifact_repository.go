//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// SpyArtifactRepository implements repositories.ArtifactRepository as a configurable spy.
type SpyArtifactRepository struct {
	// --- identity ---
	RepoID string

	// --- Versions / LatestVersion ---
	VersionList []string
	Latest      string
	VersionErr  error
	// spy: coordinates that were looked up
	LookedUp []entities.Coordinate

	// --- Checksum ---
	Checksums   map[string]string // "group:artifact:version" -> sha256
	ChecksumErr error

	// --- Download ---
	DownloadErr error
	Downloads   []entities.Coordinate
}

var _ repositories.ArtifactRepository = (*SpyArtifactRepository)(nil)

func (a *SpyArtifactRepository) ID() string { return a.RepoID }

func (a *SpyArtifactRepository) Versions(
	_ context.Context, coord entities.Coordinate,
) ([]string, error) {
	a.LookedUp = append(a.LookedUp, coord)
	return a.VersionList, a.VersionErr
}

func (a *SpyArtifactRepository) LatestVersion(
	_ context.Context, coord entities.Coordinate,
) (string, error) {
	a.LookedUp = append(a.LookedUp, coord)
	if a.VersionErr != nil {
		return "", a.VersionErr
	}
	if a.Latest != "" {
		return a.Latest, nil
	}
	if len(a.VersionList) > 0 {
		return a.VersionList[len(a.VersionList)-1], nil
	}
	return "", fmt.Errorf("no versions for %s", coord.Key())
}

func (a *SpyArtifactRepository) Checksum(
	_ context.Context, coord entities.Coordinate,
) (string, error) {
	if a.ChecksumErr != nil {
		return "", a.ChecksumErr
	}
	if a.Checksums != nil {
		if sum, ok := a.Checksums[coord.String()]; ok {
			return sum, nil
		}
	}
	return "", fmt.Errorf("no checksum for %s", coord)
}

func (a *SpyArtifactRepository) Download(
	_ context.Context, coord entities.Coordinate, destDir string,
) (string, error) {
	a.Downloads = append(a.Downloads, coord)
	if a.DownloadErr != nil {
		return "", a.DownloadErr
	}
	return filepath.Join(destDir, filepath.Base(coord.ArtifactPath())), nil
}
