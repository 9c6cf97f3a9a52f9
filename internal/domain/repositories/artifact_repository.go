package repositories

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// ArtifactRepository is a remote Maven repository (Central or a mirror).
type ArtifactRepository interface {
	// ID returns the repository identifier from the settings (e.g. "central").
	ID() string

	// Versions fetches the artifact's version list from its metadata,
	// newest last.
	Versions(ctx context.Context, coord entities.Coordinate) ([]string, error)

	// LatestVersion returns the release version advertised by the
	// artifact's metadata (falling back to the newest listed version).
	LatestVersion(ctx context.Context, coord entities.Coordinate) (string, error)

	// Checksum fetches the artifact's SHA-256 checksum. The coordinate
	// must carry a version.
	Checksum(ctx context.Context, coord entities.Coordinate) (string, error)

	// Download fetches the artifact into destDir and returns the local
	// file path.
	Download(ctx context.Context, coord entities.Coordinate, destDir string) (string, error)
}
