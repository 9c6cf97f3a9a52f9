package central

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

const requestTimeout = 30 * time.Second

// metadataFile mirrors the maven-metadata.xml schema.
type metadataFile struct {
	XMLName    xml.Name `xml:"metadata"`
	Versioning struct {
		Latest   string   `xml:"latest"`
		Release  string   `xml:"release"`
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

// HTTPArtifactRepository talks to a Maven repository over HTTP (Central or
// a mirror).
type HTTPArtifactRepository struct {
	id      string
	baseURL string
	client  *resty.Client
}

var _ domainRepos.ArtifactRepository = (*HTTPArtifactRepository)(nil)

// NewArtifactRepository creates a repository client from its settings entry.
func NewArtifactRepository(config entities.RepositoryConfig) *HTTPArtifactRepository {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(config.URL, "/")).
		SetTimeout(requestTimeout)
	if config.Token != "" {
		client.SetAuthToken(config.Token)
	}

	return &HTTPArtifactRepository{
		id:      config.ID,
		baseURL: config.URL,
		client:  client,
	}
}

// ID returns the repository identifier from the settings.
func (it *HTTPArtifactRepository) ID() string { return it.id }

// Versions fetches the artifact's version list from maven-metadata.xml.
func (it *HTTPArtifactRepository) Versions(
	ctx context.Context,
	coord entities.Coordinate,
) ([]string, error) {
	meta, err := it.fetchMetadata(ctx, coord)
	if err != nil {
		return nil, err
	}
	return meta.Versioning.Versions, nil
}

// LatestVersion returns the release version advertised by the metadata,
// falling back to <latest> and then to the newest listed version.
func (it *HTTPArtifactRepository) LatestVersion(
	ctx context.Context,
	coord entities.Coordinate,
) (string, error) {
	meta, err := it.fetchMetadata(ctx, coord)
	if err != nil {
		return "", err
	}

	if meta.Versioning.Release != "" {
		return meta.Versioning.Release, nil
	}
	if meta.Versioning.Latest != "" {
		return meta.Versioning.Latest, nil
	}
	if n := len(meta.Versioning.Versions); n > 0 {
		return meta.Versioning.Versions[n-1], nil
	}
	return "", fmt.Errorf("no versions found for %s in %s", coord.Key(), it.id)
}

// Checksum fetches the artifact's SHA-256 checksum file.
func (it *HTTPArtifactRepository) Checksum(
	ctx context.Context,
	coord entities.Coordinate,
) (string, error) {
	if coord.Version == "" {
		return "", fmt.Errorf("checksum requires a versioned coordinate: %s", coord.Key())
	}

	resp, err := it.client.R().
		SetContext(ctx).
		Get("/" + coord.ArtifactPath() + ".sha256")
	if err != nil {
		return "", fmt.Errorf("failed to fetch checksum for %s: %w", coord, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf(
			"checksum request for %s returned status %d", coord, resp.StatusCode(),
		)
	}

	// Some repositories publish "<hash>  <filename>" style checksum files.
	sum := strings.Fields(strings.TrimSpace(resp.String()))
	if len(sum) == 0 {
		return "", fmt.Errorf("empty checksum file for %s", coord)
	}
	return sum[0], nil
}

// Download streams the artifact to destDir, showing a progress bar, and
// returns the local file path.
func (it *HTTPArtifactRepository) Download(
	ctx context.Context,
	coord entities.Coordinate,
	destDir string,
) (string, error) {
	if coord.Version == "" {
		return "", fmt.Errorf("download requires a versioned coordinate: %s", coord.Key())
	}

	resp, err := it.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/" + coord.ArtifactPath())
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", coord, err)
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("download of %s returned status %d", coord, resp.StatusCode())
	}

	if mkdirErr := os.MkdirAll(destDir, 0o755); mkdirErr != nil {
		return "", fmt.Errorf("failed to create %q: %w", destDir, mkdirErr)
	}

	localPath := filepath.Join(destDir, filepath.Base(coord.ArtifactPath()))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", localPath, err)
	}
	defer out.Close()

	bar := progressbar.DefaultBytes(
		resp.RawResponse.ContentLength,
		filepath.Base(localPath),
	)
	if _, copyErr := io.Copy(io.MultiWriter(out, bar), resp.RawBody()); copyErr != nil {
		return "", fmt.Errorf("failed to write %q: %w", localPath, copyErr)
	}

	logger.Debugf("[central] Downloaded %s to %s", coord, localPath)
	return localPath, nil
}

func (it *HTTPArtifactRepository) fetchMetadata(
	ctx context.Context,
	coord entities.Coordinate,
) (*metadataFile, error) {
	resp, err := it.client.R().
		SetContext(ctx).
		Get("/" + coord.MetadataPath())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata for %s: %w", coord.Key(), err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf(
			"metadata request for %s returned status %d", coord.Key(), resp.StatusCode(),
		)
	}

	var meta metadataFile
	if unmarshalErr := xml.Unmarshal(resp.Body(), &meta); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse metadata for %s: %w", coord.Key(), unmarshalErr)
	}
	return &meta, nil
}
