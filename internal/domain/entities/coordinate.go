package entities

import (
	"fmt"
	"strings"
)

// Coordinate identifies a Maven artifact by its group, artifact and version.
// Packaging and classifier are optional and default to "jar" / empty.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Classifier string
}

// ParseCoordinate parses a "group:artifact[:version]" string.
func ParseCoordinate(raw string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected group:artifact[:version]", raw)
	}

	coord := Coordinate{
		GroupID:    parts[0],
		ArtifactID: parts[1],
	}
	if len(parts) > 2 {
		coord.Version = parts[2]
	}
	return coord, nil
}

// String returns the canonical "group:artifact:version" form
// (or "group:artifact" when no version is pinned).
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.GroupID + ":" + c.ArtifactID
	}
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// Key returns the version-independent "group:artifact" identity.
func (c Coordinate) Key() string {
	return c.GroupID + ":" + c.ArtifactID
}

// RepoName returns the external-repository name used by the generated
// workspace rules, e.g. "com_google_guava_guava".
func (c Coordinate) RepoName() string {
	return sanitizeLabel(c.GroupID) + "_" + sanitizeLabel(c.ArtifactID)
}

// AliasName returns the short alias used in the third-party package,
// e.g. "guava" for com.google.guava:guava.
func (c Coordinate) AliasName() string {
	return sanitizeLabel(c.ArtifactID)
}

// ThirdPartyLabel returns the label a generated rule depends on,
// e.g. "//third_party:guava".
func (c Coordinate) ThirdPartyLabel(thirdPartyDir string) string {
	return "//" + thirdPartyDir + ":" + c.AliasName()
}

// ExternalLabel returns the label inside the pinned external repository,
// e.g. "@maven//:com_google_guava_guava".
func (c Coordinate) ExternalLabel() string {
	return "@maven//:" + c.RepoName()
}

// ArtifactPath returns the repository-relative path of the main artifact,
// e.g. "com/google/guava/guava/31.1-jre/guava-31.1-jre.jar".
func (c Coordinate) ArtifactPath() string {
	packaging := c.Packaging
	if packaging == "" {
		packaging = "jar"
	}

	file := c.ArtifactID + "-" + c.Version
	if c.Classifier != "" {
		file += "-" + c.Classifier
	}
	file += "." + packaging

	return strings.Join([]string{
		strings.ReplaceAll(c.GroupID, ".", "/"),
		c.ArtifactID,
		c.Version,
		file,
	}, "/")
}

// MetadataPath returns the repository-relative path of the artifact's
// maven-metadata.xml.
func (c Coordinate) MetadataPath() string {
	return strings.Join([]string{
		strings.ReplaceAll(c.GroupID, ".", "/"),
		c.ArtifactID,
		"maven-metadata.xml",
	}, "/")
}

// PackagePrefixes returns the Java package prefixes an import is matched
// against when attributing it to this artifact. The group id is always a
// candidate; when the artifact id adds further segments (e.g.
// "jackson-databind") the combined prefix is tried first.
func (c Coordinate) PackagePrefixes() []string {
	prefixes := []string{c.GroupID}

	artifact := strings.ReplaceAll(c.ArtifactID, "-", ".")
	if !strings.HasSuffix(c.GroupID, artifact) {
		prefixes = append([]string{c.GroupID + "." + artifact}, prefixes...)
	}
	return prefixes
}

func sanitizeLabel(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
