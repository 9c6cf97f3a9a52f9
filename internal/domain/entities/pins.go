package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DependencyPin is one entry of the dependency-declaration file: a library
// coordinate pinned to a concrete version, with the checksum and source
// repository recorded for reproducible fetches.
type DependencyPin struct {
	Coordinate string `yaml:"coordinate"` // "group:artifact"
	Version    string `yaml:"version"`
	Sha256     string `yaml:"sha256,omitempty"`
	Repository string `yaml:"repository,omitempty"`
	// Scope carries the Maven scope when it is not plain compile; it
	// decides whether the dependency lands in deps or runtime_deps.
	Scope DependencyScope `yaml:"scope,omitempty"`
	// Latest records the newest version seen in the repository at pin
	// time, for reviewers comparing against the Maven pin.
	Latest string `yaml:"latest,omitempty"`
}

// IsRuntime reports whether the pin is only needed on the runtime
// classpath (JDBC drivers, logging bindings).
func (p DependencyPin) IsRuntime() bool {
	return p.Scope == ScopeRuntime
}

// Coord returns the pin's parsed, versioned coordinate.
func (p DependencyPin) Coord() (Coordinate, error) {
	coord, err := ParseCoordinate(p.Coordinate)
	if err != nil {
		return Coordinate{}, err
	}
	coord.Version = p.Version
	return coord, nil
}

// PinFile is the dependency-declaration file consumed by the workspace
// generator: a flat mapping from library coordinate to version pin.
type PinFile struct {
	Dependencies []DependencyPin `yaml:"dependencies"`
}

// LoadPinFile reads and parses a dependency-declaration file.
func LoadPinFile(path string) (*PinFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency file %q: %w", path, err)
	}

	var file PinFile
	if unmarshalErr := yaml.Unmarshal(data, &file); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse dependency file %q: %w", path, unmarshalErr)
	}
	return &file, nil
}

// Save writes the pin file in deterministic coordinate order.
func (f *PinFile) Save(path string) error {
	sort.Slice(f.Dependencies, func(i, j int) bool {
		return f.Dependencies[i].Coordinate < f.Dependencies[j].Coordinate
	})

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal dependency file: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
		return fmt.Errorf("failed to create %q: %w", filepath.Dir(path), mkdirErr)
	}
	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write dependency file %q: %w", path, writeErr)
	}
	return nil
}

// Find returns the pin for a "group:artifact" key, if present.
func (f *PinFile) Find(key string) (DependencyPin, bool) {
	for _, p := range f.Dependencies {
		if p.Coordinate == key {
			return p, true
		}
	}
	return DependencyPin{}, false
}

// MatchImport attributes a Java import to a pinned coordinate by longest
// package-prefix match, e.g. "com.google.common.collect.Lists" matches
// com.google.guava:guava through its group prefix.
func (f *PinFile) MatchImport(importPath string) (DependencyPin, bool) {
	bestLen := 0
	var best DependencyPin

	for _, pin := range f.Dependencies {
		coord, err := pin.Coord()
		if err != nil {
			continue
		}
		for _, prefix := range coord.PackagePrefixes() {
			if len(prefix) <= bestLen {
				continue
			}
			if importPath == prefix || strings.HasPrefix(importPath, prefix+".") {
				bestLen = len(prefix)
				best = pin
			}
		}
	}

	return best, bestLen > 0
}
