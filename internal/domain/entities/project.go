package entities

// DependencyScope mirrors the Maven dependency scopes the migration cares
// about. Scopes decide which attribute of the generated rule a dependency
// lands in.
type DependencyScope string

const (
	ScopeCompile  DependencyScope = "compile"
	ScopeProvided DependencyScope = "provided"
	ScopeRuntime  DependencyScope = "runtime"
	ScopeTest     DependencyScope = "test"
)

// MavenDependency is a single declared dependency of a module.
type MavenDependency struct {
	Coordinate Coordinate
	Scope      DependencyScope
	Optional   bool
}

// MavenModule is one pom.xml of the project, with properties interpolated
// and managed versions already resolved.
type MavenModule struct {
	// Dir is the module directory relative to the project root ("." for
	// the root module).
	Dir        string
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Properties map[string]string
	// Managed maps "group:artifact" to the version pinned by
	// dependencyManagement.
	Managed      map[string]string
	Dependencies []MavenDependency
	// SubModules lists the <module> entries of an aggregator pom.
	SubModules []string
}

// Coordinate returns the module's own coordinate.
func (m *MavenModule) Coordinate() Coordinate {
	return Coordinate{GroupID: m.GroupID, ArtifactID: m.ArtifactID, Version: m.Version}
}

// MavenProject is the full module tree rooted at the project directory.
type MavenProject struct {
	RootDir string
	Modules []*MavenModule
}

// IsInternal reports whether a coordinate belongs to one of the project's
// own modules (inter-module dependencies never become third-party pins).
func (p *MavenProject) IsInternal(coord Coordinate) bool {
	for _, m := range p.Modules {
		if m.GroupID == coord.GroupID && m.ArtifactID == coord.ArtifactID {
			return true
		}
	}
	return false
}

// ExternalDependencies returns the deduplicated third-party dependency set
// across all modules. The first occurrence of a "group:artifact" wins, which
// matches Maven's nearest-definition resolution for a flat module tree.
func (p *MavenProject) ExternalDependencies() []MavenDependency {
	seen := make(map[string]bool)
	var deps []MavenDependency

	for _, m := range p.Modules {
		for _, d := range m.Dependencies {
			if p.IsInternal(d.Coordinate) || d.Optional {
				continue
			}
			if seen[d.Coordinate.Key()] {
				continue
			}
			seen[d.Coordinate.Key()] = true
			deps = append(deps, d)
		}
	}
	return deps
}
