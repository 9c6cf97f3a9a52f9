package maven

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

const pomFileName = "pom.xml"

// propertyPattern matches ${property.name} references in pom values.
var propertyPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// pomFile mirrors the subset of the POM schema the migration needs.
type pomFile struct {
	XMLName    xml.Name `xml:"project"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Version    string   `xml:"version"`
	Packaging  string   `xml:"packaging"`
	Parent     struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Version    string `xml:"version"`
	} `xml:"parent"`
	Properties struct {
		Entries []xmlAny `xml:",any"`
	} `xml:"properties"`
	Modules              []string        `xml:"modules>module"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement struct {
		Dependencies []pomDependency `xml:"dependencies>dependency"`
	} `xml:"dependencyManagement"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
	Classifier string `xml:"classifier"`
	Type       string `xml:"type"`
}

type xmlAny struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// PomRepository loads Maven projects from pom.xml files on disk.
type PomRepository struct{}

var _ domainRepos.ProjectRepository = (*PomRepository)(nil)

// NewPomRepository creates a new PomRepository.
func NewPomRepository() *PomRepository {
	return &PomRepository{}
}

// Detect returns true if the directory contains a pom.xml.
func (it *PomRepository) Detect(rootDir string) bool {
	_, err := os.Stat(filepath.Join(rootDir, pomFileName))
	return err == nil
}

// Load parses the root pom and walks the aggregated module tree.
func (it *PomRepository) Load(ctx context.Context, rootDir string) (*entities.MavenProject, error) {
	project := &entities.MavenProject{RootDir: rootDir}

	if err := it.loadModule(ctx, project, rootDir, ".", nil); err != nil {
		return nil, err
	}

	logger.Infof("[maven] Loaded %d module(s) from %s", len(project.Modules), rootDir)
	return project, nil
}

// loadModule parses one pom.xml and recurses into its <module> entries.
// parent carries the already-loaded parent module for inheritance.
func (it *PomRepository) loadModule(
	ctx context.Context,
	project *entities.MavenProject,
	rootDir, moduleDir string,
	parent *entities.MavenModule,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pomPath := filepath.Join(rootDir, moduleDir, pomFileName)
	module, err := parsePom(pomPath, moduleDir, parent)
	if err != nil {
		return err
	}

	project.Modules = append(project.Modules, module)

	for _, sub := range module.SubModules {
		subDir := filepath.ToSlash(filepath.Join(moduleDir, sub))
		if loadErr := it.loadModule(ctx, project, rootDir, subDir, module); loadErr != nil {
			return loadErr
		}
	}
	return nil
}

func parsePom(path, moduleDir string, parent *entities.MavenModule) (*entities.MavenModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var pom pomFile
	if unmarshalErr := xml.Unmarshal(data, &pom); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, unmarshalErr)
	}

	module := &entities.MavenModule{
		Dir:        filepath.ToSlash(moduleDir),
		GroupID:    pom.GroupID,
		ArtifactID: pom.ArtifactID,
		Version:    pom.Version,
		Packaging:  pom.Packaging,
		Properties: make(map[string]string),
		Managed:    make(map[string]string),
		SubModules: pom.Modules,
	}

	// Inherit identity and context from the parent declaration.
	if module.GroupID == "" {
		module.GroupID = pom.Parent.GroupID
	}
	if module.Version == "" {
		module.Version = pom.Parent.Version
	}
	if module.Packaging == "" {
		module.Packaging = "jar"
	}

	if parent != nil {
		for k, v := range parent.Properties {
			module.Properties[k] = v
		}
		for k, v := range parent.Managed {
			module.Managed[k] = v
		}
	}
	for _, p := range pom.Properties.Entries {
		module.Properties[p.XMLName.Local] = strings.TrimSpace(p.Value)
	}

	// Built-in project.* properties used by conventional poms.
	module.Properties["project.groupId"] = module.GroupID
	module.Properties["project.artifactId"] = module.ArtifactID
	module.Properties["project.version"] = module.Version

	for _, d := range pom.DependencyManagement.Dependencies {
		key := interpolate(d.GroupID, module.Properties) + ":" + interpolate(d.ArtifactID, module.Properties)
		module.Managed[key] = interpolate(d.Version, module.Properties)
	}

	for _, d := range pom.Dependencies {
		dep, ok := resolveDependency(d, module)
		if !ok {
			continue
		}
		module.Dependencies = append(module.Dependencies, dep)
	}

	return module, nil
}

// resolveDependency interpolates properties and fills versions from
// dependencyManagement. A dependency without any resolvable version is kept
// with an empty version so the pinning step can look it up remotely.
func resolveDependency(d pomDependency, module *entities.MavenModule) (entities.MavenDependency, bool) {
	groupID := interpolate(d.GroupID, module.Properties)
	artifactID := interpolate(d.ArtifactID, module.Properties)
	if groupID == "" || artifactID == "" {
		return entities.MavenDependency{}, false
	}

	version := interpolate(d.Version, module.Properties)
	if version == "" {
		version = module.Managed[groupID+":"+artifactID]
	}

	scope := entities.DependencyScope(d.Scope)
	if scope == "" {
		scope = entities.ScopeCompile
	}

	return entities.MavenDependency{
		Coordinate: entities.Coordinate{
			GroupID:    groupID,
			ArtifactID: artifactID,
			Version:    version,
			Packaging:  d.Type,
			Classifier: d.Classifier,
		},
		Scope:    scope,
		Optional: d.Optional == "true",
	}, true
}

// interpolate expands ${property} references, following chains up to a
// fixed depth to break cycles.
func interpolate(value string, properties map[string]string) string {
	const maxDepth = 5

	result := value
	for i := 0; i < maxDepth && strings.Contains(result, "${"); i++ {
		next := propertyPattern.ReplaceAllStringFunc(result, func(match string) string {
			name := propertyPattern.FindStringSubmatch(match)[1]
			if v, ok := properties[name]; ok {
				return v
			}
			return match
		})
		if next == result {
			break
		}
		result = next
	}

	// Unresolvable references are dropped rather than leaked into
	// coordinates.
	if strings.Contains(result, "${") {
		logger.Debugf("[maven] Unresolved property reference in %q", result)
		return ""
	}
	return result
}
