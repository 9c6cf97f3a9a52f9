package javasrc

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/danwakefield/fnmatch"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

var (
	packagePattern = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
	importPattern  = regexp.MustCompile(`^\s*import\s+(static\s+)?([\w.*]+)\s*;`)
	runnerPattern  = regexp.MustCompile(`@RunWith\s*\(\s*Parameterized|@ParameterizedTest`)
)

// testImportPrefixes mark a file as a test when any import matches.
var testImportPrefixes = []string{
	"org.junit",
	"junit.framework",
	"org.testng",
}

// SourceRepository scans Java source trees line-wise. Package and import
// declarations form a regular prefix grammar, so full Java parsing is not
// needed to index classes.
type SourceRepository struct{}

var _ domainRepos.SourceRepository = (*SourceRepository)(nil)

// NewSourceRepository creates a new SourceRepository.
func NewSourceRepository() *SourceRepository {
	return &SourceRepository{}
}

// Scan walks every content root under rootDir, including the content roots
// of nested module directories.
func (it *SourceRepository) Scan(
	ctx context.Context,
	rootDir string,
	contentRoots, excludes []string,
) (*entities.SourceIndex, error) {
	index := &entities.SourceIndex{
		Packages:     make(map[string]*entities.PackageSources),
		ClassOwner:   make(map[string]string),
		ContentRoots: contentRoots,
	}

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if isSkippedDir(info.Name()) {
				return filepath.SkipDir
			}
			if isResourceRoot(rel, contentRoots) {
				index.ResourceRoots = append(index.ResourceRoots, rel)
			}
			return nil
		}

		if !strings.HasSuffix(info.Name(), ".java") {
			return nil
		}
		for _, pattern := range excludes {
			if fnmatch.Match(pattern, rel, fnmatch.FNM_PATHNAME) {
				logger.Debugf("[javasrc] Excluded %s (pattern %q)", rel, pattern)
				return nil
			}
		}

		root, inRoot := matchContentRoot(rel, contentRoots)
		if !inRoot {
			return nil
		}

		file, parseErr := parseSourceFile(path, rel, root)
		if parseErr != nil {
			logger.Warnf("[javasrc] Failed to parse %s: %v", rel, parseErr)
			return nil
		}

		addToIndex(index, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources in %q: %w", rootDir, err)
	}

	logger.Infof(
		"[javasrc] Indexed %d source file(s) across %d package(s)",
		len(index.Files), len(index.Packages),
	)
	return index, nil
}

func addToIndex(index *entities.SourceIndex, file *entities.JavaSourceFile) {
	index.Files = append(index.Files, file)
	index.ClassOwner[file.FQCN()] = file.Package

	ps, ok := index.Packages[file.Package]
	if !ok {
		ps = &entities.PackageSources{
			Package:     file.Package,
			Dir:         filepath.ToSlash(filepath.Dir(file.Path)),
			ContentRoot: file.ContentRoot,
		}
		index.Packages[file.Package] = ps
	}

	if file.IsTest {
		ps.TestFiles = append(ps.TestFiles, file)
	} else {
		ps.MainFiles = append(ps.MainFiles, file)
	}
}

// parseSourceFile extracts the package declaration, imports and test
// markers from one .java file. It stops scanning after the import section
// but keeps looking for runner annotations in the class body.
func parseSourceFile(absPath, relPath, contentRoot string) (*entities.JavaSourceFile, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file := &entities.JavaSourceFile{
		Path:        relPath,
		ContentRoot: contentRoot,
		Class:       strings.TrimSuffix(filepath.Base(relPath), ".java"),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if m := packagePattern.FindStringSubmatch(line); m != nil {
			file.Package = m[1]
			continue
		}
		if m := importPattern.FindStringSubmatch(line); m != nil {
			imported := strings.TrimSuffix(m[2], ".*")
			isStatic := m[1] != ""
			if isStatic {
				// Static imports name a member; the owning type is
				// the parent segment.
				if i := strings.LastIndex(imported, "."); i > 0 {
					imported = imported[:i]
				}
			}
			file.Imports = append(file.Imports, imported)
			for _, prefix := range testImportPrefixes {
				if strings.HasPrefix(imported, prefix) {
					file.IsTest = true
				}
			}
			continue
		}
		if runnerPattern.MatchString(line) {
			file.UsesParameterizedRunner = true
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, scanErr
	}

	// Naming convention fallback for tests without recognizable imports.
	if !file.IsTest && isTestRoot(contentRoot) {
		file.IsTest = true
	}

	return file, nil
}

// matchContentRoot finds the content root a path belongs to. Roots apply
// both at the project top level and inside module subdirectories
// ("service/src/main/java/..." matches the "src/main/java" root).
func matchContentRoot(rel string, contentRoots []string) (string, bool) {
	for _, root := range contentRoots {
		if strings.HasPrefix(rel, root+"/") {
			return root, true
		}
		if i := strings.Index(rel, "/"+root+"/"); i >= 0 {
			return root, true
		}
	}
	return "", false
}

// isResourceRoot detects the resource directory conventionally paired with
// a content root (src/main/java -> src/main/resources).
func isResourceRoot(rel string, contentRoots []string) bool {
	for _, root := range contentRoots {
		paired := strings.TrimSuffix(root, "/java") + "/resources"
		if paired == root {
			continue
		}
		if rel == paired || strings.HasSuffix(rel, "/"+paired) {
			return true
		}
	}
	return false
}

func isTestRoot(contentRoot string) bool {
	return strings.Contains(contentRoot, "/test/")
}

func isSkippedDir(name string) bool {
	switch name {
	case ".git", "target", "build", "node_modules":
		return true
	default:
		return strings.HasPrefix(name, "bazel-")
	}
}
