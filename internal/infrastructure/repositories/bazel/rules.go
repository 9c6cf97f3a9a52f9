package bazel

import (
	"strings"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

const javaDefsModule = "@rules_java//java:defs.bzl"

// GenerateContext carries the settings a rule generator needs.
type GenerateContext struct {
	ThirdPartyDir string
	// TestResourceLabels maps a module prefix ("" for the root module) to
	// that module's shared test-resources library rule. Empty when the
	// project has no test resources.
	TestResourceLabels map[string]string
}

// TestResourceLabel returns the resources label of the module containing
// the package directory, picking the most specific module prefix.
func (c GenerateContext) TestResourceLabel(ps *entities.PackageSources) string {
	best, bestLen := "", -1
	for prefix, label := range c.TestResourceLabels {
		if len(prefix) > bestLen && strings.HasPrefix(ps.Dir, prefix) {
			best, bestLen = label, len(prefix)
		}
	}
	return best
}

// RuleGenerator produces the rule blocks for one Java package directory.
// Generators are registered per kind, mirroring one compilation unit shape
// each (library, tests, binary).
type RuleGenerator interface {
	// Kind returns the rule kind this generator emits (e.g. "java_library").
	Kind() string

	// Applies reports whether the package needs a rule of this kind.
	Applies(ps *entities.PackageSources) bool

	// Generate appends this generator's rules and load symbols to the
	// build file.
	Generate(file *entities.BuildFile, ps *entities.PackageSources, genCtx GenerateContext)
}

// LibraryGenerator emits the java_library rule covering a package's
// production sources.
type LibraryGenerator struct{}

var _ RuleGenerator = (*LibraryGenerator)(nil)

// NewLibraryGenerator creates a new LibraryGenerator.
func NewLibraryGenerator() *LibraryGenerator {
	return &LibraryGenerator{}
}

func (it *LibraryGenerator) Kind() string { return "java_library" }

func (it *LibraryGenerator) Applies(ps *entities.PackageSources) bool {
	return len(ps.MainFiles) > 0
}

func (it *LibraryGenerator) Generate(
	file *entities.BuildFile,
	ps *entities.PackageSources,
	_ GenerateContext,
) {
	file.EnsureLoad(javaDefsModule, it.Kind())

	rule := &entities.BuildRule{
		Kind: it.Kind(),
		Name: ps.RuleName(),
		Attrs: []entities.Attr{
			entities.GlobAttr("srcs", "*.java"),
			entities.ListAttr("visibility", "//visibility:public"),
			entities.ListAttr("deps"),
		},
	}

	file.Rules = append(file.Rules, rule)
}

// TestGenerator emits one java_test rule per test class, plus a shared
// java_library compiling the package's test sources.
type TestGenerator struct{}

var _ RuleGenerator = (*TestGenerator)(nil)

// NewTestGenerator creates a new TestGenerator.
func NewTestGenerator() *TestGenerator {
	return &TestGenerator{}
}

func (it *TestGenerator) Kind() string { return "java_test" }

func (it *TestGenerator) Applies(ps *entities.PackageSources) bool {
	return len(ps.TestFiles) > 0
}

func (it *TestGenerator) Generate(
	file *entities.BuildFile,
	ps *entities.PackageSources,
	genCtx GenerateContext,
) {
	file.EnsureLoad(javaDefsModule, "java_library", it.Kind())

	libName := ps.RuleName() + "_tests"
	lib := &entities.BuildRule{
		Kind: "java_library",
		Name: libName,
		Attrs: []entities.Attr{
			entities.GlobAttr("srcs", "*.java"),
			entities.BoolAttr("testonly", true),
			entities.ListAttr("deps"),
		},
	}
	if label := genCtx.TestResourceLabel(ps); label != "" {
		lib.Attrs = append(lib.Attrs, entities.ListAttr("runtime_deps", label))
	}
	file.Rules = append(file.Rules, lib)

	for _, tf := range ps.TestFiles {
		// The generated runner drives one class per rule; parameterized
		// runners are flagged by the verify step instead of silently
		// producing an empty suite.
		test := &entities.BuildRule{
			Kind: it.Kind(),
			Name: tf.Class,
			Attrs: []entities.Attr{
				entities.StringAttr("test_class", tf.FQCN()),
				entities.ListAttr("runtime_deps", ":"+libName),
			},
		}
		file.Rules = append(file.Rules, test)
	}
}

// BinaryGenerator emits a java_binary when a package contains a main class.
type BinaryGenerator struct{}

var _ RuleGenerator = (*BinaryGenerator)(nil)

// NewBinaryGenerator creates a new BinaryGenerator.
func NewBinaryGenerator() *BinaryGenerator {
	return &BinaryGenerator{}
}

func (it *BinaryGenerator) Kind() string { return "java_binary" }

func (it *BinaryGenerator) Applies(ps *entities.PackageSources) bool {
	return mainClass(ps) != nil
}

func (it *BinaryGenerator) Generate(
	file *entities.BuildFile,
	ps *entities.PackageSources,
	_ GenerateContext,
) {
	mc := mainClass(ps)
	if mc == nil {
		return
	}

	file.EnsureLoad(javaDefsModule, it.Kind())
	file.Rules = append(file.Rules, &entities.BuildRule{
		Kind: it.Kind(),
		Name: toSnake(mc.Class),
		Attrs: []entities.Attr{
			entities.StringAttr("main_class", mc.FQCN()),
			entities.ListAttr("runtime_deps", ":"+ps.RuleName()),
		},
	})
}

// mainClass finds a production class following the Main/*Application
// naming convention.
func mainClass(ps *entities.PackageSources) *entities.JavaSourceFile {
	for _, f := range ps.MainFiles {
		if f.Class == "Main" || strings.HasSuffix(f.Class, "Application") {
			return f
		}
	}
	return nil
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
