package entities

import (
	"sort"
	"strings"
)

// AttrKind discriminates the attribute value shapes the generator emits and
// the parser understands.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrList
	AttrGlob
	AttrBool
)

// AttrValue is one build-rule attribute value. Only the field matching Kind
// is meaningful.
type AttrValue struct {
	Kind AttrKind
	Str  string
	List []string
	Bool bool
}

// Attr is a named attribute of a build rule, in declaration order.
type Attr struct {
	Key   string
	Value AttrValue
}

// BuildRule is one declarative rule block of a build description file:
// a kind, a name, and the remaining attributes in order.
type BuildRule struct {
	Kind  string
	Name  string
	Attrs []Attr
}

// StringAttr builds a string-valued attribute.
func StringAttr(key, value string) Attr {
	return Attr{Key: key, Value: AttrValue{Kind: AttrString, Str: value}}
}

// ListAttr builds a list-of-strings attribute.
func ListAttr(key string, values ...string) Attr {
	return Attr{Key: key, Value: AttrValue{Kind: AttrList, List: values}}
}

// GlobAttr builds a glob(...) attribute from include patterns.
func GlobAttr(key string, patterns ...string) Attr {
	return Attr{Key: key, Value: AttrValue{Kind: AttrGlob, List: patterns}}
}

// BoolAttr builds a boolean attribute.
func BoolAttr(key string, value bool) Attr {
	return Attr{Key: key, Value: AttrValue{Kind: AttrBool, Bool: value}}
}

// Attr returns the attribute with the given key, if present.
func (r *BuildRule) Attr(key string) (AttrValue, bool) {
	for _, a := range r.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return AttrValue{}, false
}

// SetListAttr replaces (or appends) a list attribute with the given values.
func (r *BuildRule) SetListAttr(key string, values []string) {
	for i, a := range r.Attrs {
		if a.Key == key {
			r.Attrs[i].Value = AttrValue{Kind: AttrList, List: values}
			return
		}
	}
	r.Attrs = append(r.Attrs, ListAttr(key, values...))
}

// Deps returns the rule's deps list (empty when absent).
func (r *BuildRule) Deps() []string {
	return r.labelList("deps")
}

// RuntimeDeps returns the rule's runtime_deps list (empty when absent).
func (r *BuildRule) RuntimeDeps() []string {
	return r.labelList("runtime_deps")
}

func (r *BuildRule) labelList(key string) []string {
	v, ok := r.Attr(key)
	if !ok || v.Kind != AttrList {
		return nil
	}
	return v.List
}

// AddDeps unions the given labels into the deps attribute, keeping the list
// sorted and duplicate-free. It reports whether anything changed.
func (r *BuildRule) AddDeps(labels ...string) bool {
	return r.addLabels("deps", labels)
}

// AddRuntimeDeps unions the given labels into the runtime_deps attribute.
func (r *BuildRule) AddRuntimeDeps(labels ...string) bool {
	return r.addLabels("runtime_deps", labels)
}

func (r *BuildRule) addLabels(key string, labels []string) bool {
	existing := make(map[string]bool)
	list := r.labelList(key)
	for _, l := range list {
		existing[l] = true
	}

	changed := false
	for _, l := range labels {
		if l == "" || existing[l] {
			continue
		}
		existing[l] = true
		list = append(list, l)
		changed = true
	}

	if changed {
		sort.Strings(list)
		r.SetListAttr(key, list)
	}
	return changed
}

// Load is a load statement importing rule symbols into a build file.
type Load struct {
	Module  string
	Symbols []string
}

// BuildFile is one build description file: its load statements and rule
// blocks.
type BuildFile struct {
	// Path is relative to the project root.
	Path  string
	Loads []Load
	Rules []*BuildRule
}

// EnsureLoad adds the given symbols to the load statement for module,
// creating it when absent.
func (f *BuildFile) EnsureLoad(module string, symbols ...string) {
	for i, l := range f.Loads {
		if l.Module != module {
			continue
		}
		existing := make(map[string]bool)
		for _, s := range l.Symbols {
			existing[s] = true
		}
		for _, s := range symbols {
			if !existing[s] {
				f.Loads[i].Symbols = append(f.Loads[i].Symbols, s)
			}
		}
		sort.Strings(f.Loads[i].Symbols)
		return
	}

	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	f.Loads = append(f.Loads, Load{Module: module, Symbols: sorted})
}

// Rule returns the rule with the given name, if present.
func (f *BuildFile) Rule(name string) (*BuildRule, bool) {
	for _, r := range f.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Render produces the canonical text form of the build file: one rule block
// per declaration, four-space indentation, trailing commas, sorted label
// lists. The output is deterministic for a given model.
func (f *BuildFile) Render() string {
	var b strings.Builder

	for _, l := range f.Loads {
		b.WriteString("load(")
		writeQuoted(&b, l.Module)
		for _, s := range l.Symbols {
			b.WriteString(", ")
			writeQuoted(&b, s)
		}
		b.WriteString(")\n")
	}
	if len(f.Loads) > 0 && len(f.Rules) > 0 {
		b.WriteString("\n")
	}

	for i, r := range f.Rules {
		if i > 0 {
			b.WriteString("\n")
		}
		renderRule(&b, r)
	}
	return b.String()
}

func renderRule(b *strings.Builder, r *BuildRule) {
	b.WriteString(r.Kind)
	b.WriteString("(\n")
	b.WriteString("    name = ")
	writeQuoted(b, r.Name)
	b.WriteString(",\n")

	for _, a := range r.Attrs {
		b.WriteString("    ")
		b.WriteString(a.Key)
		b.WriteString(" = ")
		renderValue(b, a.Key, a.Value)
		b.WriteString(",\n")
	}
	b.WriteString(")\n")
}

func renderValue(b *strings.Builder, key string, v AttrValue) {
	switch v.Kind {
	case AttrString:
		writeQuoted(b, v.Str)
	case AttrBool:
		if v.Bool {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case AttrGlob:
		b.WriteString("glob(")
		renderList(b, v.List, false)
		b.WriteString(")")
	case AttrList:
		// Label lists are kept sorted; srcs-style pattern lists keep
		// their declaration order.
		renderList(b, v.List, isLabelListKey(key))
	}
}

func renderList(b *strings.Builder, items []string, sorted bool) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}

	values := items
	if sorted {
		values = append([]string(nil), items...)
		sort.Strings(values)
	}

	b.WriteString("[\n")
	for _, item := range values {
		b.WriteString("        ")
		writeQuoted(b, item)
		b.WriteString(",\n")
	}
	b.WriteString("    ]")
}

func isLabelListKey(key string) bool {
	switch key {
	case "deps", "runtime_deps", "exports", "visibility":
		return true
	default:
		return false
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteString("\"")
	b.WriteString(strings.ReplaceAll(s, "\"", "\\\""))
	b.WriteString("\"")
}
