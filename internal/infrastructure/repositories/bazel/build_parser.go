package bazel

import (
	"fmt"

	"go.starlark.net/syntax"

	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// parseBuildFile parses build description text into the rule model. Build
// files are Starlark, so the Starlark syntax tree is the source of truth;
// only the declarative subset the generator itself emits (load statements
// and rule calls with string/list/glob/bool attributes) is accepted.
func parseBuildFile(path string, src []byte) (*entities.BuildFile, error) {
	f, err := syntax.Parse(path, src, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build file %q: %w", path, err)
	}

	file := &entities.BuildFile{Path: path}

	for _, stmt := range f.Stmts {
		switch s := stmt.(type) {
		case *syntax.LoadStmt:
			load, loadErr := parseLoad(s)
			if loadErr != nil {
				return nil, fmt.Errorf("%s: %w", path, loadErr)
			}
			file.Loads = append(file.Loads, load)
		case *syntax.ExprStmt:
			call, ok := s.X.(*syntax.CallExpr)
			if !ok {
				return nil, fmt.Errorf("%s: unsupported top-level expression", path)
			}
			rule, ruleErr := parseRule(call)
			if ruleErr != nil {
				return nil, fmt.Errorf("%s: %w", path, ruleErr)
			}
			file.Rules = append(file.Rules, rule)
		default:
			return nil, fmt.Errorf("%s: unsupported statement %T", path, stmt)
		}
	}

	return file, nil
}

func parseLoad(stmt *syntax.LoadStmt) (entities.Load, error) {
	module, ok := stringLiteral(stmt.Module)
	if !ok {
		return entities.Load{}, fmt.Errorf("load statement with non-literal module")
	}

	load := entities.Load{Module: module}
	for _, from := range stmt.From {
		load.Symbols = append(load.Symbols, from.Name)
	}
	return load, nil
}

func parseRule(call *syntax.CallExpr) (*entities.BuildRule, error) {
	ident, ok := call.Fn.(*syntax.Ident)
	if !ok {
		return nil, fmt.Errorf("rule call with non-identifier function")
	}

	rule := &entities.BuildRule{Kind: ident.Name}

	for _, arg := range call.Args {
		binary, isKwarg := arg.(*syntax.BinaryExpr)
		if !isKwarg || binary.Op != syntax.EQ {
			return nil, fmt.Errorf("rule %q: positional arguments are not supported", ident.Name)
		}
		key, keyOk := binary.X.(*syntax.Ident)
		if !keyOk {
			return nil, fmt.Errorf("rule %q: non-identifier attribute name", ident.Name)
		}

		value, valueErr := parseValue(binary.Y)
		if valueErr != nil {
			return nil, fmt.Errorf("rule %q, attribute %q: %w", ident.Name, key.Name, valueErr)
		}

		if key.Name == "name" && value.Kind == entities.AttrString {
			rule.Name = value.Str
			continue
		}
		rule.Attrs = append(rule.Attrs, entities.Attr{Key: key.Name, Value: value})
	}

	if rule.Name == "" {
		return nil, fmt.Errorf("rule %q has no name attribute", ident.Name)
	}
	return rule, nil
}

func parseValue(expr syntax.Expr) (entities.AttrValue, error) {
	switch v := expr.(type) {
	case *syntax.Literal:
		if v.Token != syntax.STRING {
			return entities.AttrValue{}, fmt.Errorf("unsupported literal %s", v.Token)
		}
		return entities.AttrValue{Kind: entities.AttrString, Str: v.Value.(string)}, nil

	case *syntax.Ident:
		switch v.Name {
		case "True":
			return entities.AttrValue{Kind: entities.AttrBool, Bool: true}, nil
		case "False":
			return entities.AttrValue{Kind: entities.AttrBool, Bool: false}, nil
		default:
			return entities.AttrValue{}, fmt.Errorf("unsupported identifier %q", v.Name)
		}

	case *syntax.ListExpr:
		items, err := stringList(v)
		if err != nil {
			return entities.AttrValue{}, err
		}
		return entities.AttrValue{Kind: entities.AttrList, List: items}, nil

	case *syntax.CallExpr:
		fn, ok := v.Fn.(*syntax.Ident)
		if !ok || fn.Name != "glob" {
			return entities.AttrValue{}, fmt.Errorf("unsupported call expression")
		}
		if len(v.Args) != 1 {
			return entities.AttrValue{}, fmt.Errorf("glob with %d arguments", len(v.Args))
		}
		list, ok := v.Args[0].(*syntax.ListExpr)
		if !ok {
			return entities.AttrValue{}, fmt.Errorf("glob with non-list argument")
		}
		patterns, err := stringList(list)
		if err != nil {
			return entities.AttrValue{}, err
		}
		return entities.AttrValue{Kind: entities.AttrGlob, List: patterns}, nil

	default:
		return entities.AttrValue{}, fmt.Errorf("unsupported value %T", expr)
	}
}

func stringList(list *syntax.ListExpr) ([]string, error) {
	items := make([]string, 0, len(list.List))
	for _, e := range list.List {
		s, ok := stringLiteral(e)
		if !ok {
			return nil, fmt.Errorf("list with non-string element")
		}
		items = append(items, s)
	}
	return items, nil
}

func stringLiteral(expr syntax.Expr) (string, bool) {
	lit, ok := expr.(*syntax.Literal)
	if !ok || lit.Token != syntax.STRING {
		return "", false
	}
	return lit.Value.(string), true
}
