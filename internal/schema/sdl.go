package schema

import (
	"fmt"
	"sort"

	language "github.com/hanpama/wpgraph/internal/language"
)

// BuildFromSDL parses SDL and returns the corresponding Schema. Type
// extensions are merged into their base definitions. When the document has no
// schema definition, the root types default to Query and Mutation if present.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	s := NewSchema("")

	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		if _, dup := s.Types[t.Name]; dup && !isBuiltinType(s.Types[t.Name]) {
			return nil, fmt.Errorf("type %q defined more than once", t.Name)
		}
		s.AddType(t)
	}
	for _, ext := range doc.Extensions {
		base := s.Types[ext.Name]
		if base == nil {
			return nil, fmt.Errorf("cannot extend undefined type %q", ext.Name)
		}
		t, err := buildDefinition(ext)
		if err != nil {
			return nil, err
		}
		base.Fields = append(base.Fields, t.Fields...)
		base.Interfaces = append(base.Interfaces, t.Interfaces...)
		base.PossibleTypes = append(base.PossibleTypes, t.PossibleTypes...)
		base.EnumValues = append(base.EnumValues, t.EnumValues...)
		base.InputFields = append(base.InputFields, t.InputFields...)
	}
	for _, dir := range doc.Directives {
		d, err := buildDirective(dir)
		if err != nil {
			return nil, err
		}
		s.AddDirective(d)
	}

	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.SetQueryType(op.Type)
			case language.Mutation:
				s.SetMutationType(op.Type)
			case language.Subscription:
				s.SetSubscriptionType(op.Type)
			}
		}
	}
	if s.QueryType == "" {
		if _, ok := s.Types["Query"]; ok {
			s.SetQueryType("Query")
		}
		if _, ok := s.Types["Mutation"]; ok && s.MutationType == "" {
			s.SetMutationType("Mutation")
		}
	}
	if s.QueryType == "" {
		return nil, fmt.Errorf("schema has no query type")
	}

	// Interfaces learn their implementations from the objects that declare them.
	for _, name := range sortedTypeNames(s) {
		t := s.Types[name]
		if t.Kind != TypeKindObject {
			continue
		}
		for _, iface := range t.Interfaces {
			it := s.Types[iface]
			if it == nil || it.Kind != TypeKindInterface {
				return nil, fmt.Errorf("type %q implements unknown interface %q", t.Name, iface)
			}
			it.AddPossibleType(t.Name)
		}
	}
	return s, nil
}

func buildDefinition(def *language.Definition) (*Type, error) {
	var kind TypeKind
	switch def.Kind {
	case language.Object:
		kind = TypeKindObject
	case language.Interface:
		kind = TypeKindInterface
	case language.Union:
		kind = TypeKindUnion
	case language.Scalar:
		kind = TypeKindScalar
	case language.Enum:
		kind = TypeKindEnum
	case language.InputObject:
		kind = TypeKindInputObject
	default:
		return nil, fmt.Errorf("unsupported definition kind %q for %s", def.Kind, def.Name)
	}
	t := NewType(def.Name, kind, def.Description)
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, name := range def.Types {
		t.AddPossibleType(name)
	}
	for _, v := range def.EnumValues {
		ev := NewEnumValue(v.Name, v.Description)
		if reason, ok := deprecation(v.Directives); ok {
			ev.Deprecate(reason)
		}
		t.AddEnumValue(ev)
	}
	for _, fd := range def.Fields {
		if kind == TypeKindInputObject {
			iv := NewInputValue(fd.Name, fd.Description, typeRefFromAST(fd.Type))
			if fd.DefaultValue != nil {
				v, err := fd.DefaultValue.Value(nil)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: default value: %w", def.Name, fd.Name, err)
				}
				iv.SetDefault(v)
			}
			t.AddInputField(iv)
			continue
		}
		f := NewField(fd.Name, fd.Description, typeRefFromAST(fd.Type))
		if reason, ok := deprecation(fd.Directives); ok {
			f.Deprecate(reason)
		}
		for _, ad := range fd.Arguments {
			iv, err := buildArgument(ad)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", def.Name, fd.Name, err)
			}
			f.AddArgument(iv)
		}
		t.AddField(f)
	}
	return t, nil
}

func buildArgument(ad *language.ArgumentDefinition) (*InputValue, error) {
	iv := NewInputValue(ad.Name, ad.Description, typeRefFromAST(ad.Type))
	if ad.DefaultValue != nil {
		v, err := ad.DefaultValue.Value(nil)
		if err != nil {
			return nil, fmt.Errorf("argument %s: default value: %w", ad.Name, err)
		}
		iv.SetDefault(v)
	}
	if reason, ok := deprecation(ad.Directives); ok {
		iv.Deprecate(reason)
	}
	return iv, nil
}

func buildDirective(dir *language.DirectiveDefinition) (*Directive, error) {
	d := NewDirective(dir.Name, dir.Description).SetRepeatable(dir.IsRepeatable)
	for _, loc := range dir.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, ad := range dir.Arguments {
		iv, err := buildArgument(ad)
		if err != nil {
			return nil, fmt.Errorf("directive @%s: %w", dir.Name, err)
		}
		d.AddArgument(iv)
	}
	return d, nil
}

func deprecation(directives language.DirectiveList) (string, bool) {
	dep := directives.ForName("deprecated")
	if dep == nil {
		return "", false
	}
	if arg := dep.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "", true
}

func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(typeRefFromAST(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		return NonNullType(ref)
	}
	return ref
}

func sortedTypeNames(s *Schema) []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
