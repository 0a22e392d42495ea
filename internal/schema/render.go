package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Render produces SDL from the Schema.
// Deterministic ordering: type/directive names sorted lexicographically, fields
// and arguments in declaration order.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	if (s.QueryType != "" && s.QueryType != "Query") || (s.MutationType != "" && s.MutationType != "Mutation") {
		b.WriteString("schema {\n")
		if s.QueryType != "" {
			b.WriteString("  query: " + s.QueryType + "\n")
		}
		if s.MutationType != "" {
			b.WriteString("  mutation: " + s.MutationType + "\n")
		}
		if s.SubscriptionType != "" {
			b.WriteString("  subscription: " + s.SubscriptionType + "\n")
		}
		b.WriteString("}\n\n")
	}

	typeNames := make([]string, 0, len(s.Types))
	for name, typ := range s.Types {
		if isBuiltinType(typ) {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		typ := s.Types[name]
		renderDescription(&b, "", typ.Description)
		switch typ.Kind {
		case TypeKindScalar:
			b.WriteString("scalar " + typ.Name)
			if typ.SpecifiedByURL != nil {
				b.WriteString(" @specifiedBy(url: " + strconv.Quote(*typ.SpecifiedByURL) + ")")
			}
			b.WriteString("\n\n")
		case TypeKindEnum:
			b.WriteString("enum " + typ.Name + " {\n")
			for _, val := range typ.EnumValues {
				renderDescription(&b, "  ", val.Description)
				b.WriteString("  " + val.Name)
				renderDeprecation(&b, val.IsDeprecated, val.DeprecationReason)
				b.WriteString("\n")
			}
			b.WriteString("}\n\n")
		case TypeKindInputObject:
			b.WriteString("input " + typ.Name)
			if typ.OneOf {
				b.WriteString(" @oneOf")
			}
			b.WriteString(" {\n")
			for _, field := range typ.InputFields {
				renderDescription(&b, "  ", field.Description)
				b.WriteString("  " + renderInputValue(field))
				renderDeprecation(&b, field.IsDeprecated, field.DeprecationReason)
				b.WriteString("\n")
			}
			b.WriteString("}\n\n")
		case TypeKindObject, TypeKindInterface:
			if typ.Kind == TypeKindObject {
				b.WriteString("type ")
			} else {
				b.WriteString("interface ")
			}
			b.WriteString(typ.Name)
			if len(typ.Interfaces) > 0 {
				b.WriteString(" implements " + strings.Join(typ.Interfaces, " & "))
			}
			b.WriteString(" {\n")
			for _, field := range typ.Fields {
				renderField(&b, field)
			}
			b.WriteString("}\n\n")
		case TypeKindUnion:
			b.WriteString("union " + typ.Name + " = " + strings.Join(typ.PossibleTypes, " | ") + "\n\n")
		}
	}

	directiveNames := make([]string, 0, len(s.Directives))
	for name, directive := range s.Directives {
		if directive == includeDirective || directive == skipDirective {
			continue
		}
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		d := s.Directives[name]
		renderDescription(&b, "", d.Description)
		b.WriteString("directive @" + d.Name)
		renderArguments(&b, d.Arguments)
		if d.IsRepeatable {
			b.WriteString(" repeatable")
		}
		b.WriteString(" on " + strings.Join(d.Locations, " | ") + "\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func isBuiltinType(t *Type) bool {
	switch t {
	case stringType, intType, floatType, booleanType, idType:
		return true
	}
	return false
}

func renderDescription(b *strings.Builder, indent, desc string) {
	if desc == "" {
		return
	}
	b.WriteString(indent + "\"\"\"\n")
	for _, line := range strings.Split(strings.ReplaceAll(desc, "\"\"\"", "\\\"\"\""), "\n") {
		b.WriteString(indent + line + "\n")
	}
	b.WriteString(indent + "\"\"\"\n")
}

func renderDeprecation(b *strings.Builder, deprecated bool, reason string) {
	if !deprecated {
		return
	}
	b.WriteString(" @deprecated")
	if reason != "" {
		b.WriteString("(reason: " + strconv.Quote(reason) + ")")
	}
}

func renderField(b *strings.Builder, field *Field) {
	renderDescription(b, "  ", field.Description)
	b.WriteString("  " + field.Name)
	renderArguments(b, field.Arguments)
	b.WriteString(": " + field.Type.String())
	renderDeprecation(b, field.IsDeprecated, field.DeprecationReason)
	b.WriteString("\n")
}

func renderArguments(b *strings.Builder, args []*InputValue) {
	if len(args) == 0 {
		return
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = renderInputValue(arg)
	}
	b.WriteString("(" + strings.Join(parts, ", ") + ")")
}

func renderInputValue(v *InputValue) string {
	out := v.Name + ": " + v.Type.String()
	if v.DefaultValue != nil {
		out += " = " + renderValue(v.DefaultValue)
	}
	return out
}

// FormatValue renders value as a GraphQL input literal.
func FormatValue(value any) string { return renderValue(value) }

func renderValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + renderValue(v[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
