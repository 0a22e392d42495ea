package introspection

import (
	schema "github.com/hanpama/wpgraph/internal/schema"
)

var (
	stringRef  = schema.NamedType("String")
	booleanRef = schema.NamedType("Boolean")
)

func named(name string) *schema.TypeRef { return schema.NamedType(name) }

func nonNull(name string) *schema.TypeRef { return schema.NonNullType(schema.NamedType(name)) }

// listOf returns [name!].
func listOf(name string) *schema.TypeRef { return schema.ListType(nonNull(name)) }

func includeDeprecated() *schema.InputValue {
	return schema.NewInputValue("includeDeprecated", "", booleanRef).SetDefault(false)
}

// extend returns two copies of original carrying the introspection types.
// view is what introspection queries describe. exec additionally has __schema
// and __type on its query type and is what the executor runs against.
// original is not modified.
func extend(original *schema.Schema) (view, exec *schema.Schema) {
	view = &schema.Schema{
		QueryType:        original.QueryType,
		MutationType:     original.MutationType,
		SubscriptionType: original.SubscriptionType,
		Types:            make(map[string]*schema.Type, len(original.Types)+8),
		Directives:       original.Directives,
		Description:      original.Description,
	}
	for name, t := range original.Types {
		view.Types[name] = t
	}
	for _, t := range metaTypes() {
		view.AddType(t)
	}

	cp := *view
	cp.Types = make(map[string]*schema.Type, len(view.Types))
	for name, t := range view.Types {
		cp.Types[name] = t
	}
	exec = &cp
	if q := view.GetQueryType(); q != nil {
		root := *q
		root.Fields = append(append([]*schema.Field(nil), q.Fields...),
			schema.NewField("__schema", "Access the current type schema of this server.", nonNull("__Schema")),
			schema.NewField("__type", "Request the type information of a single type.", named("__Type")).
				AddArgument(schema.NewInputValue("name", "The name of the type to look up.", nonNull("String"))),
		)
		exec.AddType(&root)
	}
	return view, exec
}

func metaTypes() []*schema.Type {
	object := func(name, description string, fields ...*schema.Field) *schema.Type {
		t := schema.NewType(name, schema.TypeKindObject, description)
		for _, f := range fields {
			t.AddField(f)
		}
		return t
	}
	enum := func(name string, values ...string) *schema.Type {
		t := schema.NewType(name, schema.TypeKindEnum, "")
		for _, v := range values {
			t.AddEnumValue(schema.NewEnumValue(v, ""))
		}
		return t
	}

	return []*schema.Type{
		object("__Schema", "A GraphQL Schema defines the capabilities of a GraphQL server.",
			schema.NewField("description", "", stringRef),
			schema.NewField("types", "A list of all types supported by this server.", schema.NonNullType(listOf("__Type"))),
			schema.NewField("queryType", "The type that query operations will be rooted at.", nonNull("__Type")),
			schema.NewField("mutationType", "", named("__Type")),
			schema.NewField("subscriptionType", "", named("__Type")),
			schema.NewField("directives", "A list of all directives supported by this server.", schema.NonNullType(listOf("__Directive"))),
		),
		object("__Type", "The fundamental unit of any GraphQL Schema is the type.",
			schema.NewField("kind", "", nonNull("__TypeKind")),
			schema.NewField("name", "", stringRef),
			schema.NewField("description", "", stringRef),
			schema.NewField("specifiedByURL", "", stringRef),
			schema.NewField("fields", "", listOf("__Field")).AddArgument(includeDeprecated()),
			schema.NewField("interfaces", "", listOf("__Type")),
			schema.NewField("possibleTypes", "", listOf("__Type")),
			schema.NewField("enumValues", "", listOf("__EnumValue")).AddArgument(includeDeprecated()),
			schema.NewField("inputFields", "", listOf("__InputValue")).AddArgument(includeDeprecated()),
			schema.NewField("ofType", "", named("__Type")),
			schema.NewField("isOneOf", "", booleanRef),
		),
		object("__Field", "",
			schema.NewField("name", "", nonNull("String")),
			schema.NewField("description", "", stringRef),
			schema.NewField("args", "", schema.NonNullType(listOf("__InputValue"))).AddArgument(includeDeprecated()),
			schema.NewField("type", "", nonNull("__Type")),
			schema.NewField("isDeprecated", "", nonNull("Boolean")),
			schema.NewField("deprecationReason", "", stringRef),
		),
		object("__InputValue", "",
			schema.NewField("name", "", nonNull("String")),
			schema.NewField("description", "", stringRef),
			schema.NewField("type", "", nonNull("__Type")),
			schema.NewField("defaultValue", "A GraphQL-formatted string representing the default value for this input value.", stringRef),
			schema.NewField("isDeprecated", "", nonNull("Boolean")),
			schema.NewField("deprecationReason", "", stringRef),
		),
		object("__EnumValue", "",
			schema.NewField("name", "", nonNull("String")),
			schema.NewField("description", "", stringRef),
			schema.NewField("isDeprecated", "", nonNull("Boolean")),
			schema.NewField("deprecationReason", "", stringRef),
		),
		object("__Directive", "",
			schema.NewField("name", "", nonNull("String")),
			schema.NewField("description", "", stringRef),
			schema.NewField("isRepeatable", "", nonNull("Boolean")),
			schema.NewField("locations", "", schema.NonNullType(listOf("__DirectiveLocation"))),
			schema.NewField("args", "", schema.NonNullType(listOf("__InputValue"))).AddArgument(includeDeprecated()),
		),
		enum("__TypeKind", "SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"),
		enum("__DirectiveLocation",
			"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD",
			"INLINE_FRAGMENT", "VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT", "FIELD_DEFINITION",
			"ARGUMENT_DEFINITION", "INTERFACE", "UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT",
			"INPUT_FIELD_DEFINITION",
		),
	}
}
