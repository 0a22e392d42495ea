package language

import "github.com/vektah/gqlparser/v2/ast"

// Aliases for the parts of the gqlparser AST the executor walks.
type (
	QueryDocument       = ast.QueryDocument
	SchemaDocument      = ast.SchemaDocument
	OperationDefinition = ast.OperationDefinition
	SelectionSet        = ast.SelectionSet
	Field               = ast.Field
	InlineFragment      = ast.InlineFragment
	FragmentDefinition  = ast.FragmentDefinition
	FragmentSpread      = ast.FragmentSpread
	Directive           = ast.Directive
	DirectiveList       = ast.DirectiveList
	Value               = ast.Value
	ArgumentDefinition  = ast.ArgumentDefinition
	Type                = ast.Type
	Definition          = ast.Definition
	DirectiveDefinition = ast.DirectiveDefinition
)

const (
	Query        = ast.Query
	Mutation     = ast.Mutation
	Subscription = ast.Subscription

	Object      = ast.Object
	Interface   = ast.Interface
	Union       = ast.Union
	Scalar      = ast.Scalar
	Enum        = ast.Enum
	InputObject = ast.InputObject

	Variable     = ast.Variable
	IntValue     = ast.IntValue
	FloatValue   = ast.FloatValue
	StringValue  = ast.StringValue
	BlockValue   = ast.BlockValue
	BooleanValue = ast.BooleanValue
	NullValue    = ast.NullValue
	EnumValue    = ast.EnumValue
	ListValue    = ast.ListValue
	ObjectValue  = ast.ObjectValue
)
