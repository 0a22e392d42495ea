package executor

import (
	"context"
)

// Runtime defines the host integration surface for field resolution, abstract
// type resolution, and leaf-value serialization used by the Executor.
//
// General contract
//   - Execution is synchronous and depth-first: every ResolveField call returns
//     before the next one is made, and sibling fields are resolved in query
//     order. Implementations must still be safe for concurrent use, since the
//     Executor may run different operations in parallel.
//   - Errors returned from any method are converted into located GraphQL errors.
//     If the field's return type is Non-Null, the Executor propagates the null
//     up to the nearest nullable ancestor per GraphQL spec.
//   - Implementations must not mutate source or args values.
//
// Object/field identifiers
//   - objectType is the GraphQL type name (e.g. "Post").
//   - field is the GraphQL field name on that type (e.g. "terms").
//   - For root fields, objectType is the root type name (e.g. "Query").
//   - source is the parent object value (the initial value for root fields).
//   - args holds the coerced arguments that were supplied or defaulted. An
//     optional argument that is absent from the request has no key in args.
type Runtime interface {
	// ResolveField computes the raw value of one field. The Executor completes
	// the value against the field's type, including nested selection sets.
	// Return (nil, nil) to produce a GraphQL null for nullable fields.
	ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error)

	// ResolveType determines the concrete object type name for a value of an
	// abstract GraphQL type (interface or union).
	//
	// Returning ("", nil) reports that no concrete type could be determined.
	// The Executor treats this as a field error: the value completes to null
	// and a located error is recorded. A non-empty name must be a possible type
	// of abstractType.
	ResolveType(ctx context.Context, abstractType string, value any) (string, error)

	// SerializeLeafValue serializes a scalar or enum value to a JSON-safe Go
	// value. For enums, return the symbolic name as string.
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}
