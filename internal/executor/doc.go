// Package executor implements a synchronous GraphQL executor with explicit
// runtime hooks for field resolution, abstract-type resolution, and leaf
// serialization.
//
// # Execution Model
//
// Execution is depth-first and strictly sequential. For each selection set the
// executor:
//  1. Collects fields, honouring @skip/@include and fragment type conditions.
//     A fragment applies when its type condition names the object type itself,
//     an interface the object implements, or a union containing it.
//  2. Coerces arguments against the field definition. Optional arguments that
//     are absent from the request and have no default are omitted from the
//     argument map, so resolvers can tell "not given" from "given as null".
//  3. Calls Runtime.ResolveField and completes the value before moving on to
//     the next field.
//
// # Value Completion
//
//   - Non-Null: complete the inner type; a null result records an error and
//     propagates null to the nearest nullable ancestor.
//   - List: complete each element with index-aware paths. A nil Go slice is an
//     empty list, not null.
//   - Leaf (Scalar/Enum): Runtime.SerializeLeafValue.
//   - Abstract (Interface/Union): Runtime.ResolveType picks the concrete type.
//     An empty type name is a field error: the value becomes null and a
//     located error names the abstract type and the response path.
//   - Object: execute the merged sub-selection against the resolved value.
//
// # Errors and Partial Success
//
// Errors are accumulated as located GraphQL errors (message, query location,
// response path) and never abort sibling fields.
package executor
