package executor_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	executor "github.com/hanpama/wpgraph/internal/executor"
	"github.com/stretchr/testify/require"
)

const argsSDL = `
enum Order { ASC DESC }
input Range {
  from: Int!
  to: Int = 10
}
type Query {
  terms(taxonomy: String = "post_tag", order: Order = ASC, limit: Int): [String]
  date(format: String): String
  window(range: Range): String
  required(id: Int!): String
}
`

func lastArgs(t *testing.T, rt *executor.MockRuntime) map[string]any {
	t.Helper()
	calls := rt.GetCalls()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1].Args
}

func TestArguments_DefaultsAndOmission(t *testing.T) {
	rt := executor.NewMockRuntime(nil)
	exec := executor.NewExecutor(rt, mustBuildSchema(t, argsSDL))

	t.Run("defaults applied", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ terms }`), "", nil, nil)
		require.Empty(t, got.Errors)
		require.Equal(t, map[string]any{"taxonomy": "post_tag", "order": "ASC"}, lastArgs(t, rt))
	})

	t.Run("optional argument without default is absent", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ date }`), "", nil, nil)
		require.Empty(t, got.Errors)
		args := lastArgs(t, rt)
		_, present := args["format"]
		require.False(t, present)
	})

	t.Run("explicit null is present", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ date(format: null) }`), "", nil, nil)
		require.Empty(t, got.Errors)
		args := lastArgs(t, rt)
		v, present := args["format"]
		require.True(t, present)
		require.Nil(t, v)
	})

	t.Run("literal values", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ terms(taxonomy: "category", order: DESC, limit: 3) }`), "", nil, nil)
		require.Empty(t, got.Errors)
		require.Equal(t, map[string]any{"taxonomy": "category", "order": "DESC", "limit": 3}, lastArgs(t, rt))
	})

	t.Run("input object defaults", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ window(range: {from: 1}) }`), "", nil, nil)
		require.Empty(t, got.Errors)
		require.Equal(t, map[string]any{"range": map[string]any{"from": 1, "to": 10}}, lastArgs(t, rt))
	})
}

func TestArguments_Variables(t *testing.T) {
	rt := executor.NewMockRuntime(nil)
	exec := executor.NewExecutor(rt, mustBuildSchema(t, argsSDL))
	doc := mustParseQuery(t, `query Q($o: Order, $n: Int, $f: String) { terms(order: $o, limit: $n) date(format: $f) }`)

	got := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"o": "DESC", "n": float64(5)}, nil)
	require.Empty(t, got.Errors)

	calls := rt.GetCalls()
	want := []executor.Call{
		{ObjectType: "Query", Field: "terms", Args: map[string]any{"taxonomy": "post_tag", "order": "DESC", "limit": 5}},
		{ObjectType: "Query", Field: "date", Args: map[string]any{}},
	}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestArguments_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		vars  map[string]any
		want  *executor.ExecutionResult
	}{
		{
			name:  "unknown enum value",
			query: `{ terms(order: SIDEWAYS) }`,
			want: &executor.ExecutionResult{
				Data: map[string]any{"terms": nil},
				Errors: []executor.GraphQLError{{
					Message: `argument 'order' cannot be coerced: value "SIDEWAYS" does not exist in enum Order`,
					Path:    executor.Path{"terms"},
				}},
			},
		},
		{
			name:  "missing required argument",
			query: `{ required }`,
			want: &executor.ExecutionResult{
				Data: map[string]any{"required": nil},
				Errors: []executor.GraphQLError{{
					Message: "argument 'id' of required type Int! was not provided",
					Path:    executor.Path{"required"},
				}},
			},
		},
		{
			name:  "wrong scalar type",
			query: `{ required(id: "x") }`,
			want: &executor.ExecutionResult{
				Data: map[string]any{"required": nil},
				Errors: []executor.GraphQLError{{
					Message: "argument 'id' cannot be coerced: cannot coerce x (string) to Int",
					Path:    executor.Path{"required"},
				}},
			},
		},
		{
			name:  "invalid variable",
			query: `query($o: Order) { terms(order: $o) }`,
			vars:  map[string]any{"o": "UP"},
			want: &executor.ExecutionResult{
				Errors: []executor.GraphQLError{{
					Message: `variable $o of type Order cannot be coerced: value "UP" does not exist in enum Order`,
				}},
			},
		},
		{
			name:  "missing required variable",
			query: `query($id: Int!) { required(id: $id) }`,
			want: &executor.ExecutionResult{
				Errors: []executor.GraphQLError{{Message: "variable $id of required type Int! was not provided"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := executor.NewMockRuntime(nil)
			exec := executor.NewExecutor(rt, mustBuildSchema(t, argsSDL))
			got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, tt.query), "", tt.vars, nil)
			assertResult(t, tt.want, got)
			require.Empty(t, rt.GetCalls())
		})
	}
}
