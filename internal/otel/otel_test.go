package otel

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	eventbus "github.com/hanpama/wpgraph/internal/eventbus"
	events "github.com/hanpama/wpgraph/internal/events"
	reqid "github.com/hanpama/wpgraph/internal/reqid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_NoEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSubscribe_RequestSpans(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	unsubscribe := Subscribe(tp.Tracer("test"))
	defer unsubscribe()

	req := httptest.NewRequest("POST", "/graphql", nil)
	ctx, rid := reqid.NewContext(context.Background())

	eventbus.Publish(ctx, events.HTTPStart{Request: req, RequestID: rid})
	eventbus.Publish(ctx, events.GraphQLStart{OperationName: "Q", OperationType: "query"})
	eventbus.Publish(ctx, events.TypeResolved{AbstractType: "WP_Post", Discriminator: "custom_widget"})
	eventbus.Publish(ctx, events.GraphQLFinish{OperationName: "Q", Errors: []error{errors.New("boom")}})
	eventbus.Publish(ctx, events.HTTPFinish{Request: req, RequestID: rid, Status: 200})

	ended := sr.Ended()
	require.Len(t, ended, 2)

	gql, httpSpan := ended[0], ended[1]
	require.Equal(t, "graphql.operation", gql.Name())
	require.Equal(t, "http.request", httpSpan.Name())
	require.Equal(t, httpSpan.SpanContext().SpanID(), gql.Parent().SpanID())
	require.Contains(t, gql.Attributes(), attribute.Int("graphql.error_count", 1))

	var names []string
	for _, ev := range gql.Events() {
		names = append(names, ev.Name)
	}
	require.Equal(t, []string{"graphql.resolve_type", "exception"}, names)
	require.Contains(t, gql.Events()[0].Attributes, attribute.Bool("graphql.type_found", false))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	Subscribe(tp.Tracer("test"))()

	ctx, rid := reqid.NewContext(context.Background())
	req := httptest.NewRequest("GET", "/healthz", nil)
	eventbus.Publish(ctx, events.HTTPStart{Request: req, RequestID: rid})
	eventbus.Publish(ctx, events.HTTPFinish{Request: req, RequestID: rid, Status: 200})

	require.Empty(t, sr.Ended())
}
