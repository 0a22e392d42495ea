package server

import (
	"context"

	eventbus "github.com/hanpama/wpgraph/internal/eventbus"
	events "github.com/hanpama/wpgraph/internal/events"
	reqid "github.com/hanpama/wpgraph/internal/reqid"
	"go.uber.org/zap"
)

// LogEvents writes request lifecycle events from the global bus to logger at
// debug level.
func LogEvents(logger *zap.Logger) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			logger.Debug("http request",
				zap.String("request_id", e.RequestID),
				zap.String("method", e.Request.Method),
				zap.String("path", e.Request.URL.Path),
				zap.Int("status", e.Status),
				zap.Duration("duration", e.Duration))
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
			rid, _ := reqid.FromContext(ctx)
			logger.Debug("graphql operation",
				zap.String("request_id", rid),
				zap.String("operation", e.OperationName),
				zap.String("type", e.OperationType),
				zap.Int("errors", len(e.Errors)),
				zap.Duration("duration", e.Duration))
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.TypeResolved) {
			if e.Found {
				return
			}
			rid, _ := reqid.FromContext(ctx)
			logger.Debug("unresolved post type",
				zap.String("request_id", rid),
				zap.String("abstract_type", e.AbstractType),
				zap.String("post_type", e.Discriminator))
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
