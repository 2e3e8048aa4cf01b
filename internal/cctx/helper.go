package cctx

import (
	"context"

	"go.uber.org/zap"
)

func WithValues(parent context.Context, values ...interface{}) (ctx context.Context) {
	if len(values)%2 != 0 {
		panic("uneven")
	}

	ctx = parent
	for i := 0; i < len(values); i += 2 {
		ctx = context.WithValue(ctx, values[i], values[i+1])
	}
	return
}

// Logger returns the global logger annotated with the request ID, if any.
func Logger(ctx context.Context) *zap.Logger {
	if id := RequestIDFrom(ctx); id != "" {
		return zap.L().With(zap.String("request_id", id))
	}
	return zap.L()
}
