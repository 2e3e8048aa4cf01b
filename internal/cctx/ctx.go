package cctx

import "context"

type ContextKey string

var (
	RequestID ContextKey = "rs:rid"
)

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestID).(string)
	return id
}
