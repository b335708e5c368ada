package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey gin.Context 键值对中的 trace_id 键
const TraceIDKey = "trace_id"

// 私有类型的 ctx 键，避免与其他包的字符串键碰撞
type traceCtxKey struct{}

// WithTraceID 把 trace_id 挂到 ctx 上，供日志处理器读取
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceCtxKey{}, traceID)
}

// TraceIDFrom 取出 ctx 上的 trace_id，没有则为空串
func TraceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(traceCtxKey{}).(string)
	return id
}

// ContextHandler 包装器，把 ctx 上的 trace_id 附加到每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID := TraceIDFrom(ctx); traceID != "" {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
