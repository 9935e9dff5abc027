package types

import "context"

type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxTenantID  ContextKey = "ctx_tenant_id"
	CtxActorID   ContextKey = "ctx_actor_id"
)

func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

func GetTenantID(ctx context.Context) string {
	return getString(ctx, CtxTenantID)
}

func GetActorID(ctx context.Context) string {
	return getString(ctx, CtxActorID)
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

func SetActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, CtxActorID, actorID)
}

func getString(ctx context.Context, key ContextKey) string {
	if value, ok := ctx.Value(key).(string); ok {
		return value
	}
	return ""
}
