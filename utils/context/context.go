package context

import (
	"context"

	"github.com/rescueops/admin-console/constant"
)

// WithActor embeds the authenticated admin into ctx.
func WithActor(ctx context.Context, id, role string) context.Context {
	ctx = context.WithValue(ctx, constant.ActorIDKey, id)
	return context.WithValue(ctx, constant.ActorRoleKey, role)
}

func GetActorID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.ActorIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func GetActorRole(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.ActorRoleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
