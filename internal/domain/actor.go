package domain

import (
	"context"
	"strings"
)

// SystemActor пишется в аудит, если в контексте нет пользователя.
const SystemActor = "system"

type actorKey struct{}

// WithActor добавляет логин пользователя для аудита.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFrom возвращает логин из WithActor или SystemActor.
func ActorFrom(ctx context.Context) string {
	if ctx == nil {
		return SystemActor
	}
	if v, ok := ctx.Value(actorKey{}).(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return SystemActor
}
