package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActorKey contextKey = "actor"

// GetActor extracts the actor id stored by ActorMiddleware, or "" when the
// middleware did not run.
func GetActor(r *http.Request) string {
	if val, ok := r.Context().Value(ActorKey).(string); ok {
		return val
	}
	return ""
}

// ActorMiddleware resolves who is making the request once and stores the id
// in the request context, so every gateway call in the handler chain records
// the same actor. Only the authenticated record and the X-Actor-ID header are
// consulted; nothing is read from global state.
func ActorMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := context.WithValue(e.Request.Context(), ActorKey, resolveActor(e))
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// actorID returns the actor stored by ActorMiddleware, resolving it directly
// when the middleware is not bound (as in handler tests).
func actorID(e *core.RequestEvent) string {
	if a := GetActor(e.Request); a != "" {
		return a
	}
	return resolveActor(e)
}

// resolveActor prefers the authenticated record, then the X-Actor-ID header,
// then AnonymousActor.
func resolveActor(e *core.RequestEvent) string {
	if e.Auth != nil && e.Auth.Id != "" {
		return e.Auth.Id
	}
	if h := strings.TrimSpace(e.Request.Header.Get(ActorHeader)); h != "" {
		return h
	}
	return AnonymousActor
}
