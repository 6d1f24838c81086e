package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Заголовки аутентификации, проставляемые API-шлюзом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const (
	actorIDKey   contextKey = "actorID"
	actorRoleKey contextKey = "actorRole"
)

// Auth извлекает действующее лицо из заголовков запроса.
// X-User-ID обязателен; X-User-Role по умолчанию client.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.KindUnauthorized,
				"отсутствует заголовок X-User-ID")
			return
		}

		actorID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || actorID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.KindUnauthorized,
				"некорректный заголовок X-User-ID")
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if role == "" {
			role = domain.RoleClient
		}
		if !role.Valid() {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.KindUnauthorized,
				"некорректный заголовок X-User-Role")
			return
		}

		ctx := context.WithValue(r.Context(), actorIDKey, actorID)
		ctx = context.WithValue(ctx, actorRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorID возвращает ID действующего лица из контекста
func ActorID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorIDKey).(int64)
	return id, ok
}

// ActorRole возвращает роль действующего лица из контекста
func ActorRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(actorRoleKey).(domain.Role)
	return role, ok
}
