package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// Заголовки идентификации, проставляемые auth-прокси перед сервисом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Auth извлекает пользователя из заголовков X-User-ID / X-User-Role
// и кладет его в контекст запроса. Запросы без корректного ID отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		actor := domain.Actor{
			ID:   userID,
			Role: domain.Role(r.Header.Get(HeaderUserRole)),
		}
		if actor.Role == "" {
			actor.Role = domain.RoleStudent
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor возвращает пользователя запроса из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
