package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type userIDKey struct{}

// UserID вынимает идентификатор вызывающего из заголовка X-User-Id
// (его проставляет api-gateway после проверки токена) и кладёт в контекст.
// Сам сервис токены не проверяет — аутентификация вне его зоны.
func UserID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("X-User-Id"))

			if raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					ctx := context.WithValue(r.Context(), userIDKey{}, id)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFrom возвращает идентификатор вызывающего из контекста.
// false — заголовок отсутствовал или не разобрался.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	if v := ctx.Value(userIDKey{}); v != nil {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}

	return uuid.Nil, false
}
