package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/ratelimit"
)

// RateLimitMiddleware возвращает middleware, ограничивающий частоту запросов
// по ключу клиента. Ключом служит имя пользователя из контекста, для
// неаутентифицированных запросов — адрес клиента.
func RateLimitMiddleware(store *ratelimit.Store, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := r.Context().Value(User).(string)
			if !ok || key == "" {
				key = r.RemoteAddr
			}
			if !store.Allow(key) {
				log.Error("too many requests", slog.String("key", key))
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
