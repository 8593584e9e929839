package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
)

// RequireRole возвращает middleware, который пускает дальше только запросы
// с заданной ролью в контексте. Остальные получают 403 Forbidden.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := r.Context().Value(Role).(string)
			if !ok || got != role {
				log.Error("access denied", slog.String("required_role", role), slog.String("role", got))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
