package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const (
	msgAdminDisabled = "административный доступ отключен"
	msgUnauthorized  = "неверный токен администратора"
)

// AdminToken пропускает только запросы с совпадающим X-Admin-Token.
// Пустой token закрывает административные маршруты целиком.
func AdminToken(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handlers.RespondForbidden(w, msgAdminDisabled)
				return
			}

			got := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("%s %s - Invalid admin token from %s", r.Method, r.URL.Path, ClientIP(r))
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
