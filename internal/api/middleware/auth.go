package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
)

// HeaderUserID заголовок с ID пользователя, проставляется API gateway
const HeaderUserID = "X-User-ID"

const (
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgMissingUserID = "требуется заголовок X-User-ID"
)

// Identify разбирает X-User-ID, если он есть. Некорректное значение - 400.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// RequireUser пропускает только запросы с пользователем в контексте. Ставится после Identify.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r)
	})
}
