package http

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/service"
	"github.com/MKhiriev/go-settings/internal/utils"
)

// auth is an HTTP middleware that enforces JWT bearer authentication on the
// routes that change stored settings.
//
// When the [service.AuthService] has no sign key configured every request
// passes through unchanged. Otherwise the request must carry
//
//	Authorization: Bearer <token>
//
// with a token signed by that key. On success the token subject is stored
// in the request context ([utils.WithSubject]) and added to the request
// logger. The middleware rejects requests with 401 Unauthorized when:
//   - the Authorization header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header is not a bearer token ([utils.ErrInvalidAuthorizationHeader]);
//   - the token has expired ([service.ErrTokenIsExpired]);
//   - the token is otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.services.AuthService.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			unauthorized(w, ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			unauthorized(w, err.Error())
			return
		}

		subject, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpired) {
				log.Err(err).Str("func", "*Handler.auth").Msg("token expired")
				unauthorized(w, service.ErrTokenIsExpired.Error())
				return
			}
			log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during parsing token")
			unauthorized(w, http.StatusText(http.StatusUnauthorized))
			return
		}

		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("subject", subject)
		})

		next.ServeHTTP(w, r.WithContext(utils.WithSubject(r.Context(), subject)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="go-settings"`)
	utils.WriteError(w, message, http.StatusUnauthorized)
}
