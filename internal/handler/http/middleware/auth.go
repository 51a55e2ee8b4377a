package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/response"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/jwt"
)

// AuthRequired accepts only verified, unrevoked access tokens. It must run after jwtauth.Verifier.
func AuthRequired(svc jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			if svc.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, jwt.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
