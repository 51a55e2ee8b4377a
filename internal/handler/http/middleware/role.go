package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/jwtauth/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/response"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/jwt"
)

// RequireRole lets the request through when the token role is one of roles. Admin is always allowed.
func RequireRole(roles ...jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, jwt.ErrInsufficientRole)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, jwt.ErrInsufficientRole)
				return
			}

			role := jwt.Role(roleStr)
			if role != jwt.RoleAdmin && !slices.Contains(roles, role) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: role '%s' cannot access this resource", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
