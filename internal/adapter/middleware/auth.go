package middleware

import (
	"net/http"
	"strings"

	"farmfund-backend/internal/domain/identity"
	"farmfund-backend/pkg/token"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const actorKey = "actor"

// Auth verifies the bearer token and stores the caller on the context.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			tok, found := strings.CutPrefix(raw, "Bearer ")
			if !found || strings.TrimSpace(tok) == "" {
				return abort(c, http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := token.ParseToken(secret, strings.TrimSpace(tok))
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return abort(c, http.StatusUnauthorized, "invalid or expired token")
			}
			role := identity.Role(claims.Role)
			switch role {
			case identity.RoleFarmer, identity.RoleInvestor, identity.RoleAdmin:
			default:
				return abort(c, http.StatusForbidden, "unknown role")
			}
			SetActor(c, identity.Actor{UserID: claims.UserID, Name: claims.Name, Role: role})
			return next(c)
		}
	}
}

// RequireRole lets through callers holding any of roles.
func RequireRole(roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok {
				return abort(c, http.StatusUnauthorized, "authentication required")
			}
			for _, r := range roles {
				if a.Is(r) {
					return next(c)
				}
			}
			return abort(c, http.StatusForbidden, "access denied")
		}
	}
}

func SetActor(c echo.Context, a identity.Actor) { c.Set(actorKey, a) }

func ActorFrom(c echo.Context) (identity.Actor, bool) {
	a, ok := c.Get(actorKey).(identity.Actor)
	return a, ok
}
