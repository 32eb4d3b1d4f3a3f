package middleware

import (
	stderrors "errors"
	"log/slog"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const authenticationEvent = "authentication_event"

// RequireAuth verifies the bearer token issued by the identity provider and
// resolves the caller's profile. The role placed in the context always
// comes from the profile store, never from the token.
func RequireAuth(
	tokenService services.TokenServiceInterface,
	profileService services.ProfileServiceInterface,
	metrics services.MetricsRecorderInterface,
) echo.MiddlewareFunc {
	record := func(event string) {
		if metrics != nil {
			metrics.IncrementCounter(authenticationEvent, map[string]string{"event_type": event})
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				record("missing_token")
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				record("invalid_header")
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					record("expired_token")
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				record("invalid_token")
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			principal, err := profileService.ResolvePrincipal(c.Request().Context(), claims)
			if err != nil {
				switch {
				case stderrors.Is(err, services.ErrInvalidSubject):
					record("invalid_token")
					return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid user ID in token"))
				case stderrors.Is(err, services.ErrProfileNotFound):
					record("unknown_profile")
					return handlers.SendError(c, errors.AuthUnauthenticated, errors.WithDetails("No profile exists for this account"))
				default:
					slog.ErrorContext(c.Request().Context(), "failed to resolve principal",
						"trace_id", GetTraceID(c),
						"error", err,
					)
					return handlers.SendSystemError(c, err)
				}
			}

			record("success")

			c.Set(handlers.UserIDContextKey, principal.UserID)
			c.Set(handlers.UserEmailContextKey, claims.Email)
			c.Set(handlers.UserRoleContextKey, principal.Role)
			c.Set(handlers.IsAdminContextKey, principal.IsAdmin())

			return next(c)
		}
	}
}
