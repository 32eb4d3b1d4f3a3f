package handlers

import (
	"fmt"
	"strings"

	"expense-tracker/internal/authz"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys populated by the auth middleware
const (
	UserIDContextKey    = "user_id"
	UserEmailContextKey = "user_email"
	UserRoleContextKey  = "user_role"
	IsAdminContextKey   = "is_admin"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext extracts the authenticated user ID.
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.UUID{}, ErrUnauthorized
	}
	return userID, nil
}

// getPrincipalFromContext builds the principal passed to service calls
func getPrincipalFromContext(c echo.Context) (authz.Principal, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return authz.Principal{}, err
	}
	role, _ := c.Get(UserRoleContextKey).(string)
	return authz.Principal{UserID: userID, Role: role}, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// GetClientIP prefers proxy headers over the socket address
func GetClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
