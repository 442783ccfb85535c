package middleware

import (
	"patient-followup/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RequirePermissions guards a route with an explicit permission list. The
// caller needs at least one of them.
func RequirePermissions(permissions ...string) fiber.Handler {
	return IsAuthenticated(permissions)
}

// RequireAnyPermission guards a route with authentication only: any valid
// token passes regardless of its permission claims.
func RequireAnyPermission(permissions ...string) fiber.Handler {
	allPerms := append(permissions, constants.PermAny)
	return IsAuthenticated(allPerms)
}

// UsernameFromContext returns the username claim IsAuthenticated stored on
// the request, or "" when the route is unguarded.
func UsernameFromContext(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

func extractUserPermissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	permissionSet := make(map[string]bool)

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return permissionSet
	}

	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}

	return permissionSet
}
