package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/campus-auth/internal/domain"
	apperrors "github.com/campuskit/campus-auth/pkg/util"
)

// RequireRoles ensures the caller's role is in the route's allowed set.
// An empty set admits any authenticated caller.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
