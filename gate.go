package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles is the access gate: it allows the call iff the already
// resolved claim's role is in the required set. A missing claim is rejected
// exactly like a role mismatch; the gate only ever sees "role or nothing".
func RequireRoles(cfg Config, roles ...UserRole) fiber.Handler {
	allowed := make(map[UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(cfg.GetContextKey()).(AuthClaims)
		if !ok {
			return RespondError(c, ErrForbidden, "Forbidden")
		}

		if _, ok := allowed[UserRole(claims.Role())]; !ok {
			return RespondError(c, ErrForbidden, "Forbidden")
		}

		return c.Next()
	}
}

// RequireMinimumRole gates on the role hierarchy instead of an explicit set.
func RequireMinimumRole(cfg Config, minRole UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(cfg.GetContextKey()).(AuthClaims)
		if !ok {
			return RespondError(c, ErrForbidden, "Forbidden")
		}

		if !claims.IsAtLeast(string(minRole)) {
			return RespondError(c, ErrForbidden, "Forbidden")
		}

		return c.Next()
	}
}
