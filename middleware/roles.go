package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that allows the request only when the
// authenticated user carries at least one of the given roles. Must run
// after JWTMiddleware.
func RequireRoles(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").([]string)
		if !ok || len(roles) == 0 {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		for _, have := range roles {
			for _, want := range required {
				if have == want {
					return c.Next()
				}
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
