package middleware

import (
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// Identity resolves the caller from headers set by the auth gateway.
// Requests without a user id continue anonymously.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID != "" {
			c.Locals(identityKey, &auth.Identity{
				UserID: userID,
				Email:  strings.TrimSpace(c.Get(HeaderUserEmail)),
				Role:   auth.ParseRole(c.Get(HeaderUserRole)),
			})
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity resolved for this request, or nil.
func CurrentIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(identityKey).(*auth.Identity)
	return id
}
