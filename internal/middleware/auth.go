package middleware

import (
	"context"
	"strings"

	"ripple/internal/auth"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired returns the authentication guard. It extracts the bearer token
// from the Authorization header, verifies it via the token service, and either
// attaches the caller's account ID to the request (Locals + UserContext) or
// rejects with 401 before any handler logic runs.
func AuthRequired(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Authorization required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Invalid authorization header format"))
		}

		accountID, err := tokens.Verify(parts[1])
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Invalid or expired token"))
		}

		c.Locals("userID", accountID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), UserIDKey, accountID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
