// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the HTTP layer.
package middleware

import (
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/token"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenCookie is the cookie browser clients carry the access token in.
const AccessTokenCookie = "accessToken"

// bearerToken pulls the access token from the Authorization header, falling
// back to the accessToken cookie for browser clients.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(AccessTokenCookie)
}

// RequireAuth enforces a valid access token and stores the subject user id
// in c.Locals("userID").
func RequireAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
		}

		userID, err := tokens.VerifyAccess(raw)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid token is present but lets
// anonymous requests through. Feed handlers use it to compute isLiked.
func OptionalAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := bearerToken(c); raw != "" {
			if userID, err := tokens.VerifyAccess(raw); err == nil {
				c.Locals("userID", userID)
			}
		}
		return c.Next()
	}
}
