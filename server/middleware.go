package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/logichain/backend/auth"
)

const claimsKey = "claims"

// Authenticate extracts and validates a Bearer token, storing claims in
// the request locals. Requests without a usable token continue with no
// identity; the policy check decides whether that matters.
func Authenticate(tokens auth.TokenService, logger auth.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Next()
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			// invalid tokens are treated as absent, never as forbidden
			if logger != nil {
				logger.Debug("token rejected", "path", c.Path(), "error", err)
			}
			return c.Next()
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireOperation gates a route on the policy table
func RequireOperation(op auth.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Authorize(ClaimsFromCtx(c), op); err != nil {
			return RespondError(c, err)
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the validated claims, or nil when the request
// carried no valid token.
func ClaimsFromCtx(c *fiber.Ctx) auth.AuthClaims {
	claims, ok := c.Locals(claimsKey).(auth.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	const scheme = "Bearer "
	if !strings.HasPrefix(header, scheme) {
		return ""
	}

	return strings.TrimSpace(header[len(scheme):])
}
