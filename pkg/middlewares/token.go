package middlewares

import (
	"context"

	t_token "alumni_network_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	// QueryToken token in query name
	QueryToken = "auth"

	// CookieToken token in cookie name
	CookieToken = "auth_token"

	// TokenUserID get user id from token, set c.locals name
	TokenUserID = "UserID"
	// TokenRole get role from token, set c.locals name
	TokenRole = "role"
)

// SessionChecker reports whether the session behind a token is still alive.
type SessionChecker interface {
	Alive(ctx context.Context, userID int64, token string) bool
}

// JWTMiddleware validates the JWT carried in the auth query parameter or the
// auth_token cookie and stores the verified identity in c.Locals. When a
// SessionChecker is supplied, tokens without a live server-side session are
// rejected as well.
func JWTMiddleware(sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Query(QueryToken)

		if tokenStr == "" {
			tokenStr = c.Cookies(CookieToken)
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		claims, err := t_token.ParseJWTFunc(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		if sessions != nil && !sessions.Alive(c.Context(), claims.UserID, tokenStr) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired",
			})
		}

		c.Locals(TokenUserID, claims.UserID)
		c.Locals(TokenRole, claims.Role)

		return c.Next()
	}
}
