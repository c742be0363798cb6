package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rajput-vishal01/videovault/internal/utils"
)

// SessionCookie is the cookie the login surface sets.
const SessionCookie = "session"

var allowExact = map[string]bool{
	"/login":       true,
	"/register":    true,
	"/favicon.ico": true,
	"/healthz":     true,
	"/metrics":     true,
}

var allowPrefixes = []string{
	"/api/auth/",
	"/images/",
}

func allowed(path string) bool {
	if allowExact[path] {
		return true
	}
	for _, p := range allowPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AccessGate checks every request for a valid session token except the
// allow-list. API paths get a 401 JSON body, page paths a redirect to the
// login surface. The verified identity lands in c.Locals.
func AccessGate(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if allowed(path) {
			return c.Next()
		}

		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(SessionCookie)
		}
		if token != "" {
			if claims, err := tokens.Verify(token); err == nil {
				c.Locals("user_id", claims.UserID)
				c.Locals("email", claims.Email)
				return c.Next()
			}
		}

		if strings.HasPrefix(path, "/api/") {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Redirect("/login", fiber.StatusFound)
	}
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// UserID returns the authenticated user id set by the gate.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}
