package auth

import "github.com/labstack/echo/v4"

// ContextKey is the echo context key under which the bearer middleware stores
// the validated claims.
const ContextKey = "user"

// ClaimsFrom extracts the authenticated user's claims from the request context.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok
}
