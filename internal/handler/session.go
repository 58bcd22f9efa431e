package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"elearn/internal/auth"
)

// SessionFromContext derives the request session from the validated JWT the
// echo-jwt middleware stored in the context. Requests outside the secured
// group come back anonymous.
func SessionFromContext(c echo.Context) auth.Session {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return auth.Anonymous()
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return auth.Anonymous()
	}
	return claims.Session()
}
