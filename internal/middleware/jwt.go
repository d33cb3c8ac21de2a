package middleware // middleware contains reusable HTTP middleware functions

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/VarunKarthikB-18/movie-watchlist/internal/utils"
)

// userIDKey is the context key under which the verified user id is stored.
const userIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the verified user id into the request context. The provided
// secret must match the one used when issuing tokens. The wrapped handler
// never runs for a missing or invalid token; handlers read the identity via
// UserID(c) and must never trust ids supplied in the request body or query
// for authorization decisions.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            uid, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid token"})
            }

            c.Set(userIDKey, uid)
            return next(c)
        }
    }
}

// UserID returns the verified user id stored by JWTAuth. An error means the
// middleware did not run for this route; protected handlers treat that as
// an unauthorized request.
func UserID(c echo.Context) (uint64, error) {
    if uid, ok := c.Get(userIDKey).(uint64); ok {
        return uid, nil
    }
    return 0, errors.New("no verified user in context")
}
