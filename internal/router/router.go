package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/VarunKarthikB-18/movie-watchlist/internal/handler"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the home message and a health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/", handler.Home)
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the registration and login endpoints. Neither
// requires an existing session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
}

// RegisterMovies registers the watchlist endpoints under /movies. The
// whole group sits behind the JWT gate: a request without a valid bearer
// token is rejected with 401 before any handler runs.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, jwtSecret string) {
    g := e.Group("/movies", middleware.JWTAuth(jwtSecret))
    g.GET("", m.List)
    g.POST("", m.Create)
    g.PUT("/:id", m.Update)
    g.DELETE("/:id", m.Delete)
}
