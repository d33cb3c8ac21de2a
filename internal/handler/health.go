package handler // handler contains the HTTP handlers for this service

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Home is the unauthenticated root endpoint. Clients (and humans) use it
// to confirm the backend is reachable.
func Home(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"message": "Movie Watchlist backend is running!"})
}

// Health is a plain health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
