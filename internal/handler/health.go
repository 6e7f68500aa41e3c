package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers load balancer probes.  It never touches the database.
func Health(env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respond(c, http.StatusOK, "Server is healthy", echo.Map{"env": env})
	}
}
