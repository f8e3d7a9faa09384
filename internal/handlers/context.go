package handlers

import "github.com/labstack/echo/v4"

// getUserIDFromContext returns the authenticated caller's ID, or 0 for
// anonymous requests.
func getUserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get("userID").(uint); ok {
		return id
	}
	return 0
}
