package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/125mkl54l7m/flaskblog/internal/auth"
)

// PageHandler serves the static informational pages.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", echo.Map{
		"Viewer": auth.CurrentSession(c),
	})
}

func (h *PageHandler) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", echo.Map{
		"Viewer": auth.CurrentSession(c),
	})
}
