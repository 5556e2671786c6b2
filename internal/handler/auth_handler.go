package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/125mkl54l7m/flaskblog/internal/auth"
	blogerrors "github.com/125mkl54l7m/flaskblog/internal/errors"
	"github.com/125mkl54l7m/flaskblog/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionService) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterForm is the account registration input schema.
type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8,password"`
}

// LoginForm is the login input schema.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterPage renders the empty registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{
		"Viewer": auth.CurrentSession(c),
		"Form":   RegisterForm{},
		"Errors": map[string]string(nil),
	})
}

// Register creates the account, starts a session and redirects to the listing.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{
			"Viewer": auth.CurrentSession(c),
			"Form":   form,
			"Errors": formErrors(err),
		})
	}

	user, err := h.authService.Register(c.Request().Context(), form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, blogerrors.ErrEmailTaken) {
			return c.Render(http.StatusConflict, "register.html", echo.Map{
				"Viewer":  auth.CurrentSession(c),
				"Form":    form,
				"Errors":  map[string]string(nil),
				"Message": "You already signed up with that email. Log in instead.",
			})
		}
		return err
	}

	token, err := h.sessions.IssueToken(user)
	if err != nil {
		return err
	}
	h.sessions.SetCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// LoginPage renders the empty login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Viewer": auth.CurrentSession(c),
		"Form":   LoginForm{},
		"Errors": map[string]string(nil),
	})
}

// Login authenticates and starts a session. Unknown email and wrong password
// share one generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", echo.Map{
			"Viewer": auth.CurrentSession(c),
			"Form":   form,
			"Errors": formErrors(err),
		})
	}

	user, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", echo.Map{
				"Viewer":  auth.CurrentSession(c),
				"Form":    form,
				"Errors":  map[string]string(nil),
				"Message": "Error: check your login details and try again.",
			})
		}
		return err
	}

	token, err := h.sessions.IssueToken(user)
	if err != nil {
		return err
	}
	h.sessions.SetCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie unconditionally.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.ClearCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
