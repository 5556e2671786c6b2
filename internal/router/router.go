package router

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/125mkl54l7m/flaskblog/internal/auth"
	"github.com/125mkl54l7m/flaskblog/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions *auth.SessionService,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(auth.WithSession(sessions))

	e.Validator = NewFormValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(e)

	// Public routes
	e.GET("/", postHandler.Index)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/post/:id", postHandler.Show)
	e.POST("/post/:id", postHandler.Comment)
	e.GET("/about", pageHandler.About)
	e.GET("/contact", pageHandler.Contact)

	// Admin routes: a missing or invalid session cookie is rejected outright,
	// then the role check runs against the resolved session.
	admin := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  sessions.Secret(),
		TokenLookup: "cookie:" + auth.CookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		},
	}), auth.RequireAdmin)

	admin.GET("/new-post", postHandler.NewPostPage)
	admin.POST("/new-post", postHandler.CreatePost)
	admin.GET("/edit-post/:id", postHandler.EditPostPage)
	admin.POST("/edit-post/:id", postHandler.EditPost)
	admin.GET("/delete/:id", postHandler.DeletePostPage)
	admin.POST("/delete/:id", postHandler.DeletePost)
}

// FormValidator wraps validator for Echo.
type FormValidator struct {
	validator *validator.Validate
}

// NewFormValidator builds the validator with the password complexity rule
// used by the registration form.
func NewFormValidator() *FormValidator {
	v := validator.New()
	v.RegisterValidation("password", passwordRule)
	return &FormValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *FormValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// passwordRule requires at least one letter and one digit.
func passwordRule(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// newHTTPErrorHandler renders errors through the error template instead of
// Echo's JSON default, falling back when rendering itself fails.
func newHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := "internal server error"
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}
		if rerr := c.Render(code, "error.html", echo.Map{
			"Code":    code,
			"Message": message,
			"Viewer":  auth.CurrentSession(c),
		}); rerr != nil {
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
}
