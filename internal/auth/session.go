package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/125mkl54l7m/flaskblog/internal/model"
)

const (
	// CookieName is the session cookie set at login and registration.
	CookieName = "blog_session"
	// SessionExpiry is how long a login session stays valid.
	SessionExpiry = 24 * time.Hour

	contextKey = "session"
)

// SessionClaims carries the signed identity of the logged-in user.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionService signs and validates session cookies.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a session service with the given signing secret.
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret)}
}

// Secret exposes the signing key for the route-level cookie middleware.
func (s *SessionService) Secret() []byte {
	return s.secret
}

// IssueToken creates a signed session token for the user.
func (s *SessionService) IssueToken(user *model.User) (string, error) {
	claims := &SessionClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses a session token and returns its claims.
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// SetCookie attaches the session token to the response.
func (s *SessionService) SetCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(SessionExpiry),
	})
}

// ClearCookie expires the session cookie unconditionally.
func (s *SessionService) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// WithSession resolves the viewer from the session cookie when one is present.
// A missing or invalid cookie leaves the request anonymous; enforcement is the
// job of the admin route group.
func WithSession(s *SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				if claims, err := s.ValidateToken(cookie.Value); err == nil {
					c.Set(contextKey, claims)
				}
			}
			return next(c)
		}
	}
}

// CurrentSession returns the viewer's claims, or nil for anonymous requests.
func CurrentSession(c echo.Context) *SessionClaims {
	claims, _ := c.Get(contextKey).(*SessionClaims)
	return claims
}

// RequireAdmin rejects sessions that lack the administrator role. It runs
// after the cookie middleware has already rejected unauthenticated callers.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := CurrentSession(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}
