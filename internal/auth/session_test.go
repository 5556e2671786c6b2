package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/125mkl54l7m/flaskblog/internal/model"
)

func TestSessionService_Roundtrip(t *testing.T) {
	svc := NewSessionService("test-secret")

	token, err := svc.IssueToken(&model.User{ID: 7, Name: "A", Role: model.RoleAdmin})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "A", claims.Name)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionService_RejectsForeignSecret(t *testing.T) {
	token, err := NewSessionService("one-secret").IssueToken(&model.User{ID: 1, Role: model.RoleAdmin})
	assert.NoError(t, err)

	_, err = NewSessionService("another-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestWithSession(t *testing.T) {
	svc := NewSessionService("test-secret")
	e := echo.New()

	handler := WithSession(svc)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("valid cookie resolves the viewer", func(t *testing.T) {
		token, _ := svc.IssueToken(&model.User{ID: 2, Name: "B", Role: model.RoleUser})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		claims := CurrentSession(c)
		assert.NotNil(t, claims)
		assert.Equal(t, uint(2), claims.UserID)
	})

	t.Run("no cookie stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		assert.Nil(t, CurrentSession(c))
	})

	t.Run("tampered cookie stays anonymous", func(t *testing.T) {
		token, _ := NewSessionService("another-secret").IssueToken(&model.User{ID: 2, Role: model.RoleAdmin})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		assert.Nil(t, CurrentSession(c))
	})
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	tests := []struct {
		name         string
		claims       *SessionClaims
		expectedCode int
	}{
		{"anonymous is forbidden", nil, http.StatusForbidden},
		{"regular user is forbidden", &SessionClaims{UserID: 2, Role: model.RoleUser}, http.StatusForbidden},
		{"admin passes through", &SessionClaims{UserID: 1, Role: model.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.claims != nil {
				c.Set(contextKey, tt.claims)
			}

			err := RequireAdmin(next)(c)
			if tt.expectedCode == http.StatusOK {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				httpErr, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedCode, httpErr.Code)
			}
		})
	}
}
