package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newAuthRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", AuthMiddleware(testSecret))
	group.GET("/me", func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	admin := group.Group("/admin", RequireRole(role))
	admin.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter("admin")

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "/me", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1"}, []byte("other-secret"))
		w := doRequest(r, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}, testSecret)
		w := doRequest(r, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token without user id", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"role": "customer"}, testSecret)
		w := doRequest(r, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "customer"}, testSecret)
		w := doRequest(r, "/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	})
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter("admin")

	t.Run("customer blocked from admin routes", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "customer"}, testSecret)
		w := doRequest(r, "/admin/ping", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "admin"}, testSecret)
		w := doRequest(r, "/admin/ping", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
