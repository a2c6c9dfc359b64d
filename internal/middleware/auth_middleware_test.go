package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"obracheck/internal/middleware"
	"obracheck/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const secret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func newAuthRouter(seen *map[string]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ContextLogger(zap.NewNop()))
	r.GET("/me", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		ctx := c.Request.Context()
		*seen = map[string]string{
			"user_id":    c.GetString("user_id"),
			"role":       c.GetString("role"),
			"ctx_user":   contextutil.GetUserID(ctx),
			"ctx_token":  contextutil.GetAccessToken(ctx),
			"request_id": contextutil.GetRequestID(ctx),
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		var seen map[string]string
		r := newAuthRouter(&seen)
		token := signToken(t, jwt.MapClaims{"user_id": float64(42), "role": "SUPERVISOR", "exp": time.Now().Add(time.Hour).Unix()}, secret)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Request-ID", "req-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "42", seen["user_id"])
		assert.Equal(t, "SUPERVISOR", seen["role"])
		assert.Equal(t, "42", seen["ctx_user"])
		assert.Equal(t, token, seen["ctx_token"])
		assert.Equal(t, "req-1", seen["request_id"])
		assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	})

	t.Run("missing token", func(t *testing.T) {
		var seen map[string]string
		w := httptest.NewRecorder()
		newAuthRouter(&seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		var seen map[string]string
		token := signToken(t, jwt.MapClaims{"user_id": "7"}, "other")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newAuthRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("expired token", func(t *testing.T) {
		var seen map[string]string
		token := signToken(t, jwt.MapClaims{"user_id": "7", "exp": time.Now().Add(-time.Minute).Unix()}, secret)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newAuthRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("token without user", func(t *testing.T) {
		var seen map[string]string
		token := signToken(t, jwt.MapClaims{"role": "ADMIN"}, secret)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		newAuthRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/refresh", func(c *gin.Context) {
		c.Set("role", c.GetHeader("X-Role"))
		c.Next()
	}, middleware.RoleMiddleware("ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("X-Role", "ADMIN")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req2.Header.Set("X-Role", "WORKER")
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusForbidden, w2.Code)
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User"))
		c.Next()
	}, middleware.RateLimitByUser(rate.Limit(1), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1"))
	// buckets are per user
	assert.Equal(t, http.StatusOK, call("2"))
}
