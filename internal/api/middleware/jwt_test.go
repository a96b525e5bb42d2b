package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fundbridge/intake-go/internal/config"
	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.JwtSecret = "test-secret"
	config.Issuer = "intake-go-test"
	Init()
}

func testUser() user.User {
	return user.User{UID: 7, Username: "lee", Role: user.RoleAnalyst, CanReview: true}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testUser(), time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "lee", claims.Username)
	assert.Equal(t, "analyst", claims.Role)
	assert.True(t, claims.CanReview)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func authProbe() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(), func(c *gin.Context) {
		claims, err := utils.GetClaims(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := authProbe()
	token, err := GenerateToken(testUser(), time.Hour)
	require.NoError(t, err)

	t.Run("bearer header accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "lee")
	})

	t.Run("cookie accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing credentials rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Basic "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestReviewerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	probe := func(role string, canReview bool) int {
		r := gin.New()
		r.GET("/probe", JWTAuthMiddleware(), Reviewer(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		token, err := GenerateToken(user.User{UID: 1, Username: "u", Role: user.Role(role), CanReview: canReview}, time.Hour)
		if err != nil {
			return 0
		}
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, probe("admin", true))
	assert.Equal(t, http.StatusOK, probe("analyst", true))
	assert.Equal(t, http.StatusForbidden, probe("analyst", false))
	assert.Equal(t, http.StatusForbidden, probe("entrepreneur", false))
}
