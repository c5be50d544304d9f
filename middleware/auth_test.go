package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	t.Run("expired", func(t *testing.T) {
		old := NewJWTIssuer("secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := old.Issue("admin")
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTIssuer("other", time.Hour).Issue("admin")
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Username: "admin", Role: RoleAdmin}).
			SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		assert.Error(t, err)
	})
}

func adminRouter(issuer *JWTIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminRequired(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, GetUsername(c))
	})
	return r
}

func TestAdminRequired(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	r := adminRouter(issuer)
	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", "", http.StatusUnauthorized},
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"query param", "", "?token=" + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestAdminRequired_WrongRole(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "courier",
		Role:     "driver",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	adminRouter(issuer).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
