package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userRepo "anoa.com/swetter/internal/modules/user/repository"
	"anoa.com/swetter/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret, subject string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "dave")

	m := NewAuthMiddleware(userRepo.NewUserRepository(db), "secret")
	router := gin.New()
	router.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	valid := sign(t, "secret", "1", time.Now().Add(time.Minute))
	require.Equal(t, uint(1), user.ID)

	cases := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"header", "Bearer " + valid, "", http.StatusOK},
		{"query fallback", "", valid, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + sign(t, "other", "1", time.Now().Add(time.Minute)), "", http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, "secret", "1", time.Now().Add(-time.Minute)), "", http.StatusUnauthorized},
		{"unknown user", "Bearer " + sign(t, "secret", "99", time.Now().Add(time.Minute)), "", http.StatusUnauthorized},
		{"bad subject", "Bearer " + sign(t, "secret", "dave", time.Now().Add(time.Minute)), "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			url := "/me"
			if tc.query != "" {
				url += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, "1", w.Body.String())
			}
		})
	}
}
