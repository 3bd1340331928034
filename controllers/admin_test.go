package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/login", AdminLogin)
	r.POST("/admin/logout", AdminLogout)
	return r
}

func TestAdminLogin_NotConfigured(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	rec := postJSON(adminRouter(), "/admin/login", `{"password": "whatever"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminLogin_PlainPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_TOKEN", "the-static-token")
	t.Setenv("JWT_SECRET", "")

	r := adminRouter()

	// Wrong password
	rec := postJSON(r, "/admin/login", `{"password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct password returns the dashboard token
	rec = postJSON(r, "/admin/login", `{"password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "the-static-token")
}

func TestAdminLogin_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
	// το hash υπερισχύει του απλού κωδικού
	t.Setenv("ADMIN_PASSWORD", "something-else")
	t.Setenv("JWT_SECRET", "")

	r := adminRouter()

	rec := postJSON(r, "/admin/login", `{"password": "something-else"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(r, "/admin/login", `{"password": "s3cret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLogin_MissingBody(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	rec := postJSON(adminRouter(), "/admin/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminLogin_SetsSessionCookie(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("JWT_SECRET", "test-jwt-secret")

	rec := postJSON(adminRouter(), "/admin/login", `{"password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "admin_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "admin_token cookie should be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}

func TestAdminLogin_NoCookieWithoutSecret(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("JWT_SECRET", "")

	rec := postJSON(adminRouter(), "/admin/login", `{"password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAdminLogout_ClearsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	adminRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_token", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
