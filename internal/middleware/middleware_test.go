package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vokabular/gin-vocab-api/internal/auth"
	"github.com/vokabular/gin-vocab-api/internal/models"
	"github.com/vokabular/gin-vocab-api/internal/services"
)

const (
	testTokenSecret   = "test-jwt-secret-key-32-characters"
	testSessionSecret = "test-session-secret-32-characters"
)

type authTestEnv struct {
	db       *gorm.DB
	users    services.UserService
	codec    *auth.AccessTokenCodec
	sessions *auth.CookieSessionProvider
	router   *gin.Engine
}

func setupAuthTestEnv(t *testing.T) *authTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	env := &authTestEnv{
		db:       db,
		users:    services.NewUserService(db),
		codec:    auth.NewAccessTokenCodec(testTokenSecret),
		sessions: auth.NewCookieSessionProvider(testSessionSecret),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(env.sessions, env.codec, env.users))

	// A public route reporting who the caller is, and a protected one.
	router.GET("/whoami", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"userId":   user.ID,
			"authType": c.GetString(ContextAuthTypeKey),
		})
	})
	protected := router.Group("")
	protected.Use(RequireUser())
	protected.GET("/private", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	env.router = router
	return env
}

func (e *authTestEnv) createUser(t *testing.T, id string) *models.User {
	user := &models.User{ID: id, Email: id + "@example.com", Name: "Test User"}
	require.NoError(t, user.SetPassword("test-password"))
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *authTestEnv) sessionCookie(t *testing.T, userID string) *http.Cookie {
	router := gin.New()
	router.POST("/login", func(c *gin.Context) {
		require.NoError(t, e.sessions.IssueCookie(c, userID))
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestAuthenticateAnonymous(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestAuthenticateWithSessionCookie(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "user-1")

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(env.sessionCookie(t, user.ID))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
	assert.Contains(t, w.Body.String(), `"authType":"session"`)
}

func TestAuthenticateWithBearerToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "user-1")

	token, err := env.codec.Encode(user.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
	assert.Contains(t, w.Body.String(), `"authType":"bearer"`)
}

func TestSessionWinsOverBearer(t *testing.T) {
	env := setupAuthTestEnv(t)
	sessionUser := env.createUser(t, "session-user")
	bearerUser := env.createUser(t, "bearer-user")

	token, err := env.codec.Encode(bearerUser.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(env.sessionCookie(t, sessionUser.ID))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), sessionUser.ID)
	assert.Contains(t, w.Body.String(), `"authType":"session"`)
}

func TestAuthenticateRejectsBadBearerToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "user-1")

	for _, header := range []string{
		"Bearer not-a-jwt",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
	} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "anonymous")
	}
}

func TestAuthenticateIgnoresTokenForDeletedUser(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "user-1")

	token, err := env.codec.Encode(user.ID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, env.db.Delete(&models.User{}, "id = ?", user.ID).Error)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	// Token still verifies but its subject is gone: anonymous.
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestRequireUserBlocksAnonymous(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest("GET", "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestRequireUserAdmitsBearerIdentity(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "user-1")

	token, err := env.codec.Encode(user.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
