package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vokabular/gin-vocab-api/internal/auth"
	"github.com/vokabular/gin-vocab-api/internal/models"
	"github.com/vokabular/gin-vocab-api/internal/services"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	controller := NewAuthController(
		services.NewUserService(db),
		auth.NewCookieSessionProvider(testSessionSecret),
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/register", controller.Register)
	router.POST("/api/auth/login", controller.Login)
	router.GET("/api/auth/signin", controller.SignIn)
	router.POST("/api/auth/logout", controller.Logout)
	return router, db
}

func postAuthJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postAuthJSON(t, router, "/api/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret-password",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postAuthJSON(t, router, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Login sets the session cookie.
	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	router, _ := setupAuthRouter(t)

	body := gin.H{"email": "alice@example.com", "password": "secret-password"}
	require.Equal(t, http.StatusCreated, postAuthJSON(t, router, "/api/auth/register", body).Code)
	assert.Equal(t, http.StatusConflict, postAuthJSON(t, router, "/api/auth/register", body).Code)
}

func TestRegisterValidatesInput(t *testing.T) {
	router, _ := setupAuthRouter(t)

	for name, body := range map[string]gin.H{
		"missing email":  {"password": "secret-password"},
		"invalid email":  {"email": "not-an-email", "password": "secret-password"},
		"short password": {"email": "alice@example.com", "password": "abc"},
	} {
		w := postAuthJSON(t, router, "/api/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router, _ := setupAuthRouter(t)

	require.Equal(t, http.StatusCreated, postAuthJSON(t, router, "/api/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret-password",
	}).Code)

	w := postAuthJSON(t, router, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown account fails the same way.
	w = postAuthJSON(t, router, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginEchoesCallbackURL(t *testing.T) {
	router, _ := setupAuthRouter(t)

	require.Equal(t, http.StatusCreated, postAuthJSON(t, router, "/api/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "secret-password",
	}).Code)

	callback := "/api/oauth/authorize?redirect_uri=https%3A%2F%2Fclient.example%2Fcb"
	w := postAuthJSON(t, router, "/api/auth/login", gin.H{
		"email":       "alice@example.com",
		"password":    "secret-password",
		"callbackUrl": callback,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, callback, response["redirect"])
}

func TestSignInEchoesCallbackURL(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req := httptest.NewRequest("GET", "/api/auth/signin?callbackUrl=%2Fapi%2Foauth%2Fauthorize", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/oauth/authorize")
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postAuthJSON(t, router, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cleared *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			cleared = cookie
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
