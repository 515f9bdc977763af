package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vokabular/gin-vocab-api/internal/auth"
	"github.com/vokabular/gin-vocab-api/internal/models"
	"github.com/vokabular/gin-vocab-api/internal/services"
)

// AuthController handles interactive account endpoints: registration, login
// (which establishes the session cookie the authorize flow depends on) and
// logout.
type AuthController struct {
	userService services.UserService
	sessions    *auth.CookieSessionProvider
}

func NewAuthController(userService services.UserService, sessions *auth.CookieSessionProvider) *AuthController {
	return &AuthController{
		userService: userService,
		sessions:    sessions,
	}
}

// Register godoc
// @Summary Register a user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,name=string} true "Account details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password_hashing_failed"})
		return
	}

	if err := ac.userService.CreateUser(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user_already_exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user_created"})
}

// Login godoc
// @Summary Sign in
// @Description Verifies the password and sets the session cookie. When callbackUrl is given (the authorize flow passes one), the response echoes it so the client can resume the interrupted flow.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,callbackUrl=string} true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		CallbackURL string `json:"callbackUrl"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.userService.GetUserByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := ac.sessions.IssueCookie(c, user.ID); err != nil {
		log.WithError(err).Error("Failed to issue session cookie")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_creation_failed"})
		return
	}

	response := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	}
	if req.CallbackURL != "" {
		response["redirect"] = req.CallbackURL
	}
	c.JSON(http.StatusOK, response)
}

// SignIn godoc
// @Summary Sign-in entry point
// @Description Target of the authorize flow's redirect for unauthenticated callers. Echoes the callbackUrl the caller should return to after logging in.
// @Tags Auth
// @Produce json
// @Param callbackUrl query string false "URL to resume after login"
// @Success 200 {object} map[string]string
// @Router /api/auth/signin [get]
func (ac *AuthController) SignIn(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "sign in via POST /api/auth/login",
		"callbackUrl": c.Query("callbackUrl"),
	})
}

// Logout godoc
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "signed_out"})
}
