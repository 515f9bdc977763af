package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type codeExchangeRequest struct {
	Code string `json:"code"`
}

type clientTokenRequest struct {
	ClientID     string `json:"clientId" binding:"required"`
	ClientSecret string `json:"clientSecret" binding:"required"`
}

// HandleTokenExchange godoc
// @Summary Exchange an authorization code for an access token
// @Description Redeems a one-time authorization code. A code can be redeemed at most once; replays and expired codes fail identically.
// @Tags OAuth2
// @Accept json
// @Produce json
// @Param request body auth.codeExchangeRequest true "Authorization code"
// @Success 200 {object} map[string]string "access_token and token_type"
// @Failure 400 {object} map[string]string
// @Router /api/oauth/token [post]
func (o *OAuthService) HandleTokenExchange(c *gin.Context) {
	var req codeExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code is required"})
		return
	}

	authCode, err := o.codes.Redeem(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeNotFound), errors.Is(err, ErrCodeExpired):
			// Consumed, expired and never-issued codes must be
			// indistinguishable to the caller.
			log.WithError(err).Debug("Authorization code rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired authorization code"})
		default:
			log.WithError(err).Error("Authorization code redemption failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		}
		return
	}

	accessToken, err := o.access.Encode(authCode.UserID, AccessTokenTTL)
	if err != nil {
		log.WithError(err).Error("Access token encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

// HandleClientCredentialsGrant godoc
// @Summary Client-credentials token grant
// @Description Exchanges a client id/secret pair for a short-lived token. No user interaction involved.
// @Tags OAuth2
// @Accept json
// @Produce json
// @Param request body auth.clientTokenRequest true "Client credentials"
// @Success 200 {object} map[string]string "token"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/token [post]
func (o *OAuthService) HandleClientCredentialsGrant(c *gin.Context) {
	var req clientTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId and clientSecret are required"})
		return
	}

	ok, err := o.creds.Verify(req.ClientID, req.ClientSecret)
	if err != nil {
		log.WithError(err).Error("Client credential verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid client credentials"})
		return
	}

	token, err := o.client.Encode(req.ClientID, ClientTokenTTL)
	if err != nil {
		log.WithError(err).Error("Client token encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HandleIssueClientCredentials godoc
// @Summary Issue or rotate client credentials
// @Description Creates a client id/secret pair for the signed-in user, rotating (and invalidating) any previous secret.
// @Tags OAuth2
// @Produce json
// @Success 200 {object} models.ClientCredentials
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/client-credentials [post]
func (o *OAuthService) HandleIssueClientCredentials(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	creds, err := o.creds.IssueOrRotate(userID)
	if err != nil {
		log.WithError(err).Error("Client credential rotation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}

	c.JSON(http.StatusOK, creds)
}
