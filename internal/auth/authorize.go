package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SignInPath is the interactive sign-in entry point unauthenticated callers
// are redirected to, with the original authorize URL as the callback target.
const SignInPath = "/api/auth/signin"

// HandleAuthorize godoc
// @Summary OAuth2 authorization endpoint
// @Description Issues a one-time authorization code and redirects to the client's redirect_uri. Unauthenticated callers are redirected to the sign-in page first.
// @Tags OAuth2
// @Produce json
// @Param redirect_uri query string true "Absolute URL to redirect back to with the code"
// @Success 302 "Redirect to redirect_uri?code=... or to the sign-in page"
// @Failure 400 {object} map[string]string "Missing or malformed redirect_uri"
// @Router /api/oauth/authorize [get]
func (o *OAuthService) HandleAuthorize(c *gin.Context) {
	redirectURL, err := parseRedirectURI(c.Query("redirect_uri"))
	if err != nil {
		log.WithError(err).Debug("Rejecting authorize request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid redirect_uri"})
		return
	}

	session, err := o.sessions.SessionFromRequest(c)
	if err != nil {
		log.WithError(err).Error("Session resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}

	if session == nil {
		// Resume the full authorize flow after login.
		signInURL := SignInPath + "?callbackUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, signInURL)
		return
	}

	authCode, err := o.codes.Issue(session.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to issue authorization code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
		return
	}

	// There is no per-client redirect allow-list yet; log the target host so
	// issuance stays observable.
	log.WithField("redirect_host", redirectURL.Host).Info("Issued authorization code")

	query := redirectURL.Query()
	query.Set("code", authCode.Code)
	redirectURL.RawQuery = query.Encode()
	c.Redirect(http.StatusFound, redirectURL.String())
}

// parseRedirectURI accepts only well-formed absolute URLs.
func parseRedirectURI(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("redirect_uri query parameter is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse redirect_uri: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, errors.New("redirect_uri must be an absolute URL")
	}
	return parsed, nil
}
