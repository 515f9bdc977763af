package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vokabular/gin-vocab-api/internal/auth"
	"github.com/vokabular/gin-vocab-api/internal/models"
	"github.com/vokabular/gin-vocab-api/internal/services"
)

// Context keys populated by Authenticate.
const (
	ContextUserKey     = "currentUser"
	ContextUserIDKey   = "userID"
	ContextRoleKey     = "userRole"
	ContextAuthTypeKey = "authType"
)

// Authenticate resolves the caller's identity: interactive session first,
// bearer token as fallback, matching how browsers and API clients reach the
// same routes. It never aborts; anonymous is a valid outcome for public
// operations, and RequireUser gates the ones that need an identity.
func Authenticate(sessions auth.SessionProvider, codec *auth.AccessTokenCodec, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveSessionUser(c, sessions, users); user != nil {
			setIdentity(c, user, "session")
			c.Next()
			return
		}

		if user := resolveBearerUser(c, codec, users); user != nil {
			setIdentity(c, user, "bearer")
		}
		c.Next()
	}
}

func resolveSessionUser(c *gin.Context, sessions auth.SessionProvider, users services.UserService) *models.User {
	session, err := sessions.SessionFromRequest(c)
	if err != nil || session == nil {
		return nil
	}

	user, err := users.GetUserByID(session.UserID)
	if err != nil {
		log.WithField("user_id", session.UserID).Debug("Session user not found")
		return nil
	}
	return user
}

// resolveBearerUser extracts and verifies "Authorization: Bearer <jwt>".
// Any failure (absent header, bad scheme, decode failure, unknown subject)
// resolves to anonymous without distinguishing the cause.
func resolveBearerUser(c *gin.Context, codec *auth.AccessTokenCodec, users services.UserService) *models.User {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	tokenText := strings.TrimPrefix(header, "Bearer ")
	if tokenText == "" {
		return nil
	}

	session, err := codec.Decode(tokenText)
	if err != nil {
		log.WithError(err).Debug("Rejecting bearer token")
		return nil
	}

	user, err := users.GetUserByID(session.UserID)
	if err != nil {
		log.WithField("user_id", session.UserID).Debug("Bearer subject not found")
		return nil
	}
	return user
}

func setIdentity(c *gin.Context, user *models.User, authType string) {
	c.Set(ContextUserKey, user)
	c.Set(ContextUserIDKey, user.ID)
	c.Set(ContextRoleKey, user.Role)
	c.Set(ContextAuthTypeKey, authType)
}

// CurrentUser returns the identity Authenticate resolved, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RequireUser aborts with 401 unless an identity was resolved.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
