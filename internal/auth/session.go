package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "vocab_session"

// DefaultSessionTTL is the interactive session lifetime.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Session is an interactive browser session resolved from a request.
type Session struct {
	UserID  string
	Expires time.Time
}

// SessionProvider resolves the interactive session attached to a request, if
// any. A nil session with a nil error means the caller is simply not signed
// in; an unreadable or invalid session token is reported the same way.
type SessionProvider interface {
	SessionFromRequest(c *gin.Context) (*Session, error)
}

type sessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// CookieSessionProvider implements SessionProvider with a signed-JWT session
// cookie, the scheme hosted login providers use. It signs with its own
// secret, distinct from the API token secret, so session cookies and bearer
// tokens can never be swapped for one another.
type CookieSessionProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieSessionProvider(secret string) *CookieSessionProvider {
	return &CookieSessionProvider{secret: []byte(secret), ttl: DefaultSessionTTL}
}

// SessionFromRequest reads and verifies the session cookie. Missing cookie,
// bad signature and expired token all resolve to (nil, nil): not signed in.
func (p *CookieSessionProvider) SessionFromRequest(c *gin.Context) (*Session, error) {
	tokenText, err := c.Cookie(SessionCookieName)
	if err != nil || tokenText == "" {
		return nil, nil
	}

	var claims sessionClaims
	expiresAt, err := decodeClaims(tokenText, p.secret, &claims)
	if err != nil || claims.UserID == "" {
		return nil, nil
	}
	return &Session{UserID: claims.UserID, Expires: expiresAt}, nil
}

// IssueCookie signs a fresh session token for userID and sets it on the
// response.
func (p *CookieSessionProvider) IssueCookie(c *gin.Context, userID string) error {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, signed, int(p.ttl.Seconds()), "/", "", false, true)
	return nil
}

// ClearCookie removes the session cookie.
func (p *CookieSessionProvider) ClearCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
