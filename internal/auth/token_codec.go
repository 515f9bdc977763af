package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default envelope lifetimes for the two token kinds.
const (
	AccessTokenTTL = 24 * time.Hour
	ClientTokenTTL = 24 * time.Hour
)

// AccessSession is the decoded payload of a user-delegated access token.
type AccessSession struct {
	UserID    string
	ExpiresAt time.Time
}

// ClientSession is the decoded payload of a client-credentials token.
type ClientSession struct {
	ClientID  string
	ExpiresAt time.Time
}

type accessClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type clientClaims struct {
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}

// AccessTokenCodec signs and verifies user access tokens. Tokens are
// stateless: verifying one needs only the secret and the clock, no storage.
type AccessTokenCodec struct {
	secret []byte
}

func NewAccessTokenCodec(secret string) *AccessTokenCodec {
	return &AccessTokenCodec{secret: []byte(secret)}
}

// Encode produces a signed token carrying the subject user id, expiring
// after ttl.
func (c *AccessTokenCodec) Encode(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and validates the claim shape. Every
// failure mode comes back as ErrInvalidToken; callers must treat them
// uniformly as "no authorization".
func (c *AccessTokenCodec) Decode(tokenText string) (*AccessSession, error) {
	var claims accessClaims
	expiresAt, err := decodeClaims(tokenText, c.secret, &claims)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}
	return &AccessSession{UserID: claims.UserID, ExpiresAt: expiresAt}, nil
}

// ClientTokenCodec signs and verifies client-credentials tokens. It shares
// the signing secret with AccessTokenCodec but not the claim shape: decoding
// a token of one kind with the codec of the other fails closed.
type ClientTokenCodec struct {
	secret []byte
}

func NewClientTokenCodec(secret string) *ClientTokenCodec {
	return &ClientTokenCodec{secret: []byte(secret)}
}

// Encode produces a signed token carrying the client id, expiring after ttl.
func (c *ClientTokenCodec) Encode(clientID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := clientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign client token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, expiry and claim shape, uniformly failing with
// ErrInvalidToken.
func (c *ClientTokenCodec) Decode(tokenText string) (*ClientSession, error) {
	var claims clientClaims
	expiresAt, err := decodeClaims(tokenText, c.secret, &claims)
	if err != nil {
		return nil, err
	}
	if claims.ClientID == "" {
		return nil, fmt.Errorf("%w: missing clientId claim", ErrInvalidToken)
	}
	return &ClientSession{ClientID: claims.ClientID, ExpiresAt: expiresAt}, nil
}

// decodeClaims parses and verifies a token into claims. The signing method is
// pinned to HMAC to prevent algorithm confusion, and the exp claim is
// required: a token without one never verifies.
func decodeClaims(tokenText string, secret []byte, claims jwt.Claims) (time.Time, error) {
	token, err := jwt.ParseWithClaims(tokenText, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return time.Time{}, ErrInvalidToken
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", ErrInvalidToken)
	}
	return exp.Time, nil
}
