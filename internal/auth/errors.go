package auth

import "errors"

// Sentinel errors for the token codecs and stores. Handlers map these to HTTP
// responses; the distinction between NotFound and Expired exists for logs and
// tests only and must never leak into a response body.
var (
	// ErrCodeNotFound means no authorization code row matched: the code was
	// already consumed or never existed. The two cases are indistinguishable
	// on purpose.
	ErrCodeNotFound = errors.New("authorization code not found")

	// ErrCodeExpired means the code row existed (and has now been deleted)
	// but its expiry had already passed.
	ErrCodeExpired = errors.New("authorization code expired")

	// ErrInvalidToken covers every token decode failure: bad signature,
	// malformed envelope, missing expiry, expired, wrong claim shape.
	ErrInvalidToken = errors.New("invalid token")

	// ErrStorage wraps persistence-layer failures.
	ErrStorage = errors.New("storage failure")
)
