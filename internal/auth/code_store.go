package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vokabular/gin-vocab-api/internal/models"
)

const (
	// DefaultCodeTTL keeps codes short-lived: the client exchanges one within
	// seconds of the redirect.
	DefaultCodeTTL = 2 * time.Minute

	// 48 random bytes, hex-encoded to 96 characters.
	codeEntropyBytes = 48
)

// CodeStore issues and redeems one-time authorization codes.
type CodeStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewCodeStore(db *gorm.DB) *CodeStore {
	return &CodeStore{db: db, ttl: DefaultCodeTTL}
}

// NewCodeStoreWithTTL overrides the code lifetime. Used by tests to exercise
// the expiry branches without sleeping.
func NewCodeStoreWithTTL(db *gorm.DB, ttl time.Duration) *CodeStore {
	return &CodeStore{db: db, ttl: ttl}
}

// Issue mints a high-entropy code bound to userID and persists it.
func (s *CodeStore) Issue(userID string) (*models.AuthorizationCode, error) {
	code, err := randomHex(codeEntropyBytes)
	if err != nil {
		return nil, err
	}

	authCode := &models.AuthorizationCode{
		Code:      code,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(authCode).Error; err != nil {
		return nil, fmt.Errorf("%w: insert authorization code: %v", ErrStorage, err)
	}
	return authCode, nil
}

// Redeem deletes the row matching code and returns it. The delete happens
// before any validity check: concurrent redeemers race on the atomic delete,
// only the one that removed the row proceeds, and the losers observe
// ErrCodeNotFound. A consumed code and a code that never existed are
// indistinguishable.
func (s *CodeStore) Redeem(code string) (*models.AuthorizationCode, error) {
	var redeemed models.AuthorizationCode
	res := s.db.Clauses(clause.Returning{}).Where("code = ?", code).Delete(&redeemed)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: delete authorization code: %v", ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrCodeNotFound
	}
	if !redeemed.ExpiresAt.After(time.Now()) {
		return nil, ErrCodeExpired
	}
	return &redeemed, nil
}

// randomHex returns n random bytes as a hex string.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
