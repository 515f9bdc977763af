package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vokabular/gin-vocab-api/internal/models"
)

// 48 random bytes, hex-encoded to 96 characters. Long enough that bcrypt
// would truncate it, which is why verification uses a constant-time compare
// of the stored value instead.
const secretEntropyBytes = 48

// CredentialStore issues and verifies client id/secret pairs for the
// client-credentials grant.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// IssueOrRotate creates credentials for clientID, replacing any existing
// secret via an upsert keyed on client_id. The previous secret stops working
// immediately.
func (s *CredentialStore) IssueOrRotate(clientID string) (*models.ClientCredentials, error) {
	secret, err := randomHex(secretEntropyBytes)
	if err != nil {
		return nil, err
	}

	creds := &models.ClientCredentials{ClientID: clientID, ClientSecret: secret}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"client_secret", "updated_at"}),
	}).Create(creds).Error
	if err != nil {
		return nil, fmt.Errorf("%w: upsert client credentials: %v", ErrStorage, err)
	}
	return creds, nil
}

// Verify reports whether the pair matches the stored credentials. An unknown
// client id is not an error, just false. The secret comparison is
// constant-time.
func (s *CredentialStore) Verify(clientID, clientSecret string) (bool, error) {
	var creds models.ClientCredentials
	if err := s.db.Where("client_id = ?", clientID).First(&creds).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: load client credentials: %v", ErrStorage, err)
	}
	return subtle.ConstantTimeCompare([]byte(creds.ClientSecret), []byte(clientSecret)) == 1, nil
}
