package models

import (
	"time"
)

// AuthorizationCode is a one-time credential minted by the authorize endpoint
// and exchanged for an access token. Redemption deletes the row, so a code
// can be exchanged successfully at most once, even under concurrent attempts.
type AuthorizationCode struct {
	Code      string    `gorm:"primaryKey"`
	UserID    string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AuthorizationCode) TableName() string {
	return "authorization_codes"
}
