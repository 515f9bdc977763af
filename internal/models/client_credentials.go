package models

import (
	"time"
)

// ClientCredentials is the long-lived id/secret pair used by the
// client-credentials grant. The client id doubles as the issuing user's id;
// reissuing rotates the secret in place, so at most one secret is active per
// client at any time.
type ClientCredentials struct {
	ClientID     string    `gorm:"primaryKey" json:"clientId"`
	ClientSecret string    `gorm:"not null" json:"clientSecret"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (ClientCredentials) TableName() string {
	return "client_credentials"
}
