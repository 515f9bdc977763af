package models

import (
	"time"
)

// Word is a single dictionary entry. A German/English pair exists at most
// once; re-submitting the pair updates the example usage instead of creating
// a duplicate.
type Word struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	InGerman      string    `gorm:"not null;uniqueIndex:idx_words_pair" json:"inGerman"`
	InEnglish     string    `gorm:"not null;uniqueIndex:idx_words_pair" json:"inEnglish"`
	ExampleUsage  *string   `json:"exampleUsage"`
	AddedByUserID string    `gorm:"not null" json:"addedByUserId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Word) TableName() string {
	return "words"
}

// UserWord links a user to a word in their personal list.
type UserWord struct {
	UserID    string `gorm:"primaryKey"`
	WordID    string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Word Word `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserWord) TableName() string {
	return "users_words"
}

// UserWordEntry is the flattened row returned by the "my words" listing.
type UserWordEntry struct {
	InGerman     string  `json:"inGerman"`
	InEnglish    string  `json:"inEnglish"`
	ExampleUsage *string `json:"exampleUsage"`
}
