package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vokabular/gin-vocab-api/internal/models"
)

// WordService provides dictionary lookups and submissions.
type WordService interface {
	// FindByGerman returns all entries matching the German side exactly.
	FindByGerman(inGerman string) ([]models.Word, error)
	// FindByEnglish returns all entries matching the English side exactly.
	FindByEnglish(inEnglish string) ([]models.Word, error)
	// CreateWord upserts a dictionary entry for the given user and records it
	// in the user's personal list. Re-submitting an existing pair updates the
	// example usage.
	CreateWord(word models.Word, userID string) (models.Word, error)
	// WordsForUser lists the words in the user's personal list.
	WordsForUser(userID string) ([]models.UserWordEntry, error)
}

type wordService struct {
	db *gorm.DB
}

func NewWordService(db *gorm.DB) WordService {
	return &wordService{db: db}
}

func (s *wordService) FindByGerman(inGerman string) ([]models.Word, error) {
	var words []models.Word
	if err := s.db.Where("in_german = ?", inGerman).Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (s *wordService) FindByEnglish(inEnglish string) ([]models.Word, error) {
	var words []models.Word
	if err := s.db.Where("in_english = ?", inEnglish).Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (s *wordService) CreateWord(word models.Word, userID string) (models.Word, error) {
	word.ID = uuid.New().String()
	word.AddedByUserID = userID

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "in_german"}, {Name: "in_english"}},
		DoUpdates: clause.AssignmentColumns([]string{"example_usage", "updated_at"}),
	}).Create(&word).Error
	if err != nil {
		return models.Word{}, err
	}

	// On conflict the insert keeps its generated id while the row keeps the
	// original one; re-read the canonical row before linking.
	var stored models.Word
	err = s.db.Where("in_german = ? AND in_english = ?", word.InGerman, word.InEnglish).
		First(&stored).Error
	if err != nil {
		return models.Word{}, err
	}

	link := models.UserWord{UserID: userID, WordID: stored.ID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return models.Word{}, err
	}

	return stored, nil
}

func (s *wordService) WordsForUser(userID string) ([]models.UserWordEntry, error) {
	var entries []models.UserWordEntry
	err := s.db.Table("users_words").
		Select("words.in_german, words.in_english, words.example_usage").
		Joins("INNER JOIN words ON words.id = users_words.word_id").
		Where("users_words.user_id = ?", userID).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
