package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vokabular/gin-vocab-api/internal/middleware"
	"github.com/vokabular/gin-vocab-api/internal/models"
	"github.com/vokabular/gin-vocab-api/internal/services"
)

// WordController handles HTTP requests for dictionary entries
type WordController interface {
	// FindGerman looks up entries by their German side
	FindGerman(c *gin.Context)
	// FindEnglish looks up entries by their English side
	FindEnglish(c *gin.Context)
	// CreateWord submits a new dictionary entry for the signed-in user
	CreateWord(c *gin.Context)
	// MyWords lists the signed-in user's words
	MyWords(c *gin.Context)
}

type wordController struct {
	service services.WordService
}

// NewWordController creates a new instance of WordController
func NewWordController(service services.WordService) WordController {
	return &wordController{service: service}
}

// FindGerman godoc
// @Summary Look up a German word
// @Description Get all dictionary entries whose German side matches exactly
// @Tags Dictionary
// @Produce json
// @Param inGerman path string true "German word"
// @Success 200 {object} map[string][]models.Word
// @Failure 500 {object} map[string]string
// @Router /api/word/german/{inGerman} [get]
func (w *wordController) FindGerman(c *gin.Context) {
	found, err := w.service.FindByGerman(c.Param("inGerman"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up words"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found})
}

// FindEnglish godoc
// @Summary Look up an English word
// @Description Get all dictionary entries whose English side matches exactly
// @Tags Dictionary
// @Produce json
// @Param inEnglish path string true "English word"
// @Success 200 {object} map[string][]models.Word
// @Failure 500 {object} map[string]string
// @Router /api/word/english/{inEnglish} [get]
func (w *wordController) FindEnglish(c *gin.Context) {
	found, err := w.service.FindByEnglish(c.Param("inEnglish"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up words"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found})
}

type createWordRequest struct {
	InGerman     string  `json:"inGerman" binding:"required"`
	InEnglish    string  `json:"inEnglish" binding:"required"`
	ExampleUsage *string `json:"exampleUsage"`
}

// CreateWord godoc
// @Summary Submit a dictionary entry
// @Description Create a word pair, or update its example usage if the pair already exists. The word is added to the caller's personal list.
// @Tags Dictionary
// @Accept json
// @Produce json
// @Param word body controllers.createWordRequest true "Word pair"
// @Success 200 {object} models.Word
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/word [post]
func (w *wordController) CreateWord(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inGerman and inEnglish are required"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	word, err := w.service.CreateWord(models.Word{
		InGerman:     req.InGerman,
		InEnglish:    req.InEnglish,
		ExampleUsage: req.ExampleUsage,
	}, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create word"})
		return
	}

	c.JSON(http.StatusOK, word)
}

// MyWords godoc
// @Summary List the caller's words
// @Description Get the words in the signed-in user's personal list
// @Tags Dictionary
// @Produce json
// @Success 200 {array} models.UserWordEntry
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/mywords [get]
func (w *wordController) MyWords(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	entries, err := w.service.WordsForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list words"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
