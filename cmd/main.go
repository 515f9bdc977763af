package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/vokabular/gin-vocab-api/docs" // Import generated docs
	"github.com/vokabular/gin-vocab-api/internal/auth"
	"github.com/vokabular/gin-vocab-api/internal/config"
	"github.com/vokabular/gin-vocab-api/internal/controllers"
	"github.com/vokabular/gin-vocab-api/internal/database"
	"github.com/vokabular/gin-vocab-api/internal/middleware"
	"github.com/vokabular/gin-vocab-api/internal/models"
	"github.com/vokabular/gin-vocab-api/internal/services"
)

// @title Vocab API
// @version 1.0
// @description A vocabulary-learning API: dictionary lookups, word submission, and an OAuth2-style authorization layer.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	// Initialize database connection
	db := setupDatabase(configuration)

	// Construct the auth subsystem: stores, codecs, session provider.
	// Everything receives its dependencies explicitly; there is no package
	// state to initialize.
	codeStore := auth.NewCodeStore(db)
	credentialStore := auth.NewCredentialStore(db)
	accessCodec := auth.NewAccessTokenCodec(configuration.APIJWTSecret)
	clientCodec := auth.NewClientTokenCodec(configuration.APIJWTSecret)
	sessionProvider := auth.NewCookieSessionProvider(configuration.SessionSecret)
	oauthService := auth.NewOAuthService(codeStore, credentialStore, accessCodec, clientCodec, sessionProvider)

	// Initialize services and controllers
	userService := services.NewUserService(db)
	wordService := services.NewWordService(db)
	wordController := controllers.NewWordController(wordService)
	authController := controllers.NewAuthController(userService, sessionProvider)

	// Initialize Gin router
	router := gin.Default()
	setupRoutes(router, oauthService, wordController, authController, sessionProvider, accessCodec, userService)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	if err := router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver: conf.DBDriver,
		URL:    conf.DatabaseURL,
		Path:   conf.SQLitePath,
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Word{},
		&models.UserWord{},
		&models.AuthorizationCode{},
		&models.ClientCredentials{},
	)
	checkPanicErr(err)

	return db
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(
	router *gin.Engine,
	oauthService *auth.OAuthService,
	wordController controllers.WordController,
	authController *controllers.AuthController,
	sessionProvider auth.SessionProvider,
	accessCodec *auth.AccessTokenCodec,
	userService services.UserService,
) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	api := router.Group("/api")
	api.Use(middleware.Authenticate(sessionProvider, accessCodec, userService))
	{
		// Account endpoints (interactive session)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authController.Register)
			authGroup.POST("/login", authController.Login)
			authGroup.GET("/signin", authController.SignIn)
			authGroup.POST("/logout", authController.Logout)
		}

		// OAuth endpoints
		api.GET("/oauth/authorize", oauthService.HandleAuthorize)
		api.POST("/oauth/token", oauthService.HandleTokenExchange)
		api.POST("/token", oauthService.HandleClientCredentialsGrant)

		// Public dictionary lookups
		api.GET("/word/german/:inGerman", wordController.FindGerman)
		api.GET("/word/english/:inEnglish", wordController.FindEnglish)

		// Protected routes (require a resolved identity: session or bearer)
		protected := api.Group("")
		protected.Use(middleware.RequireUser())
		{
			protected.POST("/word", wordController.CreateWord)
			protected.GET("/mywords", wordController.MyWords)
			protected.POST("/client-credentials", oauthService.HandleIssueClientCredentials)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-vocab-api",
	})
}
