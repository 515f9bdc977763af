package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vokabular/gin-vocab-api/internal/auth"
	"github.com/vokabular/gin-vocab-api/internal/models"
)

func main() {
	// Parse command line flags
	email := flag.String("email", "dev@vocab.local", "Email for the development user")
	password := flag.String("password", "dev-password-123", "Password for the development user")
	dbPath := flag.String("db", "vocab.sqlite", "Path to the SQLite database")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.ClientCredentials{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	user := getOrCreateUser(db, *email, *password)

	// Issue client credentials for the user, rotating the secret if they
	// already exist. The plaintext secret is only printed here; verify
	// requests must present it exactly.
	store := auth.NewCredentialStore(db)
	creds, err := store.IssueOrRotate(user.ID)
	if err != nil {
		log.Fatal("Failed to issue client credentials:", err)
	}

	fmt.Printf("✓ Development user ready!\n")
	fmt.Printf("Email: %s\n", *email)
	fmt.Printf("Password: %s\n", *password)
	fmt.Printf("Client ID: %s\n", creds.ClientID)
	fmt.Printf("Client Secret: %s\n", creds.ClientSecret)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:8080/api/token \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"clientId\":\"%s\",\"clientSecret\":\"%s\"}'\n", creds.ClientID, creds.ClientSecret)
}

// getOrCreateUser finds the user by email or creates one with the given password
func getOrCreateUser(db *gorm.DB, email, password string) *models.User {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		fmt.Printf("Found existing user: %s (ID: %s)\n", user.Email, user.ID)
		return &user
	}

	user = models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  "Development User",
		Role:  "user",
	}
	if err := user.SetPassword(password); err != nil {
		log.Fatal("Failed to hash password:", err)
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create user:", err)
	}

	fmt.Printf("Created new user: %s (ID: %s)\n", user.Email, user.ID)
	return &user
}
