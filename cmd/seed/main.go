package main

import (
	"log"
	"os"
	"time"

	"quicknote-be/internal/model"
	"quicknote-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account with a few notes for local frontend development.
// Safe to re-run: skips when the demo email already exists.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	const demoEmail = "demo@quicknote.local"

	var existing model.User
	if err := db.Where("email = ?", demoEmail).First(&existing).Error; err == nil {
		color.Yellow("Demo user '%s' already exists, skipping...", demoEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: Failed to hash demo password: %v", err)
		os.Exit(1)
	}

	user := model.User{
		Id:           uuid.New(),
		Email:        demoEmail,
		FirstName:    "Demo",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Error: Failed to create demo user: %v", err)
		os.Exit(1)
	}
	color.Green("Created demo user: %s", demoEmail)

	notes := []model.Note{
		{Id: uuid.New(), Title: "Welcome", Content: "This is your first note. Edit or delete it any time.", NoteDate: time.Now().Add(-48 * time.Hour), UserId: user.Id},
		{Id: uuid.New(), Title: "Shopping list", Content: "Milk, eggs, coffee", NoteDate: time.Now().Add(-24 * time.Hour), UserId: user.Id},
		{Id: uuid.New(), Title: "Ideas", Content: "Notes are ordered by note date, newest first.", NoteDate: time.Now(), UserId: user.Id},
	}
	for _, n := range notes {
		if err := db.Create(&n).Error; err != nil {
			color.Red("Error: Failed to create note '%s': %v", n.Title, err)
			os.Exit(1)
		}
		color.Green("Created note: %s", n.Title)
	}

	color.Cyan("Seeding completed: 1 user, %d notes", len(notes))
}
