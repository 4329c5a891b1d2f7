package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is the bcrypt digest of the
// login password; the plaintext is never persisted anywhere.
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
