package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note belongs to exactly one user; UserId never changes after creation.
// NoteDate is the ordering timestamp: set at creation (caller-supplied or
// server time) and reset to server time on every edit.
type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	NoteDate  time.Time
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
