package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content" validate:"max=5000"`
	// Optional creation timestamp, RFC3339. Defaults to server time.
	NoteDate string `json:"note_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"max=255"`
	Content string    `json:"content" validate:"max=5000"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	NoteDate  time.Time  `json:"note_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
