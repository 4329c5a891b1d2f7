package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title    string    `gorm:"type:varchar(255);not null"`
	Content  string    `gorm:"type:varchar(5000);not null"`
	NoteDate time.Time `gorm:"not null;index"`
	UserId   uuid.UUID `gorm:"type:uuid;not null;index"`
	User     *User     `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// Stays null until the first edit; the service stamps it explicitly.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (Note) TableName() string {
	return "notes"
}
