package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry represents a single food-intake record belonging to exactly one user.
// Calories stays nil until resolved; a lookup failure leaves it nil rather
// than blocking the save.
type Entry struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Date     string    `json:"date" gorm:"size:10;not null;index:idx_entries_user_date,priority:2"`
	Time     string    `json:"time" gorm:"size:8;not null"`
	Text     string    `json:"text" gorm:"size:255;not null"`
	Calories *int      `json:"calories"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index:idx_entries_user_date,priority:1"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
