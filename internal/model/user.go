package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultExpectedDailyCalories is assigned to new users that don't set a budget.
const DefaultExpectedDailyCalories = 2000

// User represents an account in the system.
type User struct {
	ID                    uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name                  string    `json:"name" gorm:"size:255;not null;index"`
	Email                 string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash          string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role                  string    `json:"role" gorm:"size:50;not null;default:'regular';index"`
	ExpectedDailyCalories int       `json:"expected_daily_calories" gorm:"not null;default:2000"`
	CreatedAt             time.Time `json:"-"`
	UpdatedAt             time.Time `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.ExpectedDailyCalories == 0 {
		u.ExpectedDailyCalories = DefaultExpectedDailyCalories
	}
	return nil
}
