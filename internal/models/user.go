package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tracking programs a user can follow. The choice feeds the personalized
// advice prompt and nothing else.
const (
	ProgramPrevention   = "Prevention"
	ProgramDiabetes     = "Diabetes Management"
	ProgramOptimization = "Health Optimization"
)

type User struct {
	ID              uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"not null" json:"-"`
	TrackingProgram string         `gorm:"size:50;default:'Prevention'" json:"tracking_program"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
