package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnlockedAchievement records that a user has earned the achievement
// identified by Code. Definitions and criteria live in the service layer.
type UnlockedAchievement struct {
	ID         uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_user_achievement,unique" json:"user_id"`
	Code       string         `gorm:"size:50;not null;index:idx_user_achievement,unique" json:"code"`
	UnlockedAt time.Time      `gorm:"not null" json:"unlocked_at"`
}

func (a *UnlockedAchievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
