package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakRecord is the persisted activity ledger, one row per user.
// LastActivityDate is a calendar date string (2006-01-02), not an instant.
type StreakRecord struct {
	ID               uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	UserID           uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Streak           int            `gorm:"not null;default:0" json:"streak"`
	LastActivityDate string         `gorm:"size:10" json:"last_activity_date"`
}

func (s *StreakRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
