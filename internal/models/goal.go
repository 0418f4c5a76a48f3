package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a self-set score-reduction target. Read-only after creation; the
// user abandons it by deleting it, and expiry is derived from StartDate plus
// DurationDays rather than stored. At most one undeleted goal exists per user.
type Goal struct {
	ID              uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	UserID          uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	TargetReduction int            `gorm:"not null" json:"target_reduction"`
	DurationDays    int            `gorm:"not null" json:"duration_days"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	InitialAvgScore int            `gorm:"not null" json:"initial_avg_score"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
