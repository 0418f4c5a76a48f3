package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GlucoseReading is a standalone blood-glucose measurement in mg/dL, logged
// outside the meal save path.
type GlucoseReading struct {
	ID         uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Value      float64        `gorm:"not null" json:"value"`
	RecordedAt time.Time      `gorm:"not null;index" json:"recorded_at"`
}

func (r *GlucoseReading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
