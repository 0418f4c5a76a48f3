package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/belenos68/glucolife-app/internal/models"
)

// GlucoseService stores standalone glucose readings taken outside any meal.
type GlucoseService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGlucoseService(db *gorm.DB, now func() time.Time) *GlucoseService {
	if now == nil {
		now = time.Now
	}
	return &GlucoseService{db: db, now: now}
}

func (s *GlucoseService) CreateReading(ctx context.Context, userID uuid.UUID, value float64) (*models.GlucoseReading, error) {
	reading := &models.GlucoseReading{
		UserID:     userID,
		Value:      value,
		RecordedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(reading).Error; err != nil {
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}
	return reading, nil
}

func (s *GlucoseService) ListReadings(ctx context.Context, userID uuid.UUID) ([]models.GlucoseReading, error) {
	var readings []models.GlucoseReading
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return readings, nil
}
