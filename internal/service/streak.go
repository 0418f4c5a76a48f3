package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/belenos68/glucolife-app/internal/models"
	"github.com/belenos68/glucolife-app/internal/scoring"
)

// StreakService tracks consecutive days with at least one logged meal.
type StreakService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStreakService(db *gorm.DB, now func() time.Time) *StreakService {
	if now == nil {
		now = time.Now
	}
	return &StreakService{db: db, now: now}
}

// LogActivity records activity for today and returns the updated record.
// A second call on the same day is a no-op.
func (s *StreakService) LogActivity(ctx context.Context, userID uuid.UUID) (*models.StreakRecord, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	ledger := scoring.Ledger{Streak: record.Streak, LastActivityDate: record.LastActivityDate}
	updated := scoring.LogActivity(ledger, s.now())
	if updated == ledger {
		return record, nil
	}

	record.Streak = updated.Streak
	record.LastActivityDate = updated.LastActivityDate
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}
	return record, nil
}

// Current returns the streak as it should display right now. A streak whose
// last activity precedes yesterday reads as zero, and that reset is written
// back so every later reader agrees.
func (s *StreakService) Current(ctx context.Context, userID uuid.UUID) (*models.StreakRecord, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	ledger := scoring.Ledger{Streak: record.Streak, LastActivityDate: record.LastActivityDate}
	reconciled := scoring.Reconcile(ledger, s.now())
	if reconciled != ledger {
		record.Streak = reconciled.Streak
		record.LastActivityDate = reconciled.LastActivityDate
		if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
			return nil, fmt.Errorf("failed to save streak: %w", err)
		}
	}
	return record, nil
}

func (s *StreakService) load(ctx context.Context, userID uuid.UUID) (*models.StreakRecord, error) {
	var record models.StreakRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.StreakRecord{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}
	return &record, nil
}
