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

// AchievementData is the snapshot an achievement criterion is judged
// against.
type AchievementData struct {
	Meals  []models.Meal
	Streak int
	Goal   *models.Goal
	Now    time.Time
}

// Achievement pairs a stable code with its display copy and unlock
// criterion. Codes are persisted; never reuse or rename one.
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Criteria    func(AchievementData) bool `json:"-"`
}

// Catalog is the ordered set of achievements. Order matters: an unlock
// sweep stops at the first newly earned entry, so earlier entries win when
// several become true at once.
var Catalog = []Achievement{
	{
		Code:        "scanner_novice",
		Name:        "Scanner Novice",
		Description: "Log 10 meals",
		Criteria: func(d AchievementData) bool {
			return len(d.Meals) >= 10
		},
	},
	{
		Code:        "streak_3_days",
		Name:        "Warming Up",
		Description: "Keep a 3-day streak",
		Criteria: func(d AchievementData) bool {
			return d.Streak >= 3
		},
	},
	{
		Code:        "streak_7_days",
		Name:        "Creature of Habit",
		Description: "Keep a 7-day streak",
		Criteria: func(d AchievementData) bool {
			return d.Streak >= 7
		},
	},
	{
		Code:        "high_scorer",
		Name:        "High Scorer",
		Description: "Score 95 or better on a meal",
		Criteria: func(d AchievementData) bool {
			for _, m := range d.Meals {
				if m.GlycemicScore >= 95 {
					return true
				}
			}
			return false
		},
	},
	{
		Code:        "top_student",
		Name:        "Top Student",
		Description: "Score a perfect 100",
		Criteria: func(d AchievementData) bool {
			for _, m := range d.Meals {
				if m.GlycemicScore == 100 {
					return true
				}
			}
			return false
		},
	},
	{
		Code:        "goal_setter",
		Name:        "Goal Setter",
		Description: "Set a reduction goal",
		Criteria: func(d AchievementData) bool {
			return d.Goal != nil
		},
	},
	{
		Code:        "perfect_week",
		Name:        "Perfect Week",
		Description: "Log meals on 7 different days within a week",
		Criteria: func(d AchievementData) bool {
			weekAgo := d.Now.AddDate(0, 0, -7)
			days := make(map[string]struct{})
			for _, m := range d.Meals {
				if m.LoggedAt.Before(weekAgo) {
					continue
				}
				days[m.LoggedAt.Format(scoring.DateFormat)] = struct{}{}
			}
			return len(days) >= 7
		},
	},
}

// AchievementService evaluates the catalog against a user's history and
// records unlocks.
type AchievementService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAchievementService(db *gorm.DB, now func() time.Time) *AchievementService {
	if now == nil {
		now = time.Now
	}
	return &AchievementService{db: db, now: now}
}

// AchievementStatus is one catalog entry decorated with the user's unlock
// state.
type AchievementStatus struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// CheckAndUnlock sweeps the catalog and records at most one new unlock per
// call, returning it, or nil when nothing new was earned. Rationing unlocks
// to one per check keeps a burst of qualifying activity from dumping every
// badge at once.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID uuid.UUID) (*models.UnlockedAchievement, error) {
	data, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.unlockedCodes(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, a := range Catalog {
		if _, done := unlocked[a.Code]; done {
			continue
		}
		if !a.Criteria(data) {
			continue
		}

		record := &models.UnlockedAchievement{
			UserID:     userID,
			Code:       a.Code,
			UnlockedAt: s.now(),
		}
		if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
			return nil, fmt.Errorf("failed to record achievement: %w", err)
		}
		return record, nil
	}
	return nil, nil
}

// List returns the full catalog with the user's unlock state.
func (s *AchievementService) List(ctx context.Context, userID uuid.UUID) ([]AchievementStatus, error) {
	var records []models.UnlockedAchievement
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	byCode := make(map[string]models.UnlockedAchievement, len(records))
	for _, r := range records {
		byCode[r.Code] = r
	}

	statuses := make([]AchievementStatus, len(Catalog))
	for i, a := range Catalog {
		status := AchievementStatus{Code: a.Code, Name: a.Name, Description: a.Description}
		if r, ok := byCode[a.Code]; ok {
			status.Unlocked = true
			at := r.UnlockedAt
			status.UnlockedAt = &at
		}
		statuses[i] = status
	}
	return statuses, nil
}

func (s *AchievementService) snapshot(ctx context.Context, userID uuid.UUID) (AchievementData, error) {
	var data AchievementData
	data.Now = s.now()

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&data.Meals).Error; err != nil {
		return data, fmt.Errorf("failed to load meals: %w", err)
	}

	var record models.StreakRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err == nil {
		ledger := scoring.Reconcile(scoring.Ledger{Streak: record.Streak, LastActivityDate: record.LastActivityDate}, data.Now)
		data.Streak = ledger.Streak
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return data, fmt.Errorf("failed to load streak: %w", err)
	}

	var goal models.Goal
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if err == nil {
		data.Goal = &goal
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return data, fmt.Errorf("failed to load goal: %w", err)
	}

	return data, nil
}

func (s *AchievementService) unlockedCodes(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	var records []models.UnlockedAchievement
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	codes := make(map[string]struct{}, len(records))
	for _, r := range records {
		codes[r.Code] = struct{}{}
	}
	return codes, nil
}
