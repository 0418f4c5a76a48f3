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
	"github.com/belenos68/glucolife-app/internal/types"
)

var (
	ErrGoalActive   = errors.New("an active goal already exists")
	ErrNoActiveGoal = errors.New("no active goal")
)

// DefaultInitialAvgScore seeds a goal baseline when the user has no meal
// history to average yet.
const DefaultInitialAvgScore = 75

// GoalService manages the single-active reduction goal per user.
type GoalService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGoalService(db *gorm.DB, now func() time.Time) *GoalService {
	if now == nil {
		now = time.Now
	}
	return &GoalService{db: db, now: now}
}

// CreateGoal starts a reduction goal. The baseline is the rounded mean of
// every meal the user has logged so far, falling back to
// DefaultInitialAvgScore on an empty history. Only one unexpired goal can
// exist; an expired leftover is swept out on the way in.
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*models.Goal, error) {
	existing, err := s.ActiveGoal(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoActiveGoal) {
		return nil, err
	}
	if existing != nil {
		if s.now().After(s.window(existing).EndDate()) {
			if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
				return nil, fmt.Errorf("failed to retire expired goal: %w", err)
			}
		} else {
			return nil, ErrGoalActive
		}
	}

	meals, err := s.scoredMeals(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:          userID,
		TargetReduction: req.TargetReduction,
		DurationDays:    req.DurationDays,
		StartDate:       s.now(),
		InitialAvgScore: scoring.AverageScore(meals, DefaultInitialAvgScore),
	}
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// ActiveGoal returns the user's current goal, expired or not. Callers that
// care about expiry go through Progress.
func (s *GoalService) ActiveGoal(ctx context.Context, userID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveGoal
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	return &goal, nil
}

// Progress evaluates the active goal against the meals logged since it
// started.
func (s *GoalService) Progress(ctx context.Context, userID uuid.UUID) (*models.Goal, *scoring.Progress, error) {
	goal, err := s.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	meals, err := s.scoredMealsSince(ctx, userID, goal.StartDate)
	if err != nil {
		return nil, nil, err
	}

	progress := scoring.TrackProgress(s.window(goal), meals, s.now())
	return goal, &progress, nil
}

// Trend returns the cumulative-average series for the active goal. A
// completed goal yields an empty series so the chart disappears once the
// target is reached.
func (s *GoalService) Trend(ctx context.Context, userID uuid.UUID) ([]scoring.TrendPoint, error) {
	goal, err := s.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	meals, err := s.scoredMealsSince(ctx, userID, goal.StartDate)
	if err != nil {
		return nil, err
	}

	progress := scoring.TrackProgress(s.window(goal), meals, s.now())
	if progress.IsCompleted {
		return nil, nil
	}
	return scoring.BuildTrend(s.window(goal), meals), nil
}

// AbandonGoal soft-deletes the active goal.
func (s *GoalService) AbandonGoal(ctx context.Context, userID uuid.UUID) error {
	goal, err := s.ActiveGoal(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(goal).Error; err != nil {
		return fmt.Errorf("failed to abandon goal: %w", err)
	}
	return nil
}

func (s *GoalService) window(goal *models.Goal) scoring.GoalWindow {
	return scoring.GoalWindow{
		StartDate:       goal.StartDate,
		DurationDays:    goal.DurationDays,
		TargetReduction: goal.TargetReduction,
		InitialAvgScore: goal.InitialAvgScore,
	}
}

func (s *GoalService) scoredMeals(ctx context.Context, userID uuid.UUID) ([]scoring.ScoredMeal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	return mealsToScored(meals), nil
}

func (s *GoalService) scoredMealsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]scoring.ScoredMeal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ?", userID, since).
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	return mealsToScored(meals), nil
}

func mealsToScored(meals []models.Meal) []scoring.ScoredMeal {
	scored := make([]scoring.ScoredMeal, len(meals))
	for i, m := range meals {
		scored[i] = scoring.ScoredMeal{Timestamp: m.LoggedAt, Score: m.GlycemicScore}
	}
	return scored
}
