package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/belenos68/glucolife-app/internal/models"
	"github.com/belenos68/glucolife-app/internal/scoring"
	"github.com/belenos68/glucolife-app/internal/types"
)

var ErrMealNotFound = errors.New("meal not found")

// MealService persists scanned meals and computes their glycemic score.
type MealService struct {
	db           *gorm.DB
	calc         *scoring.Calculator
	advisor      IAdvisorService
	streaks      *StreakService
	achievements *AchievementService
	now          func() time.Time
}

func NewMealService(db *gorm.DB, calc *scoring.Calculator, advisor IAdvisorService, streaks *StreakService, achievements *AchievementService, now func() time.Time) *MealService {
	if now == nil {
		now = time.Now
	}
	return &MealService{
		db:           db,
		calc:         calc,
		advisor:      advisor,
		streaks:      streaks,
		achievements: achievements,
		now:          now,
	}
}

// SaveMeal scores and stores a meal. When both glucose readings are present
// and show a rise, the score comes from the measured spike and a
// personalized advice lookup runs; otherwise the score falls back to the
// carb estimate. Streak and achievement updates ride along but their
// failures never fail the save.
func (s *MealService) SaveMeal(ctx context.Context, userID uuid.UUID, req *types.SaveMealRequest) (*models.Meal, error) {
	category := scoring.ParseCategory(req.GlycemicIndex)

	var spike *float64
	if req.PreMealGlucose != nil && req.PostMealGlucose != nil && *req.PostMealGlucose > *req.PreMealGlucose {
		diff := *req.PostMealGlucose - *req.PreMealGlucose
		spike = &diff
	}

	meal := &models.Meal{
		UserID:          userID,
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		Ingredients:     models.JSONBStringArray(req.Ingredients),
		Carbohydrates:   req.Carbohydrates,
		Protein:         req.Protein,
		Fats:            req.Fats,
		Fiber:           req.Fiber,
		GlycemicIndex:   category.String(),
		GlycemicScore:   s.calc.Score(req.Carbohydrates, category, spike),
		Advice:          req.Advice,
		PreMealGlucose:  req.PreMealGlucose,
		PostMealGlucose: req.PostMealGlucose,
		LoggedAt:        s.now(),
	}

	if spike != nil && s.advisor != nil {
		user, err := s.lookupProgram(ctx, userID)
		if err == nil {
			meal.PersonalizedAdvice = s.advisor.PersonalizedAdvice(ctx, AdviceRequest{
				Program:       user.TrackingProgram,
				MealName:      req.Name,
				Carbohydrates: req.Carbohydrates,
				GlycemicIndex: category.String(),
				PreGlucose:    *req.PreMealGlucose,
				PostGlucose:   *req.PostMealGlucose,
			})
		}
	}

	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	if s.streaks != nil {
		if _, err := s.streaks.LogActivity(ctx, userID); err != nil {
			log.Printf("streak update failed for user %s: %v", userID, err)
		}
	}
	if s.achievements != nil {
		if _, err := s.achievements.CheckAndUnlock(ctx, userID); err != nil {
			log.Printf("achievement check failed for user %s: %v", userID, err)
		}
	}

	return meal, nil
}

// ListMeals returns the user's meals, most recent first.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

func (s *MealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &meal, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}

func (s *MealService) lookupProgram(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
