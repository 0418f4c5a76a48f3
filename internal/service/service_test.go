package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/belenos68/glucolife-app/internal/models"
	"github.com/belenos68/glucolife-app/internal/scoring"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.Goal{},
		&models.GlucoseReading{},
		&models.StreakRecord{},
		&models.UnlockedAchievement{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Name:            "Test User",
		Email:           uuid.New().String() + "@example.com",
		PasswordHash:    "not-a-real-hash",
		TrackingProgram: models.ProgramPrevention,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// fixedClock returns a clock frozen at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func seedMeal(t *testing.T, db *gorm.DB, userID uuid.UUID, score int, loggedAt time.Time) *models.Meal {
	t.Helper()

	meal := &models.Meal{
		UserID:        userID,
		Name:          "seeded meal",
		Ingredients:   models.JSONBStringArray{"rice"},
		Carbohydrates: 40,
		GlycemicIndex: "medium",
		GlycemicScore: score,
		LoggedAt:      loggedAt,
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}

// stubAdvisor is a canned IAdvisorService for exercising the save path
// without network calls.
type stubAdvisor struct {
	advice      string
	adviceCalls []AdviceRequest
	analysis    *MealAnalysis
	drafts      map[string]*AnalysisDraft
}

func newStubAdvisor(advice string) *stubAdvisor {
	return &stubAdvisor{advice: advice, drafts: map[string]*AnalysisDraft{}}
}

func (s *stubAdvisor) AnalyzeMeal(ctx context.Context, imageData, mimeType string) (*MealAnalysis, error) {
	if s.analysis != nil {
		return s.analysis, nil
	}
	return &MealAnalysis{MealName: "stub meal", GlycemicIndex: "medium", Carbohydrates: 30}, nil
}

func (s *stubAdvisor) PersonalizedAdvice(ctx context.Context, req AdviceRequest) string {
	s.adviceCalls = append(s.adviceCalls, req)
	return s.advice
}

func (s *stubAdvisor) SaveDraft(ctx context.Context, draft *AnalysisDraft) error {
	draft.ID = uuid.New().String()
	s.drafts[draft.ID] = draft
	return nil
}

func (s *stubAdvisor) GetDraft(ctx context.Context, id string) (*AnalysisDraft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (s *stubAdvisor) DeleteDraft(ctx context.Context, id string) error {
	delete(s.drafts, id)
	return nil
}

func testCalculator() *scoring.Calculator {
	return scoring.NewCalculator(rand.NewSource(1))
}
