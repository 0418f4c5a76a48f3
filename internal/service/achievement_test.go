package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belenos68/glucolife-app/internal/models"
)

func TestCheckAndUnlock_NothingEarned(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	svc := NewAchievementService(db, nil)
	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, unlocked)
}

func TestCheckAndUnlock_OnePerCall(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Ten meals with a perfect score qualify for scanner_novice,
	// high_scorer and top_student at once.
	for i := 0; i < 10; i++ {
		seedMeal(t, db, user.ID, 100, now.Add(-time.Duration(i)*time.Hour))
	}

	svc := NewAchievementService(db, fixedClock(now))

	first, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "scanner_novice", first.Code)

	second, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "high_scorer", second.Code)

	third, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.Equal(t, "top_student", third.Code)

	fourth, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, fourth)
}

func TestCheckAndUnlock_StreakBadges(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.StreakRecord{
		UserID:           user.ID,
		Streak:           3,
		LastActivityDate: "2025-03-10",
	}).Error)

	svc := NewAchievementService(db, fixedClock(now))
	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, unlocked)
	assert.Equal(t, "streak_3_days", unlocked.Code)
}

func TestCheckAndUnlock_StaleStreakDoesNotCount(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.StreakRecord{
		UserID:           user.ID,
		Streak:           7,
		LastActivityDate: "2025-03-10",
	}).Error)

	svc := NewAchievementService(db, fixedClock(now))
	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, unlocked)
}

func TestCheckAndUnlock_GoalSetter(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	require.NoError(t, db.Create(&models.Goal{
		UserID:          user.ID,
		TargetReduction: 5,
		DurationDays:    7,
		StartDate:       time.Now(),
		InitialAvgScore: 75,
	}).Error)

	svc := NewAchievementService(db, nil)
	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, unlocked)
	assert.Equal(t, "goal_setter", unlocked.Code)
}

func TestCheckAndUnlock_PerfectWeek(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// One meal on each of the last seven days.
	for i := 0; i < 7; i++ {
		seedMeal(t, db, user.ID, 50, now.Add(-time.Duration(i*24)*time.Hour))
	}

	svc := NewAchievementService(db, fixedClock(now))
	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, unlocked)
	assert.Equal(t, "perfect_week", unlocked.Code)
}

func TestCheckAndUnlock_SameDayMealsAreOneDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		seedMeal(t, db, user.ID, 50, now.Add(-time.Duration(i)*time.Hour))
	}

	svc := NewAchievementService(db, fixedClock(now))
	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, unlocked)
}

func TestListAchievements(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	seedMeal(t, db, user.ID, 96, now)
	svc := NewAchievementService(db, fixedClock(now))

	unlocked, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, unlocked)
	assert.Equal(t, "high_scorer", unlocked.Code)

	statuses, err := svc.List(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, statuses, len(Catalog))

	found := false
	for _, s := range statuses {
		if s.Code == "high_scorer" {
			found = true
			assert.True(t, s.Unlocked)
			require.NotNil(t, s.UnlockedAt)
		} else {
			assert.False(t, s.Unlocked)
			assert.Nil(t, s.UnlockedAt)
		}
	}
	assert.True(t, found)
}
