package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var goalStart = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func mealsAveraging(scores ...int) []ScoredMeal {
	meals := make([]ScoredMeal, len(scores))
	for i, s := range scores {
		meals[i] = ScoredMeal{Timestamp: goalStart.Add(time.Duration(i+1) * time.Hour), Score: s}
	}
	return meals
}

func TestTrackProgressCompletion(t *testing.T) {
	goal := GoalWindow{
		StartDate:       goalStart,
		DurationDays:    30,
		TargetReduction: 10,
		InitialAvgScore: 80,
	}
	now := goalStart.Add(5 * 24 * time.Hour)

	// NOTE: the sign convention here is the one the product shipped with:
	// dropping the average counts as progress, even though the UI labels
	// higher scores as better. Preserved literally, not "fixed".
	t.Run("target met", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(68, 68, 68), now)
		assert.False(t, p.Expired)
		assert.InDelta(t, -12, p.Reduction, 1e-9)
		assert.True(t, p.IsCompleted)
		assert.Equal(t, 100.0, p.ProgressPercentage)
		assert.Equal(t, 68, p.CurrentAvgScore)
	})

	t.Run("partial progress", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(72, 72), now)
		assert.InDelta(t, -8, p.Reduction, 1e-9)
		assert.False(t, p.IsCompleted)
		assert.InDelta(t, 80, p.ProgressPercentage, 1e-9)
	})

	t.Run("rising average yields zero progress, not negative", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(90, 90), now)
		assert.InDelta(t, 10, p.Reduction, 1e-9)
		assert.Equal(t, 0.0, p.ProgressPercentage)
		assert.False(t, p.IsCompleted)
	})

	t.Run("exact target boundary completes", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(70, 70), now)
		assert.InDelta(t, -10, p.Reduction, 1e-9)
		assert.True(t, p.IsCompleted)
	})
}

func TestTrackProgressExpiry(t *testing.T) {
	goal := GoalWindow{StartDate: goalStart, DurationDays: 7, TargetReduction: 10, InitialAvgScore: 80}
	end := goal.EndDate()

	t.Run("one millisecond past the window is expired", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(60, 60), end.Add(time.Millisecond))
		assert.True(t, p.Expired)
		assert.Equal(t, Progress{Expired: true}, p)
	})

	t.Run("exactly at the window end is still active", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(60, 60), end)
		assert.False(t, p.Expired)
	})

	t.Run("non-positive duration reports expired", func(t *testing.T) {
		broken := GoalWindow{StartDate: goalStart, DurationDays: 0, TargetReduction: 10, InitialAvgScore: 80}
		p := TrackProgress(broken, nil, goalStart.Add(time.Hour))
		assert.True(t, p.Expired)
	})
}

func TestTrackProgressFallbacks(t *testing.T) {
	goal := GoalWindow{StartDate: goalStart, DurationDays: 14, TargetReduction: 10, InitialAvgScore: 75}
	now := goalStart.Add(24 * time.Hour)

	t.Run("no meals since start falls back to initial average", func(t *testing.T) {
		before := []ScoredMeal{{Timestamp: goalStart.Add(-time.Hour), Score: 20}}
		p := TrackProgress(goal, before, now)
		assert.Equal(t, 75, p.CurrentAvgScore)
		assert.Equal(t, 0.0, p.Reduction)
		assert.False(t, p.IsCompleted)
	})

	t.Run("zero target reduction yields zero percentage", func(t *testing.T) {
		zero := GoalWindow{StartDate: goalStart, DurationDays: 14, InitialAvgScore: 75}
		p := TrackProgress(zero, mealsAveraging(50, 50), now)
		assert.Equal(t, 0.0, p.ProgressPercentage)
	})

	t.Run("percentage clamps at 100", func(t *testing.T) {
		p := TrackProgress(goal, mealsAveraging(10, 10), now)
		assert.Equal(t, 100.0, p.ProgressPercentage)
	})
}

func TestTrackProgressDaysRemaining(t *testing.T) {
	goal := GoalWindow{StartDate: goalStart, DurationDays: 7, TargetReduction: 5, InitialAvgScore: 75}

	p := TrackProgress(goal, nil, goalStart.Add(6*24*time.Hour+12*time.Hour))
	assert.Equal(t, 1, p.DaysRemaining)

	p = TrackProgress(goal, nil, goalStart)
	assert.Equal(t, 7, p.DaysRemaining)
}

func TestTrackProgressIdempotent(t *testing.T) {
	goal := GoalWindow{StartDate: goalStart, DurationDays: 30, TargetReduction: 10, InitialAvgScore: 80}
	meals := mealsAveraging(72, 68, 75)
	now := goalStart.Add(48 * time.Hour)

	first := TrackProgress(goal, meals, now)
	second := TrackProgress(goal, meals, now)
	assert.Equal(t, first, second)
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 75, AverageScore(nil, 75))
	assert.Equal(t, 70, AverageScore(mealsAveraging(60, 80), 75))
	assert.Equal(t, 67, AverageScore(mealsAveraging(60, 80, 60), 75))
}
