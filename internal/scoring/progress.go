package scoring

import (
	"math"
	"time"
)

// GoalWindow is the slice of a goal the tracker needs: when it started, how
// long it runs and what the average looked like at the start.
type GoalWindow struct {
	StartDate       time.Time
	DurationDays    int
	TargetReduction int
	InitialAvgScore int
}

// ScoredMeal is a logged meal reduced to the two fields progress tracking
// cares about. Scores are fixed at save time and never recomputed.
type ScoredMeal struct {
	Timestamp time.Time
	Score     int
}

// Progress is the result of evaluating a goal against the meal log at a given
// instant. When Expired is true the goal window has closed and every other
// field is zeroed; expiry is terminal even if the target had been met earlier
// without being observed.
type Progress struct {
	Reduction          float64 `json:"reduction"`
	ProgressPercentage float64 `json:"progress_percentage"`
	DaysRemaining      int     `json:"days_remaining"`
	IsCompleted        bool    `json:"is_completed"`
	CurrentAvgScore    int     `json:"current_avg_score"`
	Expired            bool    `json:"expired"`
}

// EndDate returns the instant the goal window closes.
func (g GoalWindow) EndDate() time.Time {
	return g.StartDate.Add(time.Duration(g.DurationDays) * 24 * time.Hour)
}

// TrackProgress evaluates a goal against the meal log at instant now.
//
// The sign convention is preserved from the product as shipped: a *drop* in
// the rolling average counts toward the target, so reduction is negative when
// the user is making progress and completion means
// reduction <= -targetReduction.
func TrackProgress(goal GoalWindow, meals []ScoredMeal, now time.Time) Progress {
	endDate := goal.EndDate()
	if now.After(endDate) {
		return Progress{Expired: true}
	}

	sum, count := 0, 0
	for _, m := range meals {
		if m.Timestamp.Before(goal.StartDate) {
			continue
		}
		sum += m.Score
		count++
	}

	currentAvg := float64(goal.InitialAvgScore)
	if count > 0 {
		currentAvg = float64(sum) / float64(count)
	}

	reduction := currentAvg - float64(goal.InitialAvgScore)

	pct := 0.0
	if goal.TargetReduction > 0 {
		pct = math.Abs(math.Min(reduction, 0)) / float64(goal.TargetReduction) * 100
	}
	if pct > 100 {
		pct = 100
	}

	daysRemaining := int(math.Ceil(endDate.Sub(now).Hours() / 24))

	return Progress{
		Reduction:          reduction,
		ProgressPercentage: pct,
		DaysRemaining:      daysRemaining,
		IsCompleted:        reduction <= -float64(goal.TargetReduction),
		CurrentAvgScore:    int(math.Round(currentAvg)),
	}
}

// AverageScore returns the rounded mean score of the given meals, or fallback
// when the log is empty. Used to snapshot a goal's initial average.
func AverageScore(meals []ScoredMeal, fallback int) int {
	if len(meals) == 0 {
		return fallback
	}
	sum := 0
	for _, m := range meals {
		sum += m.Score
	}
	return int(math.Round(float64(sum) / float64(len(meals))))
}
