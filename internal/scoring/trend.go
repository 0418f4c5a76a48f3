package scoring

import (
	"math"
	"sort"
)

// TrendPoint is one point of the cumulative-average series shown alongside an
// active goal.
type TrendPoint struct {
	MealIndex int `json:"meal_index"`
	Score     int `json:"score"`
}

// BuildTrend derives the cumulative-average score series for meals logged
// since the goal started, ordered by timestamp. Fewer than two qualifying
// meals yield no series: a single point says nothing about direction.
//
// The series is deliberately a cumulative mean rather than a sliding window,
// so it converges toward the same figure the progress tracker reports.
func BuildTrend(goal GoalWindow, meals []ScoredMeal) []TrendPoint {
	since := make([]ScoredMeal, 0, len(meals))
	for _, m := range meals {
		if !m.Timestamp.Before(goal.StartDate) {
			since = append(since, m)
		}
	}
	sort.Slice(since, func(i, j int) bool {
		return since[i].Timestamp.Before(since[j].Timestamp)
	})

	if len(since) < 2 {
		return nil
	}

	points := make([]TrendPoint, len(since))
	sum := 0
	for i, m := range since {
		sum += m.Score
		points[i] = TrendPoint{
			MealIndex: i + 1,
			Score:     int(math.Round(float64(sum) / float64(i+1))),
		}
	}
	return points
}
