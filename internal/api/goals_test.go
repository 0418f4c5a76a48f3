package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belenos68/glucolife-app/internal/types"
)

func TestGoalLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "goal@example.com")

	// No goal yet.
	rr := env.request(t, "GET", "/api/v1/goals/active", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.request(t, "POST", "/api/v1/goals", types.CreateGoalRequest{
		TargetReduction: 10,
		DurationDays:    14,
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var goal map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &goal))
	// Empty meal history falls back to the default baseline.
	assert.Equal(t, float64(75), goal["initial_avg_score"])

	// Second goal is rejected while the first is active.
	rr = env.request(t, "POST", "/api/v1/goals", types.CreateGoalRequest{
		TargetReduction: 5,
		DurationDays:    7,
	}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.request(t, "GET", "/api/v1/goals/active", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var active struct {
		Progress struct {
			DaysRemaining int  `json:"days_remaining"`
			IsCompleted   bool `json:"is_completed"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &active))
	assert.Equal(t, 14, active.Progress.DaysRemaining)
	assert.False(t, active.Progress.IsCompleted)

	rr = env.request(t, "DELETE", "/api/v1/goals/active", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.request(t, "GET", "/api/v1/goals/active", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGoalValidation(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "goalval@example.com")

	rr := env.request(t, "POST", "/api/v1/goals", map[string]int{
		"target_reduction": 0,
		"duration_days":    14,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.request(t, "POST", "/api/v1/goals", map[string]int{
		"target_reduction": 10,
		"duration_days":    -3,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGoalTrend(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "trend@example.com")

	rr := env.request(t, "GET", "/api/v1/goals/active/trend", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.request(t, "POST", "/api/v1/goals", types.CreateGoalRequest{
		TargetReduction: 50,
		DurationDays:    30,
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	// One meal is not enough for a series.
	env.saveMeal(t, token, types.SaveMealRequest{
		Name: "First", Carbohydrates: 40, GlycemicIndex: "medium",
	})
	rr = env.request(t, "GET", "/api/v1/goals/active/trend", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Points []struct {
			MealIndex int `json:"meal_index"`
			Score     int `json:"score"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Points)

	env.saveMeal(t, token, types.SaveMealRequest{
		Name: "Second", Carbohydrates: 20, GlycemicIndex: "medium",
	})
	rr = env.request(t, "GET", "/api/v1/goals/active/trend", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Points, 2)
	assert.Equal(t, 1, resp.Points[0].MealIndex)
	assert.Equal(t, 60, resp.Points[0].Score)
	assert.Equal(t, 2, resp.Points[1].MealIndex)
	assert.Equal(t, 70, resp.Points[1].Score)
}
