package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/belenos68/glucolife-app/internal/middleware"
	"github.com/belenos68/glucolife-app/internal/scoring"
	"github.com/belenos68/glucolife-app/internal/service"
	"github.com/belenos68/glucolife-app/internal/testhelpers"
	"github.com/belenos68/glucolife-app/internal/types"
)

// MockAdvisor mocks the AI collaborator boundary.
type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) AnalyzeMeal(ctx context.Context, imageData, mimeType string) (*service.MealAnalysis, error) {
	args := m.Called(imageData, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MealAnalysis), args.Error(1)
}

func (m *MockAdvisor) PersonalizedAdvice(ctx context.Context, req service.AdviceRequest) string {
	args := m.Called(req)
	return args.String(0)
}

func (m *MockAdvisor) SaveDraft(ctx context.Context, draft *service.AnalysisDraft) error {
	args := m.Called(draft)
	if args.Error(0) == nil && draft.ID == "" {
		draft.ID = "draft-1"
	}
	return args.Error(0)
}

func (m *MockAdvisor) GetDraft(ctx context.Context, id string) (*service.AnalysisDraft, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisDraft), args.Error(1)
}

func (m *MockAdvisor) DeleteDraft(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

// testEnv bundles the wired router with the backing services the tests poke
// at directly.
type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *service.AuthService
	advisor *MockAdvisor
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")
	advisor := new(MockAdvisor)

	calc := scoring.NewCalculator(nil)
	streakService := service.NewStreakService(db, nil)
	achievementService := service.NewAchievementService(db, nil)
	mealService := service.NewMealService(db, calc, advisor, streakService, achievementService, nil)
	goalService := service.NewGoalService(db, nil)
	glucoseService := service.NewGlucoseService(db, nil)

	router := gin.New()
	router.GET("/health", HealthCheck)
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	NewAuthHandler(authService).RegisterRoutes(v1, protected)
	NewMealHandler(mealService, advisor, nil).RegisterRoutes(protected)
	NewGoalHandler(goalService).RegisterRoutes(protected)
	NewReadingHandler(glucoseService).RegisterRoutes(protected)
	NewStreakHandler(streakService).RegisterRoutes(protected)
	NewAchievementHandler(achievementService).RegisterRoutes(protected)
	NewDashboardHandler(mealService, goalService, streakService, achievementService).RegisterRoutes(protected)

	return &testEnv{router: router, db: db, auth: authService, advisor: advisor}
}

// registerUser creates an account through the API and returns its token.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	body := map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	}
	rr := e.request(t, "POST", "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) saveMeal(t *testing.T, token string, req types.SaveMealRequest) map[string]interface{} {
	t.Helper()

	rr := e.request(t, "POST", "/api/v1/meals", req, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var meal map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meal))
	return meal
}
