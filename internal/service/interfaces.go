package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/belenos68/glucolife-app/internal/models"
	"github.com/belenos68/glucolife-app/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
}

// IAdvisorService is the boundary to the generative-model collaborator. The
// rest of the system treats everything it returns as opaque text.
type IAdvisorService interface {
	AnalyzeMeal(ctx context.Context, imageData, mimeType string) (*MealAnalysis, error)
	PersonalizedAdvice(ctx context.Context, req AdviceRequest) string
	SaveDraft(ctx context.Context, draft *AnalysisDraft) error
	GetDraft(ctx context.Context, id string) (*AnalysisDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}
