package types

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	TrackingProgram string `json:"tracking_program"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	TrackingProgram string `json:"tracking_program" binding:"omitempty,oneof='Prevention' 'Diabetes Management' 'Health Optimization'"`
}

// AnalyzeMealRequest asks the AI collaborator to estimate nutrition for a
// photographed meal. The image travels as an opaque base64 string; upload
// mechanics are out of scope.
type AnalyzeMealRequest struct {
	ImageData string `json:"image_data" binding:"required"`
	MimeType  string `json:"mime_type"`
}

// SaveMealRequest represents the request body for saving an analyzed meal
type SaveMealRequest struct {
	Name            string   `json:"name" binding:"required"`
	ImageURL        string   `json:"image_url"`
	Ingredients     []string `json:"ingredients"`
	Carbohydrates   float64  `json:"carbohydrates" binding:"min=0"`
	Protein         *float64 `json:"protein"`
	Fats            *float64 `json:"fats"`
	Fiber           *float64 `json:"fiber"`
	GlycemicIndex   string   `json:"glycemic_index" binding:"required"`
	Advice          string   `json:"advice"`
	PreMealGlucose  *float64 `json:"pre_meal_glucose"`
	PostMealGlucose *float64 `json:"post_meal_glucose"`
}

// CreateGoalRequest represents the request body for setting a reduction goal
type CreateGoalRequest struct {
	TargetReduction int `json:"target_reduction" binding:"required,gt=0"`
	DurationDays    int `json:"duration_days" binding:"required,gt=0"`
}

// CreateReadingRequest represents the request body for logging a glucose reading
type CreateReadingRequest struct {
	Value float64 `json:"value" binding:"required,gt=0"`
}
