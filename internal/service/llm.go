package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AdviceTimeout bounds the personalized-advice call on the meal save path.
// Saving a meal must never block indefinitely on the model; on timeout the
// advice is simply empty.
const AdviceTimeout = 9 * time.Second

// MealAnalysis is the structured estimate the model returns for a meal photo.
type MealAnalysis struct {
	MealName      string   `json:"mealName"`
	Ingredients   []string `json:"ingredients"`
	Carbohydrates float64  `json:"carbohydrates"`
	Protein       float64  `json:"protein"`
	Fats          float64  `json:"fats"`
	Fiber         float64  `json:"fiber"`
	GlycemicIndex string   `json:"glycemicIndex"`
	Advice        string   `json:"advice"`
}

// AdviceRequest carries the context for a personalized-advice prompt after a
// glucose spike was recorded.
type AdviceRequest struct {
	Program       string
	MealName      string
	Carbohydrates float64
	GlycemicIndex string
	PreGlucose    float64
	PostGlucose   float64
}

// AnalysisDraft is an analysis staged in Redis between the analyze and save
// steps, so a client can re-fetch it without paying for another model call.
type AnalysisDraft struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	UserID    string       `json:"user_id"`
	Analysis  MealAnalysis `json:"analysis"`
}

// LLMService handles interactions with the Gemini API
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

var _ IAdvisorService = (*LLMService)(nil)

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("GEMINI_API_URL")
	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	}

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{},
		redis:  redisClient,
	}, nil
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

const analysisPrompt = `You are a nutritionist analyzing a photo of a meal. ` +
	`Respond only with JSON of the form {"mealName":"","ingredients":[""],` +
	`"carbohydrates":0,"protein":0,"fats":0,"fiber":0,"glycemicIndex":"low|medium|high","advice":""}. ` +
	`All macro fields are grams as numbers; advice is one short nutritional tip.`

// AnalyzeMeal sends a meal photo to the model and parses the structured
// nutrition estimate.
func (s *LLMService) AnalyzeMeal(ctx context.Context, imageData, mimeType string) (*MealAnalysis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: analysisPrompt},
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageData}},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json"},
	}

	content, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var analysis MealAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &analysis, nil
}

// PersonalizedAdvice asks the model for advice tailored to the user's
// tracking program and a recorded glucose spike. The call is raced against
// AdviceTimeout; on timeout or any error the advice degrades to an empty
// string, never an error, so the save path keeps moving.
func (s *LLMService) PersonalizedAdvice(ctx context.Context, req AdviceRequest) string {
	ctx, cancel := context.WithTimeout(ctx, AdviceTimeout)
	defer cancel()

	spike := req.PostGlucose - req.PreGlucose
	prompt := fmt.Sprintf(
		"A user on the %q tracking program ate %q (%.0fg carbohydrates, %s glycemic index). "+
			"Their glucose went from %.0f to %.0f mg/dL, a spike of %.1f mg/dL. "+
			"Give one short piece of practical advice to soften that spike next time.",
		req.Program, req.MealName, req.Carbohydrates, req.GlycemicIndex,
		req.PreGlucose, req.PostGlucose, spike,
	)

	content, err := s.generate(ctx, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}

// generate performs one generateContent call and returns the first
// candidate's text.
func (s *LLMService) generate(ctx context.Context, reqBody geminiRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// SaveDraft saves an analysis draft to Redis
func (s *LLMService) SaveDraft(ctx context.Context, draft *AnalysisDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := fmt.Sprintf("meal:draft:%s", draft.ID)
	if err := s.redis.Set(ctx, key, data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves an analysis draft from Redis
func (s *LLMService) GetDraft(ctx context.Context, id string) (*AnalysisDraft, error) {
	key := fmt.Sprintf("meal:draft:%s", id)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft AnalysisDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes an analysis draft from Redis
func (s *LLMService) DeleteDraft(ctx context.Context, id string) error {
	key := fmt.Sprintf("meal:draft:%s", id)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}

	return nil
}
