package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

// RecipeCandidate is one AI suggestion. Nutrition values are per serving.
type RecipeCandidate struct {
	Name         string  `json:"name"`
	Instructions string  `json:"instructions"`
	Calories     float64 `json:"calories"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatsG        float64 `json:"fats_g"`
	PrepTime     int     `json:"prep_time"`
	CookTime     int     `json:"cook_time"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// LLMRecipeGenerator talks to any OpenAI-compatible chat completions endpoint.
type LLMRecipeGenerator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewLLMRecipeGenerator(apiKey, baseURL, model string, timeout time.Duration) *LLMRecipeGenerator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LLMRecipeGenerator{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

const recipePrompt = `You are a professional chef and nutritionist. Generate 3 different recipe options using the following ingredients:

Ingredients available: %s
Meal type: %s
Servings: %d
Target calories per serving: ~%.0f calories

For each recipe, provide:
1. Recipe name
2. Simple step-by-step instructions
3. Estimated nutrition per serving (calories, protein, carbs, fats in grams)
4. Prep time in minutes
5. Cooking time in minutes

Return ONLY a JSON array with this exact structure (no markdown, no explanations):
[
  {
    "name": "Recipe Name",
    "instructions": "Step 1. Do this\nStep 2. Do that...",
    "calories": 500,
    "protein_g": 30,
    "carbs_g": 45,
    "fats_g": 15,
    "prep_time": 10,
    "cook_time": 20
  }
]

Make recipes realistic, simple, and delicious.`

// GenerateRecipes asks the model for three candidates. Transport and API
// failures wrap utils.ErrExternalService; a reply that is not a JSON array of
// recipes wraps utils.ErrParse.
func (g *LLMRecipeGenerator) GenerateRecipes(ctx context.Context, ingredients string, mealType models.MealType, servings int, targetPerServing float64) ([]RecipeCandidate, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("LLM api key not configured: %w", utils.ErrExternalService)
	}

	body, _ := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(recipePrompt, ingredients, mealType, servings, targetPerServing)},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request: %v: %w", err, utils.ErrExternalService)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read llm response: %v: %w", err, utils.ErrExternalService)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("llm api error (%d): %s: %w", resp.StatusCode, apiErr.Error.Message, utils.ErrExternalService)
		}
		return nil, fmt.Errorf("llm api error (%d): %w", resp.StatusCode, utils.ErrExternalService)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBytes, &chat); err != nil {
		return nil, fmt.Errorf("decode llm envelope: %v: %w", err, utils.ErrExternalService)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices: %w", utils.ErrExternalService)
	}
	return ParseRecipeCandidates(chat.Choices[0].Message.Content)
}

// StripCodeFence removes a surrounding ``` or ```json fence.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}

// ParseRecipeCandidates accepts a non-empty JSON array of named recipes.
func ParseRecipeCandidates(text string) ([]RecipeCandidate, error) {
	var out []RecipeCandidate
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &out); err != nil {
		return nil, fmt.Errorf("recipe json: %v: %w", err, utils.ErrParse)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("recipe json: no candidates: %w", utils.ErrParse)
	}
	for i, c := range out {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("recipe json: candidate %d has no name: %w", i, utils.ErrParse)
		}
	}
	return out, nil
}
