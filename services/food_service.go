package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
)

const (
	searchPageSize   = 20
	localSearchLimit = 10
)

type FoodSearcher interface {
	SearchFoods(ctx context.Context, query string, page, pageSize int) FoodSearchResult
}

type ImageLookup interface {
	GetImageURL(ctx context.Context, foodName string) string
}

type ImageUploader interface {
	UploadBase64Image(ctx context.Context, dataURI, prefix string) (string, error)
}

type LabelDetector interface {
	RecognizeLabels(ctx context.Context, dataURI string) ([]string, error)
}

type FoodSearchResponse struct {
	Query string           `json:"query"`
	USDA  FoodSearchResult `json:"usda"`
	Local []models.Food    `json:"local"`
}

type RecognizeResponse struct {
	Labels []string         `json:"labels"`
	Query  string           `json:"query"`
	USDA   FoodSearchResult `json:"usda"`
}

// ImportFoodInput carries per-100 g values picked from a USDA search hit.
type ImportFoodInput struct {
	Name     string   `json:"name" binding:"required"`
	USDAID   int      `json:"usda_id"`
	Category string   `json:"category"`
	Calories float64  `json:"calories"`
	ProteinG float64  `json:"protein_g"`
	CarbsG   float64  `json:"carbs_g"`
	FatsG    float64  `json:"fats_g"`
	FiberG   *float64 `json:"fiber_g"`
	SugarG   *float64 `json:"sugar_g"`
	SodiumMg *float64 `json:"sodium_mg"`
}

type CustomFoodInput struct {
	Name        string  `json:"name" binding:"required"`
	ServingSize string  `json:"serving_size"`
	Category    string  `json:"category"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatsG       float64 `json:"fats_g"`
	ImageBase64 string  `json:"image_base64"`
}

type FoodService struct {
	foods    FoodStore
	usda     FoodSearcher
	images   ImageLookup
	uploader ImageUploader
	labels   LabelDetector
}

// NewFoodService wires the providers. uploader and labels may be nil when
// AWS is not configured.
func NewFoodService(foods FoodStore, usda FoodSearcher, images ImageLookup, uploader ImageUploader, labels LabelDetector) *FoodService {
	return &FoodService{foods: foods, usda: usda, images: images, uploader: uploader, labels: labels}
}

func nonNegative(vals ...float64) error {
	for _, v := range vals {
		if v < 0 {
			return fmt.Errorf("nutrient values must not be negative: %w", utils.ErrValidation)
		}
	}
	return nil
}

// zeroAsNil drops optional nutrients reported as zero.
func zeroAsNil(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// Search queries USDA and the local catalogue. An empty query returns nothing
// without calling out.
func (s *FoodService) Search(ctx context.Context, query string, page int) (*FoodSearchResponse, error) {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}
	resp := &FoodSearchResponse{
		Query: query,
		USDA:  FoodSearchResult{Items: []FoodCandidate{}, Page: page, PageSize: searchPageSize},
		Local: []models.Food{},
	}
	if query == "" {
		return resp, nil
	}

	resp.USDA = s.usda.SearchFoods(ctx, query, page, searchPageSize)
	local, err := s.foods.SearchByName(ctx, query, localSearchLimit)
	if err != nil {
		return nil, err
	}
	resp.Local = local
	return resp, nil
}

// Import copies a USDA food into the catalogue as verified. A food with the
// same name in any letter case is a conflict.
func (s *FoodService) Import(ctx context.Context, in ImportFoodInput) (*models.Food, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", utils.ErrValidation)
	}
	if err := nonNegative(in.Calories, in.ProteinG, in.CarbsG, in.FatsG); err != nil {
		return nil, err
	}
	exists, err := s.foods.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("food %q already exists: %w", in.Name, utils.ErrConflict)
	}

	f := &models.Food{
		Name:        in.Name,
		ServingSize: "100g",
		Calories:    in.Calories,
		ProteinG:    in.ProteinG,
		CarbsG:      in.CarbsG,
		FatsG:       in.FatsG,
		FiberG:      zeroAsNil(in.FiberG),
		SugarG:      zeroAsNil(in.SugarG),
		SodiumMg:    zeroAsNil(in.SodiumMg),
		Category:    in.Category,
		IsVerified:  true,
		ImageURL:    s.images.GetImageURL(ctx, in.Name),
	}
	if in.USDAID != 0 {
		f.USDAID = strconv.Itoa(in.USDAID)
	}
	if err := s.foods.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateCustom stores a user-defined, unverified food. A photo that fails to
// upload is dropped rather than failing the request.
func (s *FoodService) CreateCustom(ctx context.Context, userID uint, in CustomFoodInput) (*models.Food, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", utils.ErrValidation)
	}
	if err := nonNegative(in.Calories, in.ProteinG, in.CarbsG, in.FatsG); err != nil {
		return nil, err
	}
	if in.ServingSize == "" {
		in.ServingSize = "100g"
	}
	if in.Category == "" {
		in.Category = "Custom"
	}

	f := &models.Food{
		Name:        in.Name,
		ServingSize: in.ServingSize,
		Calories:    in.Calories,
		ProteinG:    in.ProteinG,
		CarbsG:      in.CarbsG,
		FatsG:       in.FatsG,
		Category:    in.Category,
		IsVerified:  false,
	}
	if in.ImageBase64 != "" && s.uploader != nil {
		url, err := s.uploader.UploadBase64Image(ctx, in.ImageBase64, fmt.Sprintf("foods/custom/%d", userID))
		if err != nil {
			logger.Warn("custom food photo upload failed", zap.Uint("user_id", userID), zap.Error(err))
		} else {
			f.ImageURL = url
		}
	}
	if err := s.foods.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Recognize labels a photo and searches USDA for the most confident label.
func (s *FoodService) Recognize(ctx context.Context, dataURI string) (*RecognizeResponse, error) {
	if s.labels == nil {
		return nil, fmt.Errorf("image recognition not configured: %w", utils.ErrExternalService)
	}
	labels, err := s.labels.RecognizeLabels(ctx, dataURI)
	if err != nil {
		return nil, err
	}
	out := &RecognizeResponse{
		Labels: labels,
		USDA:   FoodSearchResult{Items: []FoodCandidate{}, Page: 1, PageSize: searchPageSize},
	}
	if len(labels) == 0 {
		return out, nil
	}
	out.Query = labels[0]
	out.USDA = s.usda.SearchFoods(ctx, out.Query, 1, searchPageSize)
	return out, nil
}

func (s *FoodService) Get(ctx context.Context, id uint) (*models.Food, error) {
	return s.foods.FindByID(ctx, id)
}
