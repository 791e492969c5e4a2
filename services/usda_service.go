package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
)

const usdaTimeout = 10 * time.Second

// usdaDataTypes are the FoodData Central datasets with lab-grade values.
var usdaDataTypes = []string{"Survey (FNDDS)", "Foundation", "SR Legacy"}

// FoodCandidate is a USDA search hit with nutrients per 100 g.
type FoodCandidate struct {
	USDAID   int      `json:"usda_id"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Calories float64  `json:"calories"`
	ProteinG float64  `json:"protein_g"`
	CarbsG   float64  `json:"carbs_g"`
	FatsG    float64  `json:"fats_g"`
	FiberG   *float64 `json:"fiber_g,omitempty"`
	SugarG   *float64 `json:"sugar_g,omitempty"`
	SodiumMg *float64 `json:"sodium_mg,omitempty"`
}

type FoodSearchResult struct {
	Items      []FoodCandidate `json:"items"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

type USDAService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewUSDAService(apiKey, baseURL string) *USDAService {
	return &USDAService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: usdaTimeout},
	}
}

type usdaSearchResponse struct {
	TotalHits int `json:"totalHits"`
	Foods     []struct {
		FdcID         int    `json:"fdcId"`
		Description   string `json:"description"`
		BrandOwner    string `json:"brandOwner"`
		FoodCategory  string `json:"foodCategory"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// SearchFoods never fails: any transport, status or decode problem is logged
// and an empty result comes back.
func (s *USDAService) SearchFoods(ctx context.Context, query string, page, pageSize int) FoodSearchResult {
	empty := FoodSearchResult{Items: []FoodCandidate{}, Page: 1, PageSize: pageSize}
	res, err := s.search(ctx, query, page, pageSize)
	if err != nil {
		logger.Warn("usda search failed", zap.String("query", query), zap.Error(err))
		return empty
	}
	return res
}

func (s *USDAService) search(ctx context.Context, query string, page, pageSize int) (FoodSearchResult, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("pageNumber", strconv.Itoa(page))
	for _, dt := range usdaDataTypes {
		params.Add("dataType", dt)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/foods/search?"+params.Encode(), nil)
	if err != nil {
		return FoodSearchResult{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return FoodSearchResult{}, fmt.Errorf("call usda: %v: %w", err, utils.ErrExternalService)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FoodSearchResult{}, fmt.Errorf("read usda response: %v: %w", err, utils.ErrExternalService)
	}
	if resp.StatusCode != http.StatusOK {
		return FoodSearchResult{}, fmt.Errorf("usda api error %d: %w", resp.StatusCode, utils.ErrExternalService)
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return FoodSearchResult{}, fmt.Errorf("decode usda json: %v: %w", err, utils.ErrExternalService)
	}

	items := make([]FoodCandidate, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		n := make(map[string]float64, len(f.FoodNutrients))
		for _, fn := range f.FoodNutrients {
			n[fn.NutrientName] = fn.Value
		}
		items = append(items, FoodCandidate{
			USDAID:   f.FdcID,
			Name:     f.Description,
			Brand:    f.BrandOwner,
			Category: f.FoodCategory,
			Calories: utils.Round1(n["Energy"]),
			ProteinG: utils.Round1(n["Protein"]),
			CarbsG:   utils.Round1(n["Carbohydrate, by difference"]),
			FatsG:    utils.Round1(n["Total lipid (fat)"]),
			FiberG:   optionalNutrient(n["Fiber, total dietary"]),
			SugarG:   optionalNutrient(n["Sugars, total including NLEA"]),
			SodiumMg: optionalNutrient(n["Sodium, Na"]),
		})
	}
	return FoodSearchResult{Items: items, TotalCount: sr.TotalHits, Page: page, PageSize: pageSize}, nil
}

// optionalNutrient treats a zero reading as "not reported".
func optionalNutrient(v float64) *float64 {
	if v == 0 {
		return nil
	}
	r := utils.Round1(v)
	return &r
}
