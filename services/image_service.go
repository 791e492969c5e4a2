package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zachariahbioto-bot/Nutrition/logger"
	"go.uber.org/zap"
)

const (
	PlaceholderImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400"

	imageCacheTTL = 7 * 24 * time.Hour
	imageTimeout  = 5 * time.Second
)

// ImageService looks up a representative photo for a food on Unsplash.
type ImageService struct {
	accessKey string
	baseURL   string
	client    *http.Client
	cache     *cache.Cache
}

func NewImageService(accessKey, baseURL string) *ImageService {
	return &ImageService{
		accessKey: accessKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: imageTimeout},
		cache:     cache.New(imageCacheTTL, time.Hour),
	}
}

func imageCacheKey(foodName string) string {
	return "food_image_" + strings.ReplaceAll(strings.ToLower(foodName), " ", "_")
}

// GetImageURL returns the cached URL when present. Misses and provider errors
// fall back to PlaceholderImageURL, which is never cached.
func (s *ImageService) GetImageURL(ctx context.Context, foodName string) string {
	key := imageCacheKey(foodName)
	if v, ok := s.cache.Get(key); ok {
		return v.(string)
	}

	u, err := s.fetch(ctx, foodName)
	if err != nil {
		logger.Warn("unsplash lookup failed", zap.String("food", foodName), zap.Error(err))
		return PlaceholderImageURL
	}
	if u == "" {
		return PlaceholderImageURL
	}
	s.cache.Set(key, u, cache.DefaultExpiration)
	return u
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Small string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

func (s *ImageService) fetch(ctx context.Context, foodName string) (string, error) {
	params := url.Values{}
	params.Set("query", foodName+" food")
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")
	params.Set("client_id", s.accessKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash status %d", resp.StatusCode)
	}

	var out unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", nil
	}
	return out.Results[0].URLs.Small, nil
}
