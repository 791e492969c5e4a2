package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

type fakeSearcher struct {
	queries []string
}

func (f *fakeSearcher) SearchFoods(_ context.Context, q string, page, pageSize int) FoodSearchResult {
	f.queries = append(f.queries, q)
	return FoodSearchResult{
		Items:      []FoodCandidate{{USDAID: 1, Name: q + ", raw", Calories: 50}},
		TotalCount: 1, Page: page, PageSize: pageSize,
	}
}

type fakeImages struct{}

func (fakeImages) GetImageURL(_ context.Context, name string) string { return "https://img/" + name }

type fakeUploader struct {
	prefix string
	err    error
}

func (f *fakeUploader) UploadBase64Image(_ context.Context, _, prefix string) (string, error) {
	f.prefix = prefix
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn/" + prefix + ".png", nil
}

type fakeLabels struct {
	labels []string
	err    error
}

func (f fakeLabels) RecognizeLabels(context.Context, string) ([]string, error) {
	return f.labels, f.err
}

func newFoodSvc(foods *memFoods, uploader ImageUploader, labels LabelDetector) (*FoodService, *fakeSearcher) {
	s := &fakeSearcher{}
	return NewFoodService(foods, s, fakeImages{}, uploader, labels), s
}

func TestFoodService_Search(t *testing.T) {
	foods := newMemFoods(
		models.Food{Name: "Brown Rice"},
		models.Food{Name: "Rice cake"},
		models.Food{Name: "Lentils"},
	)
	svc, usda := newFoodSvc(foods, nil, nil)
	ctx := context.Background()

	res, err := svc.Search(ctx, "rice", 0)
	require.NoError(t, err)
	assert.Len(t, res.Local, 2)
	assert.Len(t, res.USDA.Items, 1)
	assert.Equal(t, 1, res.USDA.Page)
	assert.Equal(t, searchPageSize, res.USDA.PageSize)

	res, err = svc.Search(ctx, "   ", 1)
	require.NoError(t, err)
	assert.Empty(t, res.Local)
	assert.Empty(t, res.USDA.Items)
	assert.Equal(t, []string{"rice"}, usda.queries)
}

func TestFoodService_Import(t *testing.T) {
	foods := newMemFoods(models.Food{Name: "Banana, raw"})
	svc, _ := newFoodSvc(foods, nil, nil)
	ctx := context.Background()

	_, err := svc.Import(ctx, ImportFoodInput{Name: "BANANA, RAW", Calories: 89})
	assert.ErrorIs(t, err, utils.ErrConflict)

	f, err := svc.Import(ctx, ImportFoodInput{
		Name: "Apple, raw", USDAID: 171688, Calories: 52, ProteinG: 0.3, CarbsG: 13.8, FatsG: 0.2,
		FiberG: ptr(2.4), SugarG: ptr(0.0),
	})
	require.NoError(t, err)
	assert.True(t, f.IsVerified)
	assert.Equal(t, "100g", f.ServingSize)
	assert.Equal(t, "171688", f.USDAID)
	assert.Equal(t, "https://img/Apple, raw", f.ImageURL)
	assert.Equal(t, 2.4, *f.FiberG)
	assert.Nil(t, f.SugarG)

	_, err = svc.Import(ctx, ImportFoodInput{Name: "Bad", Calories: -1})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestFoodService_CreateCustom(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and photo", func(t *testing.T) {
		up := &fakeUploader{}
		svc, _ := newFoodSvc(newMemFoods(), up, nil)
		f, err := svc.CreateCustom(ctx, 9, CustomFoodInput{Name: "Grandma's stew", Calories: 140, ImageBase64: "data:image/png;base64,AA=="})
		require.NoError(t, err)
		assert.False(t, f.IsVerified)
		assert.Equal(t, "Custom", f.Category)
		assert.Equal(t, "100g", f.ServingSize)
		assert.Equal(t, "foods/custom/9", up.prefix)
		assert.Equal(t, "https://cdn/foods/custom/9.png", f.ImageURL)
	})

	t.Run("upload failure keeps food", func(t *testing.T) {
		svc, _ := newFoodSvc(newMemFoods(), &fakeUploader{err: errors.New("s3 down")}, nil)
		f, err := svc.CreateCustom(ctx, 9, CustomFoodInput{Name: "Stew", ImageBase64: "data:image/png;base64,AA=="})
		require.NoError(t, err)
		assert.Empty(t, f.ImageURL)
	})

	t.Run("name required", func(t *testing.T) {
		svc, _ := newFoodSvc(newMemFoods(), nil, nil)
		_, err := svc.CreateCustom(ctx, 9, CustomFoodInput{Name: " "})
		assert.ErrorIs(t, err, utils.ErrValidation)
	})
}

func TestFoodService_Recognize(t *testing.T) {
	ctx := context.Background()

	svc, usda := newFoodSvc(newMemFoods(), nil, fakeLabels{labels: []string{"Banana", "Fruit"}})
	res, err := svc.Recognize(ctx, "data:image/jpeg;base64,AA==")
	require.NoError(t, err)
	assert.Equal(t, "Banana", res.Query)
	assert.Equal(t, []string{"Banana"}, usda.queries)
	assert.Len(t, res.USDA.Items, 1)

	svc, _ = newFoodSvc(newMemFoods(), nil, fakeLabels{})
	res, err = svc.Recognize(ctx, "data:image/jpeg;base64,AA==")
	require.NoError(t, err)
	assert.Empty(t, res.USDA.Items)

	svc, _ = newFoodSvc(newMemFoods(), nil, nil)
	_, err = svc.Recognize(ctx, "data:image/jpeg;base64,AA==")
	assert.ErrorIs(t, err, utils.ErrExternalService)
}

func TestFoodService_Get(t *testing.T) {
	svc, _ := newFoodSvc(newMemFoods(models.Food{Name: "Oats"}), nil, nil)
	f, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Oats", f.Name)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
