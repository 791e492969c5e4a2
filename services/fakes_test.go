package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
)

type memUsers struct {
	mu    sync.Mutex
	next  uint
	users map[uint]*models.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[uint]*models.User{}} }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	u.ID = m.next
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memUsers) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ResetToken != "" && u.ResetToken == token })
}

func (m *memUsers) Save(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

type memProfiles struct {
	next     uint
	profiles map[uint]*models.Profile
	saves    int
}

func newMemProfiles() *memProfiles { return &memProfiles{profiles: map[uint]*models.Profile{}} }

func (m *memProfiles) FindByUserID(_ context.Context, userID uint) (*models.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memProfiles) Save(_ context.Context, p *models.Profile) error {
	if p.ID == 0 {
		m.next++
		p.ID = m.next
	}
	cp := *p
	m.profiles[p.UserID] = &cp
	m.saves++
	return nil
}

type memFoods struct {
	next  uint
	foods map[uint]*models.Food
}

func newMemFoods(foods ...models.Food) *memFoods {
	m := &memFoods{foods: map[uint]*models.Food{}}
	for i := range foods {
		_ = m.Create(context.Background(), &foods[i])
	}
	return m
}

func (m *memFoods) FindByID(_ context.Context, id uint) (*models.Food, error) {
	if f, ok := m.foods[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memFoods) SearchByName(_ context.Context, q string, limit int) ([]models.Food, error) {
	var out []models.Food
	for _, f := range m.foods {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(q)) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memFoods) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, f := range m.foods {
		if strings.EqualFold(f.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFoods) Create(_ context.Context, f *models.Food) error {
	if f.ID == 0 {
		m.next++
		f.ID = m.next
	}
	cp := *f
	m.foods[f.ID] = &cp
	return nil
}

type memMeals struct {
	next  uint
	meals map[uint]*models.MealLog
}

func newMemMeals() *memMeals { return &memMeals{meals: map[uint]*models.MealLog{}} }

func (m *memMeals) Create(_ context.Context, ml *models.MealLog) error {
	m.next++
	ml.ID = m.next
	cp := *ml
	m.meals[ml.ID] = &cp
	return nil
}

func (m *memMeals) FindByUserDate(_ context.Context, userID uint, date time.Time) ([]models.MealLog, error) {
	out := []models.MealLog{}
	for _, ml := range m.meals {
		if ml.UserID == userID && ml.MealDate.Equal(date) {
			out = append(out, *ml)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMeals) FindForUser(_ context.Context, userID, id uint) (*models.MealLog, error) {
	if ml, ok := m.meals[id]; ok && ml.UserID == userID {
		cp := *ml
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memMeals) Delete(_ context.Context, ml *models.MealLog) error {
	delete(m.meals, ml.ID)
	return nil
}

type memRecipes struct {
	next    uint
	recipes map[uint]*models.Recipe
	meals   *memMeals
}

func newMemRecipes(meals *memMeals) *memRecipes {
	return &memRecipes{recipes: map[uint]*models.Recipe{}, meals: meals}
}

func (m *memRecipes) Create(_ context.Context, r *models.Recipe) error {
	m.next++
	r.ID = m.next
	cp := *r
	m.recipes[r.ID] = &cp
	return nil
}

func (m *memRecipes) FindForUser(_ context.Context, userID, id uint) (*models.Recipe, error) {
	if r, ok := m.recipes[id]; ok && r.UserID == userID {
		cp := *r
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memRecipes) ListByUser(_ context.Context, userID uint) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, r := range m.recipes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memRecipes) Delete(_ context.Context, r *models.Recipe) error {
	if m.meals != nil {
		for _, ml := range m.meals.meals {
			if ml.RecipeID != nil && *ml.RecipeID == r.ID {
				ml.RecipeID = nil
			}
		}
	}
	delete(m.recipes, r.ID)
	return nil
}

type statsKey struct {
	user uint
	date time.Time
}

type memStats struct {
	next    uint
	rows    map[statsKey]*models.DailyStats
	upserts int
}

func newMemStats() *memStats { return &memStats{rows: map[statsKey]*models.DailyStats{}} }

func (m *memStats) Upsert(_ context.Context, s *models.DailyStats) error {
	k := statsKey{s.UserID, s.Date}
	if existing, ok := m.rows[k]; ok {
		s.ID = existing.ID
	} else {
		m.next++
		s.ID = m.next
	}
	cp := *s
	m.rows[k] = &cp
	m.upserts++
	return nil
}

func (m *memStats) Ensure(ctx context.Context, s *models.DailyStats) (*models.DailyStats, error) {
	k := statsKey{s.UserID, s.Date}
	if _, ok := m.rows[k]; !ok {
		m.next++
		s.ID = m.next
		cp := *s
		m.rows[k] = &cp
	}
	return m.Find(ctx, s.UserID, s.Date)
}

func (m *memStats) Find(_ context.Context, userID uint, date time.Time) (*models.DailyStats, error) {
	if r, ok := m.rows[statsKey{userID, date}]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (m *memStats) ListByUser(_ context.Context, userID uint) ([]models.DailyStats, error) {
	out := []models.DailyStats{}
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStats) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyStats, error) {
	all, _ := m.ListByUser(ctx, userID)
	out := []models.DailyStats{}
	for i := len(all) - 1; i >= 0; i-- {
		d := all[i].Date
		if !d.Before(from) && !d.After(to) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

type memAlerts struct {
	alerts []models.Alert
}

func (m *memAlerts) Create(_ context.Context, a *models.Alert) error {
	a.ID = uint(len(m.alerts) + 1)
	m.alerts = append(m.alerts, *a)
	return nil
}

func (m *memAlerts) ListByUser(_ context.Context, userID uint, limit int) ([]models.Alert, error) {
	out := []models.Alert{}
	for i := len(m.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		if m.alerts[i].UserID == userID {
			out = append(out, m.alerts[i])
		}
	}
	return out, nil
}

type recordedBroadcast struct {
	userID  uint
	payload map[string]any
}

type fakeBroadcaster struct {
	sent []recordedBroadcast
}

func (f *fakeBroadcaster) Broadcast(userID uint, payload any) {
	f.sent = append(f.sent, recordedBroadcast{userID, payload.(map[string]any)})
}

func (f *fakeBroadcaster) kinds() []string {
	var out []string
	for _, s := range f.sent {
		out = append(out, s.payload["kind"].(string))
	}
	return out
}

type fakePusher struct {
	bodies []string
}

func (f *fakePusher) PushToUser(_ context.Context, _ uint, _ string, body string, _ map[string]string) {
	f.bodies = append(f.bodies, body)
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func ptr[T any](v T) *T { return &v }

// seedProfile stores the 25/male/170/70/1.2 default with its derived targets.
func seedProfile(p *memProfiles, userID uint, goal models.Goal) *models.Profile {
	prof := models.NewDefaultProfile(userID)
	prof.Goal = goal
	utils.ApplyEnergyTargets(prof)
	_ = p.Save(context.Background(), prof)
	return prof
}
