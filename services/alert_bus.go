package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"go.uber.org/zap"
)

const alertListLimit = 50

type Broadcaster interface {
	Broadcast(userID uint, payload any)
}

type Pusher interface {
	PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string)
}

// AlertBus fans stats events out to storage, open websockets and push.
// rt and push may be nil.
type AlertBus struct {
	alerts AlertStore
	rt     Broadcaster
	push   Pusher
}

func NewAlertBus(alerts AlertStore, rt Broadcaster, push Pusher) *AlertBus {
	return &AlertBus{alerts: alerts, rt: rt, push: push}
}

func (b *AlertBus) Emit(ctx context.Context, userID uint, typ, message string, date time.Time) (*models.Alert, error) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, Date: date, CreatedAt: time.Now()}
	if err := b.alerts.Create(ctx, a); err != nil {
		return nil, err
	}

	if b.rt != nil {
		b.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.push != nil {
		b.push.PushToUser(ctx, userID, "Nutrition alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
	return a, nil
}

func (b *AlertBus) StatsUpdated(userID uint, s *models.DailyStats) {
	if b.rt == nil {
		return
	}
	b.rt.Broadcast(userID, map[string]any{
		"kind":  "stats.updated",
		"stats": s,
	})
}

// CheckCalories emits a warning the first time a day's total moves from at or
// under target to over it. A zero target never alerts.
func (b *AlertBus) CheckCalories(ctx context.Context, prevTotal float64, s *models.DailyStats) {
	if s.TargetCalories <= 0 || prevTotal > s.TargetCalories || s.TotalCalories <= s.TargetCalories {
		return
	}
	msg := fmt.Sprintf("You have gone over your %.0f kcal target for %s (%.0f kcal logged).",
		s.TargetCalories, s.Date.Format("2006-01-02"), s.TotalCalories)
	if _, err := b.Emit(ctx, s.UserID, "warning", msg, s.Date); err != nil {
		logger.Error("persist alert", zap.Uint("user_id", s.UserID), zap.Error(err))
	}
}

func (b *AlertBus) List(ctx context.Context, userID uint) ([]models.Alert, error) {
	return b.alerts.ListByUser(ctx, userID, alertListLimit)
}
