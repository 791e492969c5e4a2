package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
)

type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	devices     DeviceStore
	sns         SNSAPI
	platformArn string
}

func NewPushService(devices DeviceStore, client SNSAPI, platformArn string) *PushService {
	return &PushService{devices: devices, sns: client, platformArn: platformArn}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device token.
// Re-registering the same token updates the stored row in place.
func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, fmt.Errorf("unknown platform %q: %w", platform, utils.ErrValidation)
	}
	if p.platformArn == "" || p.sns == nil {
		return nil, fmt.Errorf("push platform not configured: %w", utils.ErrExternalService)
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("create endpoint: %v: %w", err, utils.ErrExternalService)
	}

	hash := tokenHash(token)
	dev, err := p.devices.FindByTokenHash(ctx, userID, hash)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		dev = &models.UserDevice{UserID: userID, TokenHash: hash, Enabled: true}
	case err != nil:
		return nil, err
	}
	dev.Platform = platform
	dev.EndpointARN = aws.ToString(out.EndpointArn)
	dev.UpdatedAt = time.Now()

	if err := p.devices.Save(ctx, dev); err != nil {
		return nil, err
	}
	return dev, nil
}

func (p *PushService) SetNotifications(ctx context.Context, userID uint, enabled bool) error {
	return p.devices.SetEnabled(ctx, userID, enabled)
}

// PushToUser is best effort: failures are logged, never returned.
func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	if p.sns == nil {
		return
	}
	endpoints, err := p.devices.ListEnabled(ctx, userID)
	if err != nil {
		logger.Warn("list push endpoints", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if len(endpoints) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	apns, _ := json.Marshal(map[string]any{
		"aps":  map[string]any{"alert": map[string]string{"title": title, "body": body}},
		"data": data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
		"APNS":    string(apns),
	})

	for _, d := range endpoints {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			logger.Warn("sns publish", zap.Uint("device_id", d.ID), zap.Error(err))
		}
	}
}
