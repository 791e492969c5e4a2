package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/config"
	"github.com/zachariahbioto-bot/Nutrition/controllers"
	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/repository"
	"github.com/zachariahbioto-bot/Nutrition/routes"
	"github.com/zachariahbioto-bot/Nutrition/services"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// awsClients holds the optional AWS integrations. A nil field means the
// feature is switched off by configuration.
type awsClients struct {
	uploader *utils.S3Uploader
	mailer   *utils.Mailer
	sns      *sns.Client
	labels   *services.RekognitionService
}

func loadAWS(ctx context.Context, s *config.Settings) (*awsClients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(s.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	out := &awsClients{labels: services.NewRekognitionService(rekognition.NewFromConfig(cfg))}
	if s.S3Bucket != "" {
		base := s.CloudFrontURL
		if base == "" {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.S3Bucket, s.AWSRegion)
		}
		out.uploader = utils.NewS3Uploader(s3.NewFromConfig(cfg), s.S3Bucket, base)
	}
	if s.SESSender != "" {
		out.mailer = utils.NewMailer(ses.NewFromConfig(cfg), s.SESSender)
	}
	if s.SNSAppARN != "" {
		out.sns = sns.NewFromConfig(cfg)
	}
	logAWS(s, cfg)
	return out, nil
}

func logAWS(s *config.Settings, cfg aws.Config) {
	logger.Info("aws clients ready",
		zap.String("region", cfg.Region),
		zap.Bool("s3", s.S3Bucket != ""),
		zap.Bool("ses", s.SESSender != ""),
		zap.Bool("sns", s.SNSAppARN != ""),
	)
}

func buildRouter(s *config.Settings, db *gorm.DB, a *awsClients) *gin.Engine {
	if s.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	secret := []byte(s.JWTSecret)

	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	foods := repository.NewFoodRepository(db)
	meals := repository.NewMealLogRepository(db)
	recipes := repository.NewRecipeRepository(db)
	stats := repository.NewDailyStatsRepository(db)
	alerts := repository.NewAlertRepository(db)
	devices := repository.NewDeviceRepository(db)

	// nil interfaces, never typed nil pointers, for disabled features
	var (
		mailer   services.ResetMailer
		uploader services.ImageUploader
		snsAPI   services.SNSAPI
	)
	if a.mailer != nil {
		mailer = a.mailer
	}
	if a.uploader != nil {
		uploader = a.uploader
	}
	if a.sns != nil {
		snsAPI = a.sns
	}

	hub := services.NewRealtimeHub()
	push := services.NewPushService(devices, snsAPI, s.SNSAppARN)
	bus := services.NewAlertBus(alerts, hub, push)

	profileSvc := services.NewProfileService(profiles)
	statsSvc := services.NewDailyStatsService(profiles, meals, stats, bus)
	mealSvc := services.NewMealService(meals, foods, recipes, statsSvc)
	foodSvc := services.NewFoodService(
		foods,
		services.NewUSDAService(s.USDAKey, s.USDABaseURL),
		services.NewImageService(s.UnsplashKey, s.UnsplashBaseURL),
		uploader,
		a.labels,
	)
	recipeSvc := services.NewRecipeService(
		recipes,
		profiles,
		services.NewLLMRecipeGenerator(s.LLMKey, s.LLMBaseURL, s.LLMModel, s.LLMTimeout),
		services.NewCandidateSlots(0),
		mealSvc,
	)

	ctl := routes.Controllers{
		Auth:          controllers.NewAuthController(services.NewAuthService(users, mailer, secret)),
		Profile:       controllers.NewProfileController(profileSvc),
		Food:          controllers.NewFoodController(foodSvc),
		Meal:          controllers.NewMealController(mealSvc),
		Stats:         controllers.NewStatsController(services.NewDashboardService(profileSvc, meals, statsSvc, stats), statsSvc),
		Recipe:        controllers.NewRecipeController(recipeSvc),
		Device:        controllers.NewDeviceController(push),
		Notifications: controllers.NewNotificationController(push, bus),
		Realtime:      controllers.NewRealtimeController(hub),
	}
	if s.Env != "production" {
		ctl.Dev = controllers.NewDevController(push, uploader)
	}
	return routes.SetupRouter(secret, ctl)
}
