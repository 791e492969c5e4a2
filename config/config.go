package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DatabaseSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxIdle  int
	MaxOpen  int
	LogSQL   bool
}

func (d DatabaseSettings) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type Settings struct {
	Env       string
	Port      string
	JWTSecret string

	Database DatabaseSettings

	USDAKey     string
	USDABaseURL string

	UnsplashKey     string
	UnsplashBaseURL string

	LLMKey     string
	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration

	AWSRegion     string
	S3Bucket      string
	CloudFrontURL string
	SESSender     string
	SNSAppARN     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.max_open", 20)
	v.SetDefault("db.log_sql", false)
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc/v1")
	v.SetDefault("unsplash.base_url", "https://api.unsplash.com")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", "10s")
	v.SetDefault("aws.region", "us-east-1")
}

// Load reads an optional .env file, then an optional config.yml, then the
// environment. Keys map to env vars with dots replaced by underscores
// (db.host -> DB_HOST).
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config.yml: %w", err)
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Settings {
	return &Settings{
		Env:       v.GetString("env"),
		Port:      v.GetString("port"),
		JWTSecret: v.GetString("jwt.secret"),
		Database: DatabaseSettings{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			MaxIdle:  v.GetInt("db.max_idle"),
			MaxOpen:  v.GetInt("db.max_open"),
			LogSQL:   v.GetBool("db.log_sql"),
		},
		USDAKey:         v.GetString("usda.api_key"),
		USDABaseURL:     v.GetString("usda.base_url"),
		UnsplashKey:     v.GetString("unsplash.access_key"),
		UnsplashBaseURL: v.GetString("unsplash.base_url"),
		LLMKey:          v.GetString("llm.api_key"),
		LLMBaseURL:      v.GetString("llm.base_url"),
		LLMModel:        v.GetString("llm.model"),
		LLMTimeout:      v.GetDuration("llm.timeout"),
		AWSRegion:       v.GetString("aws.region"),
		S3Bucket:        v.GetString("s3.bucket"),
		CloudFrontURL:   v.GetString("cloudfront.url"),
		SESSender:       v.GetString("ses.sender"),
		SNSAppARN:       v.GetString("sns.platform_app_arn"),
	}
}

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Food{},
		&models.Recipe{},
		&models.MealLog{},
		&models.DailyStats{},
		&models.Alert{},
		&models.UserDevice{},
	}
}

// InitDB opens the postgres connection and sizes its pool.
func InitDB(s DatabaseSettings) (*gorm.DB, error) {
	level := gormlogger.Silent
	if s.LogSQL {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(s.MaxIdle)
	sqlDB.SetMaxOpenConns(s.MaxOpen)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
