package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	s := fromViper(v)
	assert.Equal(t, "development", s.Env)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "localhost", s.Database.Host)
	assert.Equal(t, "disable", s.Database.SSLMode)
	assert.Equal(t, 10*time.Second, s.LLMTimeout)
	assert.Equal(t, "https://api.nal.usda.gov/fdc/v1", s.USDABaseURL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "nutrition")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LLM_TIMEOUT", "3s")

	s, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "db.internal", s.Database.Host)
	assert.Equal(t, "nutrition", s.Database.Name)
	assert.Equal(t, "s3cret", s.JWTSecret)
	assert.Equal(t, 3*time.Second, s.LLMTimeout)
}

func TestDSN(t *testing.T) {
	d := DatabaseSettings{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())
}

func TestModels(t *testing.T) {
	assert.Len(t, Models(), 8)
}
