package logger

import (
	"testing"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_JSONFormatterAndLevel(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}}

	log := New(cfg)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNew_FallsBackToInfo(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "chatty", Format: "text"}}

	log := New(cfg)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
