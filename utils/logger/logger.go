package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

var global atomic.Pointer[zap.Logger]

// New builds the process logger. Production emits JSON at info level,
// everything else gets the colored development console encoder.
func New(goEnv string) (*zap.Logger, error) {
	var cfg zap.Config
	if goEnv == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build(zap.Fields(zap.String("service", "facet-api")))
	if err != nil {
		return nil, err
	}
	return l, nil
}

// SetGlobal replaces the logger returned by L.
func SetGlobal(l *zap.Logger) {
	global.Store(l)
	zap.ReplaceGlobals(l)
}

// L returns the process logger, a no-op logger until SetGlobal is called.
func L() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// GormLevel maps the environment to the SQL log level.
func GormLevel(goEnv string) gormlogger.LogLevel {
	switch goEnv {
	case "production":
		return gormlogger.Error
	case "test":
		return gormlogger.Silent
	default:
		return gormlogger.Info
	}
}
