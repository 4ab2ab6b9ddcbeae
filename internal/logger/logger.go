package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a zap logger for the given environment and installs it as the
// global logger returned by zap.L().
func Init(environment string) error {
	var conf zap.Config
	switch environment {
	case "production":
		conf = zap.NewProductionConfig()
	case "test":
		conf = zap.NewDevelopmentConfig()
		conf.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	default:
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
