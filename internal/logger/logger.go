package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the global zap logger. Production writes JSON, everything else
// uses the colored development console.
func Init(env string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		level.SetLevel(zap.DebugLevel)
	}
	cfg.Level = level

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("cfg.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(text string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return fmt.Errorf("unknown log level %q", text)
	}

	if lvl != level.Level() {
		level.SetLevel(lvl)
		zap.L().Info("log level changed", zap.Stringer("level", lvl))
	}

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
