package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日誌設定
type Config struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	// Development: 使用開發模式 (console encoder)
	Development bool `yaml:"development"`
	// OutputPaths: 預設 stderr，避免與互動畫面混在一起
	OutputPaths []string `yaml:"output_paths"`
}

// New 根據設定建立 zap.Logger
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	return zapCfg.Build()
}
