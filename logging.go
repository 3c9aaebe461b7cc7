// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigauth // import "blitznote.com/src/node.sigauth"

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects how and where to log.
type LogConfig struct {
	Level      string // debug, info, warn, error
	Encoding   string // json or console
	OutputPath string // file path or "stdout"
}

// NewLogger creates a logger for the node.
//
// Empty fields of 'cfg' get defaults: info, json, and stdout.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zap.DebugLevel
	case "info", "":
		level = zap.InfoLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	switch cfg.Encoding {
	case "":
		cfg.Encoding = "json"
	case "json", "console":
	default:
		return nil, fmt.Errorf("invalid log encoding: %s", cfg.Encoding)
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "stdout"
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         cfg.Encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{cfg.OutputPath},
		ErrorOutputPaths: []string{cfg.OutputPath},
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	logger, err := zapCfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
