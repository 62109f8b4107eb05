// Package logging builds the zap logger used across commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BielosX/wombat/poke-lookup/src/config"
)

// New logs to stderr in the development console format, or as JSON to a
// rotating file when cfg.File is set. The console stays free of log noise
// below warn unless the level is lowered.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	if cfg.File == "" {
		return build(os.Stderr, zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), level), nil
	}
	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = 10
	}
	maxFiles := cfg.MaxFiles
	if maxFiles == 0 {
		maxFiles = 5
	}
	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     30,
		Compress:   true,
	}
	return build(rotating, zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), level), nil
}

func build(w io.Writer, encoder zapcore.Encoder, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.FatalLevel))
}
