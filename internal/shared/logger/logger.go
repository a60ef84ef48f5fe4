package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controla o logger do console; Level vazio mantém o padrão do ambiente
type Options struct {
	ServiceName string
	Env         string // "local" usa o encoder de desenvolvimento
	Level       string // "debug", "info", "warn", "error"
}

func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Env == "local" {
		cfg = zap.NewDevelopmentConfig()
	}

	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// erros de upstream são esperados, stacktrace só a partir de Error
	cfg.DisableStacktrace = opts.Env != "local"

	return cfg.Build(
		zap.Fields(
			zap.String("service", opts.ServiceName),
			zap.String("env", opts.Env),
		),
	)
}
