package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rafabene/adboard-backend/internal/domain/ports"
)

// ZapLogger implementa ports.Logger usando zap
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// ParseLevel converte o nível textual da configuração; desconhecido vira info
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewZapLogger cria um novo logger.
// Em produção usa encoder JSON; nos demais ambientes, console colorido.
func NewZapLogger(level string, production bool) (ports.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{logger: logger.Sugar()}, nil
}

// NewNopLogger cria um logger que descarta tudo (útil em testes)
func NewNopLogger() ports.Logger {
	return &ZapLogger{logger: zap.NewNop().Sugar()}
}

// FromZap adapta um *zap.Logger existente
func FromZap(logger *zap.Logger) ports.Logger {
	return &ZapLogger{logger: logger.Sugar()}
}

func (l *ZapLogger) Info(msg string, args ...any) {
	l.logger.Infow(msg, args...)
}

func (l *ZapLogger) Error(msg string, args ...any) {
	l.logger.Errorw(msg, args...)
}

func (l *ZapLogger) Debug(msg string, args ...any) {
	l.logger.Debugw(msg, args...)
}

func (l *ZapLogger) Warn(msg string, args ...any) {
	l.logger.Warnw(msg, args...)
}

func (l *ZapLogger) With(args ...any) ports.Logger {
	return &ZapLogger{
		logger: l.logger.With(args...),
	}
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
