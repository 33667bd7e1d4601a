package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Entries go to stderr so that stdout stays
// free for the interactive menu.
func New(json bool, debug bool) (*zap.Logger, error) {
	logger, err := newConfig(json, debug).Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newConfig(json bool, debug bool) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	return zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !debug,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
}
