package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldRunID    = "run_id"
	FieldCommand  = "command"
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldFetcher  = "fetch_provider"
)

type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithRun tags every entry of one invocation so concurrent runs can be told apart.
func WithRun(logger *zap.Logger, runID, command string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldCommand, Value: command},
	)...)
}

func WithAI(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)...)
}
