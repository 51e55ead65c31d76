package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBackend is the structured log field key for the generation backend name.
	FieldBackend = "backend"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "model"
)

// WithBackend annotates the logger with the generation backend and model so
// every entry from a backend carries both. A nil logger falls back to a
// no-op logger and blank values are omitted.
func WithBackend(logg *zap.Logger, backend, model string) *zap.Logger {
	if logg == nil {
		logg = zap.NewNop()
	}

	fields := make([]zap.Field, 0, 2)
	if backend = strings.TrimSpace(backend); backend != "" {
		fields = append(fields, zap.String(FieldBackend, backend))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	if len(fields) == 0 {
		return logg
	}
	return logg.With(fields...)
}
