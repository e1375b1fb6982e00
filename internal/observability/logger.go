package observability

import (
	"log/slog"

	"github.com/couchcryptid/disaster-census-report/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and tags
// every line with a fresh run ID. It also becomes the slog default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}
