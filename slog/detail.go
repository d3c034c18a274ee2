package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pokedex"
)

// Ensure LoggingDetailService implements pokedex.DetailService.
var _ pokedex.DetailService = (*LoggingDetailService)(nil)

// LoggingDetailService wraps a DetailService with operation logging.
type LoggingDetailService struct {
	next   pokedex.DetailService
	logger *slog.Logger
}

// NewLoggingDetailService creates a new LoggingDetailService.
func NewLoggingDetailService(next pokedex.DetailService, logger *slog.Logger) *LoggingDetailService {
	return &LoggingDetailService{next: next, logger: logger}
}

// GetDetails delegates to the wrapped service and logs the operation.
func (s *LoggingDetailService) GetDetails(ctx context.Context, ref pokedex.Reference) (details *pokedex.Details, err error) {
	defer func(begin time.Time) {
		s.logger.Info("get details",
			"number", ref.Number,
			"name", ref.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetDetails(ctx, ref)
}
