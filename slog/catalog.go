// Package slog provides logging decorators for the pokedex service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pokedex"
)

// Ensure LoggingCatalogService implements pokedex.CatalogService.
var _ pokedex.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with operation logging.
type LoggingCatalogService struct {
	next   pokedex.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next pokedex.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// ListReferences delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) ListReferences(ctx context.Context) (refs []pokedex.Reference, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list references",
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListReferences(ctx)
}

// Clear delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) Clear() bool {
	cleared := s.next.Clear()
	s.logger.Info("clear catalog cache", "cleared", cleared)
	return cleared
}
