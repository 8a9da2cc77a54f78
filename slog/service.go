// Package slog provides logging decorators for pagemark domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkfold/pagemark"
)

// Ensure LoggingService implements pagemark.ConvertService.
var _ pagemark.ConvertService = (*LoggingService)(nil)

// LoggingService wraps a ConvertService with request-level logging.
type LoggingService struct {
	next   pagemark.ConvertService
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next pagemark.ConvertService, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// Convert logs the conversion outcome and delegates to the wrapped service.
func (s *LoggingService) Convert(ctx context.Context, rawURL string) (markdown string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("convert",
			"url", rawURL,
			"bytes", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, rawURL)
}
