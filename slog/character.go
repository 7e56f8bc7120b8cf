package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/zinets/zinets"
)

// Ensure LoggingCharacterService implements zinets.CharacterService.
var _ zinets.CharacterService = (*LoggingCharacterService)(nil)

// LoggingCharacterService wraps a CharacterService with debug logging.
type LoggingCharacterService struct {
	next   zinets.CharacterService
	logger *slog.Logger
}

// NewLoggingCharacterService creates a new LoggingCharacterService.
func NewLoggingCharacterService(next zinets.CharacterService, logger *slog.Logger) *LoggingCharacterService {
	return &LoggingCharacterService{next: next, logger: logger}
}

// FindCharacter delegates to the wrapped service. Cache misses are logged
// at debug level, other failures at info.
func (s *LoggingCharacterService) FindCharacter(ctx context.Context, token string) (c *zinets.Character, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if zinets.ErrorCode(err) == zinets.ENOTFOUND {
			level = slog.LevelDebug
		}
		s.logger.Log(ctx, level, "cache find",
			"token", token,
			"hit", err == nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindCharacter(ctx, token)
}

// FindCharacters delegates to the wrapped service and logs the operation.
func (s *LoggingCharacterService) FindCharacters(ctx context.Context, filter zinets.CharacterFilter) (characters []*zinets.Character, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache list",
			"count", len(characters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindCharacters(ctx, filter)
}

// SaveCharacter delegates to the wrapped service and logs the operation.
func (s *LoggingCharacterService) SaveCharacter(ctx context.Context, c *zinets.Character) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache save",
			"token", c.Token,
			"provider", c.Provider,
			"model", c.Model,
			"best", c.Best,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveCharacter(ctx, c)
}

// DeactivateCharacter delegates to the wrapped service and logs the operation.
func (s *LoggingCharacterService) DeactivateCharacter(ctx context.Context, token, provider, model string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache deactivate",
			"token", token,
			"provider", provider,
			"model", model,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeactivateCharacter(ctx, token, provider, model)
}

// Stats delegates to the wrapped service and logs the operation.
func (s *LoggingCharacterService) Stats(ctx context.Context) (stats *zinets.CacheStats, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache stats",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Stats(ctx)
}
