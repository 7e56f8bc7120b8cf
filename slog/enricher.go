package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/zinets/zinets"
)

// Ensure LoggingEnricher implements zinets.Enricher.
var _ zinets.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with request logging.
type LoggingEnricher struct {
	next   zinets.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next zinets.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the request.
func (e *LoggingEnricher) Enrich(ctx context.Context, tokens []string) (records map[string]*zinets.Character, err error) {
	defer func(begin time.Time) {
		e.logger.Info("enrich",
			"requested", len(tokens),
			"resolved", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, tokens)
}

// Ensure LoggingDictionary implements zinets.Dictionary.
var _ zinets.Dictionary = (*LoggingDictionary)(nil)

// LoggingDictionary wraps a Dictionary and logs how many records were
// placeholders.
type LoggingDictionary struct {
	next   zinets.Dictionary
	logger *slog.Logger
}

// NewLoggingDictionary creates a new LoggingDictionary.
func NewLoggingDictionary(next zinets.Dictionary, logger *slog.Logger) *LoggingDictionary {
	return &LoggingDictionary{next: next, logger: logger}
}

// Lookup delegates to the wrapped dictionary and logs the outcome.
func (d *LoggingDictionary) Lookup(ctx context.Context, tokens []string) (records map[string]*zinets.Character) {
	defer func(begin time.Time) {
		var placeholders int
		for _, c := range records {
			if c.IsPlaceholder() {
				placeholders++
			}
		}
		d.logger.Info("lookup",
			"tokens", len(tokens),
			"placeholders", placeholders,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Lookup(ctx, tokens)
}
