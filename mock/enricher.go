package mock

import (
	"context"

	"github.com/zinets/zinets"
)

var _ zinets.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of zinets.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, tokens []string) (map[string]*zinets.Character, error)
}

func (e *Enricher) Enrich(ctx context.Context, tokens []string) (map[string]*zinets.Character, error) {
	return e.EnrichFn(ctx, tokens)
}

var _ zinets.Dictionary = (*Dictionary)(nil)

// Dictionary is a mock implementation of zinets.Dictionary.
type Dictionary struct {
	LookupFn func(ctx context.Context, tokens []string) map[string]*zinets.Character
}

func (d *Dictionary) Lookup(ctx context.Context, tokens []string) map[string]*zinets.Character {
	return d.LookupFn(ctx, tokens)
}
