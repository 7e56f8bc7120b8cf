// Package enrich resolves the leaf tokens of a network into dictionary
// records, reading through the character cache and falling back to a
// remote enricher for cache misses.
package enrich

import (
	"context"
	"strings"
	"sync"

	"github.com/zinets/zinets"
	"github.com/zinets/zinets/bloom"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultChunkSize is the number of tokens sent per enrichment request.
	DefaultChunkSize = 10

	// bloomFalsePositiveRate sizes the cache prefilter.
	bloomFalsePositiveRate = 0.01
)

// Compile-time interface verification.
var _ zinets.Dictionary = (*Service)(nil)

// Service implements zinets.Dictionary. It is safe for concurrent use once
// its fields are set.
type Service struct {
	// Characters is the cache. Nil disables caching.
	Characters zinets.CharacterService

	// Enricher resolves cache misses. Nil makes the service cache-only.
	Enricher zinets.Enricher

	// UseCache enables cache reads and writes.
	UseCache bool

	// ChunkSize bounds the tokens per enrichment request.
	// Defaults to DefaultChunkSize.
	ChunkSize int

	// Concurrency bounds the enrichment requests in flight. Defaults to 1.
	Concurrency int

	// Progress, if set, receives events as lookups proceed.
	Progress ProgressFunc

	loadOnce sync.Once
	known    *bloom.Filter
	flights  singleflight.Group
	mu       sync.Mutex
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressCacheChecked reports cache hits in Completed out of Total tokens.
	ProgressCacheChecked ProgressType = iota
	// ProgressChunkDone reports a finished chunk; Tokens lists those still
	// unresolved after it.
	ProgressChunkDone
	// ProgressChunkFailed reports a failed batch request; its tokens are
	// retried one by one.
	ProgressChunkFailed
	// ProgressPlaceholder reports tokens that received placeholder records.
	ProgressPlaceholder
)

// ProgressEvent reports progress during a lookup.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Tokens    []string
	Error     error
}

// ProgressFunc is a callback for reporting lookup progress. Calls are
// serialized.
type ProgressFunc func(event ProgressEvent)

// Lookup returns one record per distinct token. Cached records are used
// first; misses are enriched in chunks, tokens a batch did not resolve are
// retried individually, and anything still unresolved gets a placeholder.
// Resolved records are written back to the cache.
func (s *Service) Lookup(ctx context.Context, tokens []string) map[string]*zinets.Character {
	tokens = distinct(tokens)
	records := make(map[string]*zinets.Character, len(tokens))

	missing := s.lookupCached(ctx, tokens, records)

	if len(missing) > 0 && s.Enricher != nil {
		s.enrichMissing(ctx, missing, records)
	}

	var placeholders []string
	for _, token := range tokens {
		if _, ok := records[token]; !ok {
			records[token] = zinets.Placeholder(token)
			placeholders = append(placeholders, token)
		}
	}
	if len(placeholders) > 0 {
		s.report(ProgressEvent{Type: ProgressPlaceholder, Completed: len(placeholders), Total: len(tokens), Tokens: placeholders})
	}

	return records
}

func (s *Service) cacheEnabled() bool {
	return s.UseCache && s.Characters != nil
}

// lookupCached fills records from the cache and returns the tokens it could
// not find, in order.
func (s *Service) lookupCached(ctx context.Context, tokens []string, records map[string]*zinets.Character) []string {
	if !s.cacheEnabled() {
		return tokens
	}
	known := s.cachedTokens(ctx)

	var missing []string
	for _, token := range tokens {
		if known != nil && !known.Test(token) {
			missing = append(missing, token)
			continue
		}
		c, err := s.Characters.FindCharacter(ctx, token)
		if err != nil || c.IsPlaceholder() {
			missing = append(missing, token)
			continue
		}
		records[token] = c
	}

	s.report(ProgressEvent{Type: ProgressCacheChecked, Completed: len(tokens) - len(missing), Total: len(tokens)})
	return missing
}

// cachedTokens returns a filter of every active cached token, loaded once.
// It returns nil when the cache could not be listed.
func (s *Service) cachedTokens(ctx context.Context) *bloom.Filter {
	s.loadOnce.Do(func() {
		cached, err := s.Characters.FindCharacters(ctx, zinets.CharacterFilter{ActiveOnly: true})
		if err != nil {
			return
		}
		known := bloom.NewFilter(uint(len(cached))*2+64, bloomFalsePositiveRate)
		for _, c := range cached {
			known.Add(c.Token)
		}
		s.known = known
	})
	return s.known
}

func (s *Service) enrichMissing(ctx context.Context, missing []string, records map[string]*zinets.Character) {
	chunks := Chunk(missing, s.chunkSize())

	var mu sync.Mutex
	var done int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Concurrency, 1))
	for _, chunk := range chunks {
		g.Go(func() error {
			resolved := s.enrichChunk(gctx, chunk)

			mu.Lock()
			defer mu.Unlock()
			var unresolved []string
			for _, token := range chunk {
				if c, ok := resolved[token]; ok {
					records[token] = c
				} else {
					unresolved = append(unresolved, token)
				}
			}
			done++
			s.report(ProgressEvent{Type: ProgressChunkDone, Completed: done, Total: len(chunks), Tokens: unresolved})
			return nil
		})
	}
	_ = g.Wait()
}

// enrichChunk resolves a chunk with one batch request, then retries every
// token the batch left out on its own.
func (s *Service) enrichChunk(ctx context.Context, chunk []string) map[string]*zinets.Character {
	resolved := make(map[string]*zinets.Character, len(chunk))

	if len(chunk) > 1 {
		batch, err := s.enrich(ctx, chunk)
		if err != nil {
			s.report(ProgressEvent{Type: ProgressChunkFailed, Tokens: chunk, Error: err})
		}
		for token, c := range batch {
			resolved[token] = c
		}
	}

	for _, token := range chunk {
		if _, ok := resolved[token]; ok {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		single, err := s.enrich(ctx, []string{token})
		if err != nil {
			continue
		}
		if c, ok := single[token]; ok {
			resolved[token] = c
		}
	}

	return resolved
}

// enrich sends one request for tokens. Identical concurrent requests share
// a single call. Usable records are cached before they are returned.
func (s *Service) enrich(ctx context.Context, tokens []string) (map[string]*zinets.Character, error) {
	v, err, _ := s.flights.Do(strings.Join(tokens, "\x00"), func() (any, error) {
		records, err := s.Enricher.Enrich(ctx, tokens)
		if err != nil {
			return nil, err
		}
		usable := make(map[string]*zinets.Character, len(records))
		for _, token := range tokens {
			c, ok := records[token]
			if !ok || c == nil || c.IsPlaceholder() {
				continue
			}
			c.Token = token
			usable[token] = c
			s.store(ctx, c)
		}
		return usable, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]*zinets.Character), nil
}

// store writes c to the cache. Failures only cost a future cache hit.
func (s *Service) store(ctx context.Context, c *zinets.Character) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.Characters.SaveCharacter(ctx, c); err != nil {
		return
	}
	if s.known != nil {
		s.known.Add(c.Token)
	}
}

func (s *Service) chunkSize() int {
	if s.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return s.ChunkSize
}

func (s *Service) report(event ProgressEvent) {
	if s.Progress == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Progress(event)
}

// Chunk splits tokens into consecutive groups of at most size tokens.
func Chunk(tokens []string, size int) [][]string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var chunks [][]string
	for i := 0; i < len(tokens); i += size {
		chunks = append(chunks, tokens[i:min(i+size, len(tokens))])
	}
	return chunks
}

func distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
