// Package bloom provides a probabilistic set of cached tokens, used to skip
// cache queries for tokens that were never stored.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter of tokens. It is safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected tokens
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Add adds a token to the filter.
func (f *Filter) Add(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(token)
}

// Test returns true if the token might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(token string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(token)
}

// EstimatedCount returns the approximate number of tokens in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
