package mock

import (
	"context"

	"github.com/zinets/zinets"
)

var _ zinets.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of zinets.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
