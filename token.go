package zinets

import "context"

// TokenCounter counts model tokens in text, used to size enrichment prompts.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
