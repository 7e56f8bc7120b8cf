package gemini

import (
	"context"
	"fmt"

	"github.com/zinets/zinets"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ zinets.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes enrichment prompts offline with the local Gemini
// tokenizer. Counts include the system instruction Enricher sends with
// every request.
type TokenCounter struct {
	tok    *tokenizer.LocalTokenizer
	config *genai.CountTokensConfig
}

// NewTokenCounter creates a TokenCounter using the vocabulary of model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load %s tokenizer: %w", model, err)
	}
	return &TokenCounter{
		tok:    tok,
		config: &genai.CountTokensConfig{SystemInstruction: BuildConfig().SystemInstruction},
	}, nil
}

// CountTokens returns the input tokens of a request carrying prompt. An
// empty prompt is never sent and counts as zero.
func (tc *TokenCounter) CountTokens(_ context.Context, prompt string) (int, error) {
	if prompt == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(prompt, "user")}, tc.config)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return int(result.TotalTokens), nil
}
