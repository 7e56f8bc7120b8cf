package zinets

import (
	"context"
	"time"
)

// Placeholder field values used when no dictionary data could be obtained.
const (
	PlaceholderPronunciation = "Unknown"
	PlaceholderMeaning       = "Meaning not available"
	PlaceholderComposition   = "Composition not available"
)

// Character holds dictionary data for a single token of a network.
type Character struct {
	ID            string    `json:"id,omitempty"`
	Token         string    `json:"token"`
	Pronunciation string    `json:"pronunciation"`
	Meaning       string    `json:"meaning"`
	Composition   string    `json:"composition"`
	Examples      string    `json:"examples"`
	Provider      string    `json:"provider,omitempty"`
	Model         string    `json:"model,omitempty"`
	Active        bool      `json:"active"`
	Best          bool      `json:"best"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// Validate returns an error if the character contains invalid fields.
func (c *Character) Validate() error {
	if c.Token == "" {
		return Errorf(EINVALID, "character token required")
	}
	if c.Provider == "" {
		return Errorf(EINVALID, "character provider required")
	}
	if c.Model == "" {
		return Errorf(EINVALID, "character model required")
	}
	if c.IsPlaceholder() {
		return Errorf(EINVALID, "placeholder data for %q cannot be stored", c.Token)
	}
	return nil
}

// IsPlaceholder reports whether c carries placeholder rather than real data.
func (c *Character) IsPlaceholder() bool {
	return c.Pronunciation == PlaceholderPronunciation && c.Meaning == PlaceholderMeaning
}

// Placeholder returns the record handed out for a token when neither the
// cache nor the enricher could supply data.
func Placeholder(token string) *Character {
	return &Character{
		Token:         token,
		Pronunciation: PlaceholderPronunciation,
		Meaning:       PlaceholderMeaning,
		Composition:   PlaceholderComposition,
		Examples:      token + "语 - Example phrase 1<br>" + token + "文 - Example phrase 2",
	}
}

// Enricher fetches dictionary data for tokens from a remote source.
type Enricher interface {
	// Enrich returns data for as many of the tokens as it could resolve.
	// Tokens missing from the result were not resolved; the error reports
	// a failure of the whole request.
	Enrich(ctx context.Context, tokens []string) (map[string]*Character, error)
}

// Dictionary resolves every token it is given.
type Dictionary interface {
	// Lookup returns one record per token. Tokens that cannot be resolved
	// map to a Placeholder. Lookup never fails.
	Lookup(ctx context.Context, tokens []string) map[string]*Character
}

// CharacterService represents a service for managing cached characters.
type CharacterService interface {
	// FindCharacter returns the most recent active record marked best.
	// Returns ENOTFOUND if no such record exists.
	FindCharacter(ctx context.Context, token string) (*Character, error)

	// FindCharacters retrieves characters matching the filter.
	FindCharacters(ctx context.Context, filter CharacterFilter) ([]*Character, error)

	// SaveCharacter inserts or replaces the record keyed by token, provider
	// and model. The record is marked best only if no other best record
	// exists for the token.
	SaveCharacter(ctx context.Context, c *Character) error

	// DeactivateCharacter soft-deletes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeactivateCharacter(ctx context.Context, token, provider, model string) error

	// Stats summarizes the cache contents.
	Stats(ctx context.Context) (*CacheStats, error)
}

// CharacterFilter represents a filter for FindCharacters.
type CharacterFilter struct {
	Token    *string `json:"token"`
	Provider *string `json:"provider"`
	Model    *string `json:"model"`

	// ActiveOnly restricts results to records that were not deactivated.
	ActiveOnly bool `json:"activeOnly"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CacheStats summarizes cached characters.
type CacheStats struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Best       int            `json:"best"`
	ByProvider map[string]int `json:"byProvider"`
	ByModel    map[string]int `json:"byModel"`
	Recent     []*Character   `json:"recent"`
}
