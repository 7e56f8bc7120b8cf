package mock

import (
	"context"

	"github.com/zinets/zinets"
)

var _ zinets.CharacterService = (*CharacterService)(nil)

// CharacterService is a mock implementation of zinets.CharacterService.
type CharacterService struct {
	FindCharacterFn       func(ctx context.Context, token string) (*zinets.Character, error)
	FindCharactersFn      func(ctx context.Context, filter zinets.CharacterFilter) ([]*zinets.Character, error)
	SaveCharacterFn       func(ctx context.Context, c *zinets.Character) error
	DeactivateCharacterFn func(ctx context.Context, token, provider, model string) error
	StatsFn               func(ctx context.Context) (*zinets.CacheStats, error)
}

func (s *CharacterService) FindCharacter(ctx context.Context, token string) (*zinets.Character, error) {
	return s.FindCharacterFn(ctx, token)
}

func (s *CharacterService) FindCharacters(ctx context.Context, filter zinets.CharacterFilter) ([]*zinets.Character, error) {
	return s.FindCharactersFn(ctx, filter)
}

func (s *CharacterService) SaveCharacter(ctx context.Context, c *zinets.Character) error {
	return s.SaveCharacterFn(ctx, c)
}

func (s *CharacterService) DeactivateCharacter(ctx context.Context, token, provider, model string) error {
	return s.DeactivateCharacterFn(ctx, token, provider, model)
}

func (s *CharacterService) Stats(ctx context.Context) (*zinets.CacheStats, error) {
	return s.StatsFn(ctx)
}
