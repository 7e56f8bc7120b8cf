package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinets/zinets"
	"github.com/zinets/zinets/sqlite"
)

func newCharacter(token, model string) *zinets.Character {
	return &zinets.Character{
		Token:         token,
		Pronunciation: "rì",
		Meaning:       "sun; day",
		Composition:   "pictograph",
		Examples:      "日子<br>生日",
		Provider:      "Google",
		Model:         model,
	}
}

func TestCharacterService_SaveCharacter(t *testing.T) {
	t.Parallel()

	t.Run("first record becomes best", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		c := newCharacter("日", "gemini-2.5-flash")

		require.NoError(t, svc.SaveCharacter(context.Background(), c))

		assert.NotEmpty(t, c.ID)
		assert.True(t, c.Active)
		assert.True(t, c.Best)
		assert.False(t, c.CreatedAt.IsZero())
		assert.False(t, c.UpdatedAt.IsZero())
	})

	t.Run("record from another model is not best", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "gemini-2.5-flash")))

		other := newCharacter("日", "gemini-2.5-pro")
		require.NoError(t, svc.SaveCharacter(ctx, other))

		assert.False(t, other.Best)
	})

	t.Run("saving again replaces data and keeps best", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		first := newCharacter("日", "gemini-2.5-flash")
		require.NoError(t, svc.SaveCharacter(ctx, first))

		second := newCharacter("日", "gemini-2.5-flash")
		second.Meaning = "sun"
		require.NoError(t, svc.SaveCharacter(ctx, second))

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.Best)

		found, err := svc.FindCharacter(ctx, "日")
		require.NoError(t, err)
		assert.Equal(t, "sun", found.Meaning)

		all, err := svc.FindCharacters(ctx, zinets.CharacterFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("rejects placeholder data", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		c := zinets.Placeholder("日")
		c.Provider = "Google"
		c.Model = "gemini-2.5-flash"

		err := svc.SaveCharacter(context.Background(), c)

		require.Error(t, err)
		assert.Equal(t, zinets.EINVALID, zinets.ErrorCode(err))
	})

	t.Run("rejects missing provider", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		c := newCharacter("日", "gemini-2.5-flash")
		c.Provider = ""

		err := svc.SaveCharacter(context.Background(), c)

		require.Error(t, err)
		assert.Equal(t, zinets.EINVALID, zinets.ErrorCode(err))
	})
}

func TestCharacterService_FindCharacter(t *testing.T) {
	t.Parallel()

	t.Run("returns best record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		best := newCharacter("日", "gemini-2.5-flash")
		require.NoError(t, svc.SaveCharacter(ctx, best))
		other := newCharacter("日", "gemini-2.5-pro")
		other.Meaning = "other"
		require.NoError(t, svc.SaveCharacter(ctx, other))

		found, err := svc.FindCharacter(ctx, "日")

		require.NoError(t, err)
		assert.Equal(t, best.ID, found.ID)
		assert.Equal(t, "sun; day", found.Meaning)
		assert.Equal(t, "Google", found.Provider)
		assert.True(t, found.Active)
		assert.True(t, found.Best)
	})

	t.Run("returns ENOTFOUND when not cached", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))

		_, err := svc.FindCharacter(context.Background(), "日")

		require.Error(t, err)
		assert.Equal(t, zinets.ENOTFOUND, zinets.ErrorCode(err))
	})
}

func TestCharacterService_FindCharacters(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewCharacterService(setupTestDB(t))
	ctx := context.Background()
	for _, token := range []string{"日", "白", "伯"} {
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter(token, "gemini-2.5-flash")))
	}
	require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "gemini-2.5-pro")))
	require.NoError(t, svc.DeactivateCharacter(ctx, "白", "Google", "gemini-2.5-flash"))

	t.Run("returns all with empty filter", func(t *testing.T) {
		t.Parallel()

		all, err := svc.FindCharacters(ctx, zinets.CharacterFilter{})

		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("filters by token", func(t *testing.T) {
		t.Parallel()

		token := "日"
		found, err := svc.FindCharacters(ctx, zinets.CharacterFilter{Token: &token})

		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("filters by model", func(t *testing.T) {
		t.Parallel()

		model := "gemini-2.5-pro"
		found, err := svc.FindCharacters(ctx, zinets.CharacterFilter{Model: &model})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "日", found[0].Token)
	})

	t.Run("filters by provider", func(t *testing.T) {
		t.Parallel()

		provider := "Anthropic"
		found, err := svc.FindCharacters(ctx, zinets.CharacterFilter{Provider: &provider})

		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("excludes inactive records", func(t *testing.T) {
		t.Parallel()

		found, err := svc.FindCharacters(ctx, zinets.CharacterFilter{ActiveOnly: true})

		require.NoError(t, err)
		assert.Len(t, found, 3)
		for _, c := range found {
			assert.NotEqual(t, "白", c.Token)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		page1, err := svc.FindCharacters(ctx, zinets.CharacterFilter{Limit: 3})
		require.NoError(t, err)
		page2, err := svc.FindCharacters(ctx, zinets.CharacterFilter{Limit: 3, Offset: 3})
		require.NoError(t, err)

		assert.Len(t, page1, 3)
		assert.Len(t, page2, 1)
		for _, c := range page1 {
			assert.NotEqual(t, page2[0].ID, c.ID)
		}
	})

	t.Run("offset without limit skips records", func(t *testing.T) {
		t.Parallel()

		found, err := svc.FindCharacters(ctx, zinets.CharacterFilter{Offset: 1})

		require.NoError(t, err)
		assert.Len(t, found, 3)
	})
}

func TestCharacterService_DeactivateCharacter(t *testing.T) {
	t.Parallel()

	t.Run("hides record from lookup", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "gemini-2.5-flash")))

		require.NoError(t, svc.DeactivateCharacter(ctx, "日", "Google", "gemini-2.5-flash"))

		_, err := svc.FindCharacter(ctx, "日")
		assert.Equal(t, zinets.ENOTFOUND, zinets.ErrorCode(err))
	})

	t.Run("promotes another active record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "gemini-2.5-flash")))
		pro := newCharacter("日", "gemini-2.5-pro")
		require.NoError(t, svc.SaveCharacter(ctx, pro))
		require.False(t, pro.Best)

		require.NoError(t, svc.DeactivateCharacter(ctx, "日", "Google", "gemini-2.5-flash"))

		found, err := svc.FindCharacter(ctx, "日")
		require.NoError(t, err)
		assert.Equal(t, pro.ID, found.ID)
	})

	t.Run("saving again reactivates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "gemini-2.5-flash")))
		require.NoError(t, svc.DeactivateCharacter(ctx, "日", "Google", "gemini-2.5-flash"))

		c := newCharacter("日", "gemini-2.5-flash")
		require.NoError(t, svc.SaveCharacter(ctx, c))

		assert.True(t, c.Best)
		found, err := svc.FindCharacter(ctx, "日")
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)
	})

	t.Run("returns ENOTFOUND for unknown record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))

		err := svc.DeactivateCharacter(context.Background(), "日", "Google", "gemini-2.5-flash")

		require.Error(t, err)
		assert.Equal(t, zinets.ENOTFOUND, zinets.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when already inactive", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "gemini-2.5-flash")))
		require.NoError(t, svc.DeactivateCharacter(ctx, "日", "Google", "gemini-2.5-flash"))

		err := svc.DeactivateCharacter(ctx, "日", "Google", "gemini-2.5-flash")

		assert.Equal(t, zinets.ENOTFOUND, zinets.ErrorCode(err))
	})
}

func TestCharacterService_Stats(t *testing.T) {
	t.Parallel()

	t.Run("empty cache", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))

		stats, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Zero(t, stats.Total)
		assert.Zero(t, stats.Active)
		assert.Zero(t, stats.Best)
		assert.Empty(t, stats.ByProvider)
		assert.Empty(t, stats.Recent)
	})

	t.Run("counts records", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCharacterService(setupTestDB(t))
		ctx := context.Background()
		for i, token := range []string{"日", "白", "伯", "晶", "品", "口"} {
			require.NoError(t, svc.SaveCharacter(ctx, newCharacter(token, fmt.Sprintf("model-%d", i%2))))
		}
		require.NoError(t, svc.SaveCharacter(ctx, newCharacter("日", "model-1")))
		require.NoError(t, svc.DeactivateCharacter(ctx, "口", "Google", "model-1"))

		stats, err := svc.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, 7, stats.Total)
		assert.Equal(t, 6, stats.Active)
		assert.Equal(t, 5, stats.Best)
		assert.Equal(t, map[string]int{"Google": 6}, stats.ByProvider)
		assert.Equal(t, map[string]int{"model-0": 3, "model-1": 3}, stats.ByModel)
		assert.Len(t, stats.Recent, 5)
	})
}
