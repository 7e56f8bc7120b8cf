package zinets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinets/zinets"
)

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	c := zinets.Placeholder("日")

	assert.Equal(t, "日", c.Token)
	assert.True(t, c.IsPlaceholder())
	assert.Equal(t, zinets.PlaceholderComposition, c.Composition)
	assert.Contains(t, c.Examples, "日语")
}

func TestCharacter_IsPlaceholder(t *testing.T) {
	t.Parallel()

	c := &zinets.Character{Token: "日", Pronunciation: "rì", Meaning: "sun"}

	assert.False(t, c.IsPlaceholder())
}

func TestCharacter_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete record", func(t *testing.T) {
		t.Parallel()

		c := &zinets.Character{Token: "日", Pronunciation: "rì", Meaning: "sun", Provider: "Google", Model: "gemini"}

		require.NoError(t, c.Validate())
	})

	t.Run("requires token", func(t *testing.T) {
		t.Parallel()

		c := &zinets.Character{Provider: "Google", Model: "gemini"}

		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, zinets.EINVALID, zinets.ErrorCode(err))
		assert.Contains(t, zinets.ErrorMessage(err), "token required")
	})

	t.Run("requires provider and model", func(t *testing.T) {
		t.Parallel()

		err := (&zinets.Character{Token: "日", Model: "gemini"}).Validate()
		assert.Equal(t, zinets.EINVALID, zinets.ErrorCode(err))

		err = (&zinets.Character{Token: "日", Provider: "Google"}).Validate()
		assert.Equal(t, zinets.EINVALID, zinets.ErrorCode(err))
	})

	t.Run("rejects placeholder data", func(t *testing.T) {
		t.Parallel()

		c := zinets.Placeholder("日")
		c.Provider = "Google"
		c.Model = "gemini"

		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, zinets.EINVALID, zinets.ErrorCode(err))
	})
}
