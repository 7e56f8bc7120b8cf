package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinets/zinets"
	"github.com/zinets/zinets/gemini"
)

func TestParseResponse(t *testing.T) {
	t.Parallel()

	t.Run("parses every block", func(t *testing.T) {
		t.Parallel()

		text := `Character: 日
pinyin: rì
meaning: sun; day
composition: pictograph of the sun
phrases: 日子<br>生日<br>日本<br>今日<br>日记

Character: 白
pinyin: bái
meaning: white
composition: 丿 + 日
phrases: 白色<br>明白<br>白天<br>白菜<br>空白`

		records := gemini.ParseResponse(text, []string{"日", "白"})

		require.Len(t, records, 2)
		assert.Equal(t, &zinets.Character{
			Token:         "日",
			Pronunciation: "rì",
			Meaning:       "sun; day",
			Composition:   "pictograph of the sun",
			Examples:      "日子<br>生日<br>日本<br>今日<br>日记",
		}, records["日"])
		assert.Equal(t, "丿 + 日", records["白"].Composition)
	})

	t.Run("continuation lines extend the previous field", func(t *testing.T) {
		t.Parallel()

		text := "Character: 晶\npinyin: jīng\nmeaning: crystal\n  bright, glittering\ncomposition: 日 + 日 + 日\nphrases: 水晶<br>晶体"

		records := gemini.ParseResponse(text, []string{"晶"})

		require.Contains(t, records, "晶")
		assert.Equal(t, "crystal bright, glittering", records["晶"].Meaning)
	})

	t.Run("incomplete blocks are dropped", func(t *testing.T) {
		t.Parallel()

		text := "Character: 日\npinyin: rì\nmeaning: sun\ncomposition: pictograph\n\nCharacter: 白\npinyin: bái\nmeaning: white\ncomposition: 丿 + 日\nphrases: 白色"

		records := gemini.ParseResponse(text, []string{"日", "白"})

		assert.NotContains(t, records, "日")
		assert.Contains(t, records, "白")
	})

	t.Run("blocks for unexpected tokens are dropped", func(t *testing.T) {
		t.Parallel()

		text := "Character: 月\npinyin: yuè\nmeaning: moon\ncomposition: pictograph\nphrases: 月亮"

		assert.Empty(t, gemini.ParseResponse(text, []string{"日", "白"}))
	})

	t.Run("header with extra text", func(t *testing.T) {
		t.Parallel()

		text := "Character: 伯 (bó)\npinyin: bó\nmeaning: uncle\ncomposition: 亻 + 白\nphrases: 伯父"

		records := gemini.ParseResponse(text, []string{"白", "伯"})

		require.Contains(t, records, "伯")
		assert.NotContains(t, records, "白")
	})

	t.Run("single token without header", func(t *testing.T) {
		t.Parallel()

		text := "pinyin: kǒu\nmeaning: mouth\ncomposition: pictograph of a mouth\nphrases: 口语<br>人口"

		records := gemini.ParseResponse(text, []string{"口"})

		require.Contains(t, records, "口")
		assert.Equal(t, "kǒu", records["口"].Pronunciation)
	})

	t.Run("field names are case insensitive and may be bulleted", func(t *testing.T) {
		t.Parallel()

		text := "Character: 木\n- Pinyin: mù\n- Meaning: tree\n- Composition: pictograph\n- Phrases: 树木"

		records := gemini.ParseResponse(text, []string{"木"})

		require.Contains(t, records, "木")
		assert.Equal(t, "mù", records["木"].Pronunciation)
		assert.Equal(t, "树木", records["木"].Examples)
	})

	t.Run("unknown field names continue the current field", func(t *testing.T) {
		t.Parallel()

		text := "Character: 木\npinyin: mù\nradical: 木\nmeaning: tree\ncomposition: pictograph\nphrases: 树木"

		records := gemini.ParseResponse(text, []string{"木"})

		require.Contains(t, records, "木")
		assert.Equal(t, "mù radical: 木", records["木"].Pronunciation)
		assert.Equal(t, "tree", records["木"].Meaning)
	})

	t.Run("continuation lines may contain colons", func(t *testing.T) {
		t.Parallel()

		text := "Character: 果\npinyin: guǒ\nmeaning: fruit\ncomposition: 田 + 木\nphrases: 苹果 (píngguǒ): apple<br>\n水果 (shuǐguǒ): fruit"

		records := gemini.ParseResponse(text, []string{"果"})

		require.Contains(t, records, "果")
		assert.Equal(t, "苹果 (píngguǒ): apple<br> 水果 (shuǐguǒ): fruit", records["果"].Examples)
	})

	t.Run("first block for a token wins", func(t *testing.T) {
		t.Parallel()

		text := "Character: 木\npinyin: mù\nmeaning: tree\ncomposition: a\nphrases: b\nCharacter: 木\npinyin: mu\nmeaning: wood\ncomposition: c\nphrases: d"

		records := gemini.ParseResponse(text, []string{"木"})

		assert.Equal(t, "tree", records["木"].Meaning)
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gemini.ParseResponse("", []string{"木"}))
	})
}
