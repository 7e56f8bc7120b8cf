package gemini

import (
	"slices"
	"strings"

	"github.com/zinets/zinets"
)

const blockMarker = "Character:"

// ParseResponse extracts one record per expected token from a model answer.
//
// Answers consist of blocks that start with a "Character:" line followed by
// "field: value" lines; lines without a colon continue the previous field.
// Blocks naming none of the expected tokens and blocks missing any of the
// pinyin, meaning, composition or phrases fields are dropped. When a single
// token is expected the header line is optional.
func ParseResponse(text string, expected []string) map[string]*zinets.Character {
	records := make(map[string]*zinets.Character)

	var b block
	if len(expected) == 1 {
		b.token = expected[0]
	}
	flush := func() {
		if b.token == "" || !b.complete() {
			return
		}
		if _, dup := records[b.token]; !dup {
			records[b.token] = b.character()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, blockMarker); ok {
			flush()
			b = block{token: matchToken(rest, expected)}
			continue
		}

		// A colon after anything but a known field name is part of the
		// text, as in "水果 (shuǐguǒ): fruit".
		if name, value, ok := strings.Cut(line, ":"); ok {
			name = strings.ToLower(strings.TrimSpace(strings.TrimLeft(name, "-* ")))
			if slices.Contains(responseFields, name) {
				b.set(name, strings.TrimSpace(value))
				continue
			}
		}

		b.extend(line)
	}
	flush()

	return records
}

// matchToken returns the expected token that appears first in s.
func matchToken(s string, expected []string) string {
	best, at := "", -1
	for _, token := range expected {
		i := strings.Index(s, token)
		if i >= 0 && (at < 0 || i < at) {
			best, at = token, i
		}
	}
	return best
}

type block struct {
	token  string
	fields map[string]string
	last   string
}

var responseFields = []string{"pinyin", "meaning", "composition", "phrases"}

func (b *block) set(name, value string) {
	if b.fields == nil {
		b.fields = make(map[string]string)
	}
	b.fields[name] = value
	b.last = name
}

func (b *block) extend(line string) {
	if b.last == "" {
		return
	}
	b.fields[b.last] += " " + line
}

func (b *block) complete() bool {
	for _, f := range responseFields {
		if strings.TrimSpace(b.fields[f]) == "" {
			return false
		}
	}
	return true
}

func (b *block) character() *zinets.Character {
	return &zinets.Character{
		Token:         b.token,
		Pronunciation: b.fields["pinyin"],
		Meaning:       b.fields["meaning"],
		Composition:   b.fields["composition"],
		Examples:      b.fields["phrases"],
	}
}
