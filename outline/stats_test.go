package outline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zinets/zinets/outline"
)

func TestStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want outline.TreeStats
	}{
		{
			name: "nested outline",
			text: "日\n\t- 白（丿 + 日）\n\t\t- 伯（亻 + 白）\n\t- 晶(日 + 日 + 日)",
			want: outline.TreeStats{TotalNodes: 4, MaxDepth: 2, LeafNodes: 2, BranchNodes: 2, UniqueTokens: 4},
		},
		{
			name: "repeated tokens",
			text: "品\n  - 口\n  - 口\n  - 口",
			want: outline.TreeStats{TotalNodes: 4, MaxDepth: 1, LeafNodes: 3, BranchNodes: 1, UniqueTokens: 2},
		},
		{
			name: "multi-unit names",
			text: "日\n  - 日光\n    - 光",
			want: outline.TreeStats{TotalNodes: 3, MaxDepth: 2, LeafNodes: 1, BranchNodes: 2, UniqueTokens: 2},
		},
		{
			name: "empty",
			text: "",
			want: outline.TreeStats{TotalNodes: 1, LeafNodes: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, outline.Stats(outline.Parse(tt.text)))
		})
	}
}
