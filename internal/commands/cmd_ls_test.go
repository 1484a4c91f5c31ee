package commands

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{
			name:  "short line untouched",
			line:  "[x] Intro",
			width: 80,
			want:  "[x] Intro",
		},
		{
			name:  "ascii cut",
			line:  "abcdefgh",
			width: 5,
			want:  "abcd…",
		},
		{
			name:  "multi-byte divider glyphs cut on rune boundary",
			line:  "━━━━━━━━ Combat ━━━━━━━━",
			width: 10,
			want:  "━━━━━━━━ …",
		},
		{
			name:  "star divider",
			line:  "⭐⭐⭐ Setup ⭐⭐⭐",
			width: 6,
			want:  "⭐⭐⭐ S…",
		},
		{
			name:  "zero width untouched",
			line:  "anything",
			width: 0,
			want:  "anything",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.line, tt.width)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
