package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notes/pkg/core"
)

func TestMergeStrings(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		incoming string
		want     string
	}{
		{"identical", "a\nb", "a\nb", "a\nb"},
		{"incoming appended a line", "a\nb", "a\nb\nc", "a\nb\nc"},
		{"current has an extra line", "a\nx\nb", "a\nb", "a\nx\nb"},
		{"both changed the same line", "a\nmine\nb", "a\ntheirs\nb", "a\nmine\ntheirs\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.MergeStrings(tt.current, tt.incoming))
		})
	}
}
