package textbuf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/textbuf"
)

func TestInsert(t *testing.T) {
	b := textbuf.New("abc", textbuf.Options{})

	t.Run("Clamps offsets", func(t *testing.T) {
		nb, cursor := b.Insert("x", 10)
		assert.Equal(t, "abcx", nb.String())
		assert.Equal(t, 4, cursor)

		nb, cursor = b.Insert("x", -5)
		assert.Equal(t, "xabc", nb.String())
		assert.Equal(t, 1, cursor)
	})

	t.Run("Receiver is unchanged", func(t *testing.T) {
		_, _ = b.Insert("zzz", 1)
		assert.Equal(t, "abc", b.String())
		assert.False(t, b.CanUndo())
	})

	t.Run("Several line breaks at once", func(t *testing.T) {
		var nb textbuf.Buffer
		require.NotPanics(t, func() { nb, _ = b.Insert("\n\n\n", 1) })
		assert.Equal(t, "a\n\n\nbc", nb.String())

		lines, flags := nb.Lines()
		assert.Equal(t, []string{"a", "", "", "bc"}, lines)
		assert.Equal(t, []textbuf.Flag{textbuf.LineBreak, textbuf.LineBreak, textbuf.LineBreak, textbuf.LineBreak}, flags)
	})

	t.Run("Runes, not bytes", func(t *testing.T) {
		nb, cursor := textbuf.New("été", textbuf.Options{}).Insert("!", 1)
		assert.Equal(t, "é!té", nb.String())
		assert.Equal(t, 2, cursor)
	})
}

func TestInsert_Options(t *testing.T) {
	t.Run("ReadOnly", func(t *testing.T) {
		b := textbuf.New("abc", textbuf.Options{ReadOnly: true})
		nb, _ := b.Insert("x", 0)
		assert.Equal(t, "abc", nb.String())
		nb, _ = b.Delete(0, 3)
		assert.Equal(t, "abc", nb.String())
	})

	t.Run("AutoIndent", func(t *testing.T) {
		b := textbuf.New("  foo", textbuf.Options{AutoIndent: true})
		nb, cursor := b.Insert("\n", 5)
		assert.Equal(t, "  foo\n  ", nb.String())
		assert.Equal(t, 8, cursor)
	})

	t.Run("ReplaceCRLF", func(t *testing.T) {
		b := textbuf.New("", textbuf.Options{ReplaceCRLF: true})
		nb, _ := b.Insert("a\r\nb", 0)
		assert.Equal(t, "a\nb", nb.String())
	})

	t.Run("FilterInt", func(t *testing.T) {
		b := textbuf.New("12", textbuf.Options{Filter: textbuf.FilterInt})
		nb, cursor := b.Insert("a", 2)
		assert.Equal(t, "12", nb.String())
		assert.Equal(t, 2, cursor)

		nb, _ = b.Insert("3", 2)
		assert.Equal(t, "123", nb.String())
	})

	t.Run("FilterFloat", func(t *testing.T) {
		b := textbuf.New("1.5", textbuf.Options{Filter: textbuf.FilterFloat})
		nb, _ := b.Insert(".", 3)
		assert.Equal(t, "1.5", nb.String())
		nb, _ = b.Insert("0", 3)
		assert.Equal(t, "1.50", nb.String())
	})
}

func TestUndoRedo(t *testing.T) {
	b := textbuf.New("hello", textbuf.Options{})
	b, _ = b.Insert(" world", 5)
	b, _ = b.Delete(0, 1)
	require.Equal(t, "ello world", b.String())

	b, cursor, ok := b.Undo()
	require.True(t, ok)
	assert.Equal(t, "hello world", b.String())
	assert.Equal(t, 1, cursor)

	b, cursor, ok = b.Undo()
	require.True(t, ok)
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, cursor)

	_, _, ok = b.Undo()
	assert.False(t, ok)

	b, cursor, ok = b.Redo()
	require.True(t, ok)
	assert.Equal(t, "hello world", b.String())
	assert.Equal(t, 11, cursor)
	assert.True(t, b.CanRedo())

	b, _ = b.Insert("!", 11)
	assert.False(t, b.CanRedo(), "a new edit clears redo")
}

func TestLines_Wrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		lines []string
		flags []textbuf.Flag
	}{
		{"no width", "hello world", 0, []string{"hello world"}, []textbuf.Flag{textbuf.LineBreak}},
		{"break after space", "hello world foo", 10, []string{"hello ", "world foo"}, []textbuf.Flag{textbuf.Wrapped, textbuf.LineBreak}},
		{"long word", "abcdefg", 3, []string{"abc", "def", "g"}, []textbuf.Flag{textbuf.Wrapped, textbuf.Wrapped, textbuf.LineBreak}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}, []textbuf.Flag{textbuf.Wrapped, textbuf.LineBreak}},
		{"empty", "", 10, []string{""}, []textbuf.Flag{textbuf.LineBreak}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, flags := textbuf.New(tt.text, textbuf.Options{Width: tt.width}).Lines()
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.flags, flags)
		})
	}
}

func TestLines_RestoreText(t *testing.T) {
	text := "a fairly long first line that needs wrapping\n\nshort\n\tindented tab line here"
	lines, flags := textbuf.New(text, textbuf.Options{Width: 12}).Lines()
	require.Len(t, flags, len(lines))

	var sb strings.Builder
	for i, l := range lines {
		sb.WriteString(l)
		if flags[i] == textbuf.LineBreak && i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}
	assert.Equal(t, text, sb.String())
}

func TestCursorMapping(t *testing.T) {
	b := textbuf.New("hello world foo", textbuf.Options{Width: 10})

	row, col := b.CursorFromIndex(3)
	assert.Equal(t, [2]int{0, 3}, [2]int{row, col})

	row, col = b.CursorFromIndex(6)
	assert.Equal(t, [2]int{1, 0}, [2]int{row, col}, "wrap boundary goes to the next row")

	row, col = b.CursorFromIndex(15)
	assert.Equal(t, [2]int{1, 9}, [2]int{row, col})

	assert.Equal(t, 6, b.IndexFromCursor(1, 0))
	assert.Equal(t, 15, b.IndexFromCursor(9, 99), "clamped")

	t.Run("Round trip", func(t *testing.T) {
		for _, buf := range []textbuf.Buffer{
			b,
			textbuf.New("ab\ncd\n\nlonger line to wrap", textbuf.Options{Width: 5}),
			textbuf.New("", textbuf.Options{}),
		} {
			for i := 0; i <= buf.Len(); i++ {
				row, col := buf.CursorFromIndex(i)
				assert.Equal(t, i, buf.IndexFromCursor(row, col), "index %d of %q", i, buf.String())
			}
		}
	})
}
