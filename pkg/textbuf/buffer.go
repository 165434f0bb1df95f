// Package textbuf models the text of an input field as a plain value: insertions,
// deletions, undo/redo, and the wrapped display lines with their line-break flags.
//
// Every operation returns a new Buffer; the receiver is never modified.
package textbuf

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Flag marks how a display line ends.
type Flag uint8

const (
	// Wrapped marks a display line that continues on the next one (soft wrap).
	Wrapped Flag = iota
	// LineBreak marks a display line that ends at a newline or at the end of the text.
	LineBreak
)

// Filter validates or rewrites an insertion. It receives the text about to be
// inserted and the full logical line it lands in once inserted. Returning an
// empty string rejects the insertion.
type Filter func(substring, line string) string

var (
	intPattern   = regexp.MustCompile(`^-?[0-9]*$`)
	floatPattern = regexp.MustCompile(`^-?[0-9]*\.?[0-9]*$`)
)

// FilterInt accepts insertions that keep the line a (partial) integer.
func FilterInt(substring, line string) string {
	if intPattern.MatchString(line) {
		return substring
	}
	return ""
}

// FilterFloat accepts insertions that keep the line a (partial) decimal number.
func FilterFloat(substring, line string) string {
	if floatPattern.MatchString(line) {
		return substring
	}
	return ""
}

// Options configure a Buffer.
type Options struct {
	// Width is the display width in columns. Zero disables soft wrapping.
	Width int
	// TabWidth is the display width of a tab. Defaults to 4.
	TabWidth    int
	AutoIndent  bool
	ReplaceCRLF bool
	ReadOnly    bool
	Filter      Filter
}

type editKind uint8

const (
	editInsert editKind = iota
	editDelete
)

type edit struct {
	kind editKind
	at   int
	text string
}

// Buffer is an immutable text value with undo history.
type Buffer struct {
	text []rune
	opts Options
	undo []edit
	redo []edit
}

// New creates a buffer holding text.
func New(text string, opts Options) Buffer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	return Buffer{text: []rune(text), opts: opts}
}

// String returns the text.
func (b Buffer) String() string { return string(b.text) }

// Len returns the length of the text in runes.
func (b Buffer) Len() int { return len(b.text) }

// CanUndo reports whether there is an edit to undo.
func (b Buffer) CanUndo() bool { return len(b.undo) > 0 }

// CanRedo reports whether there is an undone edit to redo.
func (b Buffer) CanRedo() bool { return len(b.redo) > 0 }

func (b Buffer) clamp(i int) int {
	return min(max(i, 0), len(b.text))
}

// Insert inserts text at rune offset at and returns the new buffer and cursor.
// An offset outside the text is clamped to its bounds. A rejected insertion
// returns the buffer unchanged with the cursor at the clamped offset.
func (b Buffer) Insert(text string, at int) (Buffer, int) {
	at = b.clamp(at)
	if b.opts.ReadOnly || text == "" {
		return b, at
	}
	if b.opts.ReplaceCRLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	if b.opts.AutoIndent && text == "\n" {
		text += b.indentAt(at)
	}
	if b.opts.Filter != nil {
		text = b.opts.Filter(text, b.lineAfterInsert(text, at))
		if text == "" {
			return b, at
		}
	}

	nb := b.apply(edit{kind: editInsert, at: at, text: text})
	nb.undo = append(slices.Clone(b.undo), edit{kind: editInsert, at: at, text: text})
	nb.redo = nil
	return nb, at + len([]rune(text))
}

// Delete removes the runes between from and to and returns the new buffer and cursor.
func (b Buffer) Delete(from, to int) (Buffer, int) {
	from, to = b.clamp(from), b.clamp(to)
	if from > to {
		from, to = to, from
	}
	if b.opts.ReadOnly || from == to {
		return b, from
	}
	e := edit{kind: editDelete, at: from, text: string(b.text[from:to])}
	nb := b.apply(e)
	nb.undo = append(slices.Clone(b.undo), e)
	nb.redo = nil
	return nb, from
}

// Undo reverts the last edit. It reports false when there is nothing to undo.
func (b Buffer) Undo() (Buffer, int, bool) {
	if len(b.undo) == 0 {
		return b, 0, false
	}
	last := b.undo[len(b.undo)-1]
	nb := b.apply(last.inverse())
	nb.undo = slices.Clone(b.undo[:len(b.undo)-1])
	nb.redo = append(slices.Clone(b.redo), last)
	return nb, last.inverse().cursor(), true
}

// Redo re-applies the last undone edit. It reports false when there is nothing to redo.
func (b Buffer) Redo() (Buffer, int, bool) {
	if len(b.redo) == 0 {
		return b, 0, false
	}
	last := b.redo[len(b.redo)-1]
	nb := b.apply(last)
	nb.redo = slices.Clone(b.redo[:len(b.redo)-1])
	nb.undo = append(slices.Clone(b.undo), last)
	return nb, last.cursor(), true
}

func (e edit) inverse() edit {
	if e.kind == editInsert {
		return edit{kind: editDelete, at: e.at, text: e.text}
	}
	return edit{kind: editInsert, at: e.at, text: e.text}
}

func (e edit) cursor() int {
	if e.kind == editInsert {
		return e.at + len([]rune(e.text))
	}
	return e.at
}

// apply performs e without touching history. Offsets come from history and are in range.
func (b Buffer) apply(e edit) Buffer {
	r := []rune(e.text)
	var text []rune
	switch e.kind {
	case editInsert:
		text = make([]rune, 0, len(b.text)+len(r))
		text = append(text, b.text[:e.at]...)
		text = append(text, r...)
		text = append(text, b.text[e.at:]...)
	case editDelete:
		text = make([]rune, 0, len(b.text)-len(r))
		text = append(text, b.text[:e.at]...)
		text = append(text, b.text[e.at+len(r):]...)
	}
	return Buffer{text: text, opts: b.opts, undo: b.undo, redo: b.redo}
}

func (b Buffer) lineStart(at int) int {
	for i := at; i > 0; i-- {
		if b.text[i-1] == '\n' {
			return i
		}
	}
	return 0
}

func (b Buffer) lineEnd(at int) int {
	for i := at; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return len(b.text)
}

func (b Buffer) indentAt(at int) string {
	start := b.lineStart(at)
	end := start
	for end < at && (b.text[end] == ' ' || b.text[end] == '\t') {
		end++
	}
	return string(b.text[start:end])
}

// lineAfterInsert returns the logical line holding the insertion point once text is inserted.
func (b Buffer) lineAfterInsert(text string, at int) string {
	before := string(b.text[b.lineStart(at):at])
	after := string(b.text[at:b.lineEnd(at)])
	joined := before + text + after
	// a multi-line insertion is checked against the line it ends in
	if i := strings.LastIndexByte(joined, '\n'); i >= 0 {
		return joined[i+1:]
	}
	return joined
}

// Lines returns the display lines and, for each of them, how it ends.
// The two slices always have the same length and the display lines
// concatenated with their newlines restore the text.
func (b Buffer) Lines() ([]string, []Flag) {
	var lines []string
	var flags []Flag
	for logical := range strings.SplitSeq(string(b.text), "\n") {
		segments := b.wrap([]rune(logical))
		for i, seg := range segments {
			lines = append(lines, string(seg))
			if i == len(segments)-1 {
				flags = append(flags, LineBreak)
			} else {
				flags = append(flags, Wrapped)
			}
		}
	}
	return lines, flags
}

func (b Buffer) runeWidth(r rune) int {
	if r == '\t' {
		return b.opts.TabWidth
	}
	return runewidth.RuneWidth(r)
}

// wrap splits a logical line into display segments no wider than Width,
// breaking after the last space when possible. Segments partition the line.
func (b Buffer) wrap(line []rune) [][]rune {
	if b.opts.Width <= 0 || len(line) == 0 {
		return [][]rune{line}
	}
	var out [][]rune
	for len(line) > 0 {
		width, cut, lastSpace := 0, 0, -1
		for cut < len(line) {
			w := b.runeWidth(line[cut])
			if width+w > b.opts.Width && cut > 0 {
				break
			}
			width += w
			if unicode.IsSpace(line[cut]) {
				lastSpace = cut
			}
			cut++
		}
		if cut < len(line) && lastSpace >= 0 {
			cut = lastSpace + 1
		}
		out = append(out, line[:cut])
		line = line[cut:]
	}
	return out
}

// CursorFromIndex maps a rune offset to a (row, col) position over the display lines.
// An offset at a soft wrap boundary is placed at the start of the next row.
func (b Buffer) CursorFromIndex(index int) (row, col int) {
	index = b.clamp(index)
	lines, flags := b.Lines()
	for i, l := range lines {
		n := len([]rune(l))
		if index < n || (index == n && (flags[i] == LineBreak || i == len(lines)-1)) {
			return i, index
		}
		index -= n
		if flags[i] == LineBreak {
			index-- // the newline
		}
	}
	last := len(lines) - 1
	return last, len([]rune(lines[last]))
}

// IndexFromCursor maps a (row, col) position back to a rune offset. Out of range values are clamped.
func (b Buffer) IndexFromCursor(row, col int) int {
	lines, flags := b.Lines()
	row = min(max(row, 0), len(lines)-1)
	index := 0
	for i := 0; i < row; i++ {
		index += len([]rune(lines[i]))
		if flags[i] == LineBreak {
			index++
		}
	}
	return index + min(max(col, 0), len([]rune(lines[row])))
}
